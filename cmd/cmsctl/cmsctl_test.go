package main

import (
	"bytes"
	"encoding/base64"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "absent.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func useSQLite(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "cms.db"))
}

func TestMigrateAndSeed(t *testing.T) {
	useSQLite(t)

	out, err := execute(t, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema ready (sqlite)")

	out, err = execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 3 article(s).")

	out, err = execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing seeded")

	out, err = execute(t, "seed", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 3 article(s).")
}

func TestMigrateDown_RequiresConfirmation(t *testing.T) {
	useSQLite(t)

	_, err := execute(t, "migrate", "down")
	assert.ErrorContains(t, err, "--yes")

	_, err = execute(t, "migrate", "up")
	require.NoError(t, err)
	out, err := execute(t, "migrate", "down", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema dropped.")
}

func TestSeed_NoDatabase(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "")

	_, err := execute(t, "seed")
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestTokenGenerate(t *testing.T) {
	out, err := execute(t, "token", "generate")
	require.NoError(t, err)

	secret := strings.TrimSpace(out)
	raw, err := base64.RawURLEncoding.DecodeString(secret)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	out2, err := execute(t, "token", "generate", "--bytes", "24")
	require.NoError(t, err)
	assert.NotEqual(t, secret, strings.TrimSpace(out2))

	_, err = execute(t, "token", "generate", "--bytes", "8")
	assert.ErrorContains(t, err, "at least 16")
}
