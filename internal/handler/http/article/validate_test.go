package article

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-cms/internal/domain/entity"
)

func TestValidateDTO(t *testing.T) {
	tests := []struct {
		name       string
		dto        UpdateDTO
		wantFields map[string][]string
	}{
		{
			name: "title at entity limit",
			dto:  UpdateDTO{Title: strings.Repeat("記", entity.TitleMaxLength), Body: "b"},
		},
		{
			name: "title over entity limit",
			dto:  UpdateDTO{Title: strings.Repeat("a", entity.TitleMaxLength+1), Body: "b"},
			wantFields: map[string][]string{
				"title": {fmt.Sprintf("title must not exceed %d characters", entity.TitleMaxLength)},
			},
		},
		{
			name: "blank fields",
			dto:  UpdateDTO{Title: " ", Body: ""},
			wantFields: map[string][]string{
				"title": {"title is required"},
				"body":  {"body is required"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDTO(tt.dto)
			if tt.wantFields == nil {
				require.NoError(t, err)
				return
			}
			var verrs entity.ValidationErrors
			require.True(t, errors.As(err, &verrs), "err=%v", err)
			assert.Equal(t, tt.wantFields, verrs.Fields())
		})
	}
}
