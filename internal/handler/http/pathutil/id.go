package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is not an integer.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a path wildcard value such as r.PathValue("id").
// Non-positive values parse successfully; whether they name a record is
// for the caller to decide.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
