// Package sorting parses client sort expressions such as "title,timestamp desc"
// and applies them through an explicit allow-list of sortable fields.
//
// The first key is the primary order and every following key breaks ties in the
// order given, so "a, b desc, c" behaves like ORDER BY a, b DESC, c.
package sorting

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSortField is returned when a sort expression names a field that is not
// in the allow-list, or contains an empty segment.
var ErrInvalidSortField = errors.New("invalid sort field")

// descMarker is matched exactly and case-sensitively at the end of a segment.
const descMarker = " desc"

// Key is one parsed sort term.
type Key struct {
	Field string
	Desc  bool
}

// String renders the key back into expression syntax.
func (k Key) String() string {
	if k.Desc {
		return k.Field + descMarker
	}
	return k.Field
}

// Parse splits a comma-separated sort expression into keys.
// A blank expression yields no keys and no error; callers then keep the
// storage order untouched.
func Parse(expr string) ([]Key, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}

	segments := strings.Split(expr, ",")
	keys := make([]Key, 0, len(segments))
	for i, seg := range segments {
		seg = strings.TrimSpace(seg)
		key := Key{Field: seg}
		if strings.HasSuffix(seg, descMarker) {
			key.Field = strings.TrimSpace(strings.TrimSuffix(seg, descMarker))
			key.Desc = true
		}
		if key.Field == "" {
			return nil, fmt.Errorf("%w: empty segment at position %d", ErrInvalidSortField, i)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Format joins keys into a sort expression accepted by Parse.
func Format(keys []Key) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ",")
}
