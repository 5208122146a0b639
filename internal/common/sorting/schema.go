package sorting

import (
	"fmt"
	"slices"
	"strings"
)

// Field describes how one allow-listed name sorts: by a SQL column when the
// query runs in the database, and by Compare when items are sorted in memory.
type Field[T any] struct {
	Column  string
	Compare func(a, b T) int
}

// Order is a Key resolved against a Schema.
type Order[T any] struct {
	Name  string
	Field Field[T]
	Desc  bool
}

// Schema is the allow-list of sortable fields for one entity type.
// Names are matched case-insensitively. A Schema is immutable after construction
// and safe for concurrent use.
type Schema[T any] struct {
	fields map[string]Field[T]
}

// NewSchema validates and builds an allow-list.
func NewSchema[T any](fields map[string]Field[T]) (*Schema[T], error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("sorting: schema needs at least one field")
	}
	s := &Schema[T]{fields: make(map[string]Field[T], len(fields))}
	for name, f := range fields {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return nil, fmt.Errorf("sorting: empty field name")
		}
		if f.Column == "" || f.Compare == nil {
			return nil, fmt.Errorf("sorting: field %q needs both a column and a comparator", name)
		}
		if _, dup := s.fields[key]; dup {
			return nil, fmt.Errorf("sorting: duplicate field %q", name)
		}
		s.fields[key] = f
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error. It is meant for package-level
// allow-lists built at startup.
func MustSchema[T any](fields map[string]Field[T]) *Schema[T] {
	s, err := NewSchema(fields)
	if err != nil {
		panic(err)
	}
	return s
}

// Names returns the allow-listed field names in lexical order.
func (s *Schema[T]) Names() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve maps every key onto the allow-list. The first unknown name fails the
// whole expression with ErrInvalidSortField.
func (s *Schema[T]) Resolve(keys []Key) ([]Order[T], error) {
	orders := make([]Order[T], 0, len(keys))
	for _, k := range keys {
		name := strings.ToLower(k.Field)
		f, ok := s.fields[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSortField, k.Field)
		}
		orders = append(orders, Order[T]{Name: name, Field: f, Desc: k.Desc})
	}
	return orders, nil
}

// OrderByClause renders keys as an SQL ORDER BY clause built only from
// allow-listed column names. No keys yields an empty string.
func (s *Schema[T]) OrderByClause(keys []Key) (string, error) {
	if len(keys) == 0 {
		return "", nil
	}
	orders, err := s.Resolve(keys)
	if err != nil {
		return "", err
	}
	terms := make([]string, len(orders))
	for i, o := range orders {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		terms[i] = o.Field.Column + " " + dir
	}
	return "ORDER BY " + strings.Join(terms, ", "), nil
}

// SortSlice stably sorts items in place by keys. Items that compare equal on
// every key keep their relative order.
func (s *Schema[T]) SortSlice(items []T, keys []Key) error {
	if len(keys) == 0 {
		return nil
	}
	orders, err := s.Resolve(keys)
	if err != nil {
		return err
	}
	slices.SortStableFunc(items, func(a, b T) int {
		for _, o := range orders {
			c := o.Field.Compare(a, b)
			if o.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return nil
}
