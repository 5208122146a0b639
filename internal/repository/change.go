package repository

import "simple-cms/internal/domain/entity"

// Op is the kind of write a Change stages.
type Op int

const (
	OpCreate Op = iota + 1
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Change is one staged write.
type Change struct {
	Op      Op
	Article *entity.Article
}
