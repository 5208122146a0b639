// Package entity defines the core domain entities and validation logic for the application.
// It contains the Article entity, its validation rules, the write-timestamp stamping rules,
// and the domain-specific errors.
package entity

import "time"

// TitleMaxLength is the maximum number of characters allowed in an article title.
const TitleMaxLength = 255

// Article represents a CMS article.
// Timestamp records the most recent persisted write and is owned by the storage layer;
// it is never taken from client input.
type Article struct {
	ID        int64
	Title     string
	Body      string
	Timestamp time.Time
}
