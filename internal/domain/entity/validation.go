package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidateTitle checks that a title is present and within TitleMaxLength characters.
// Whitespace-only titles count as missing.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(title) > TitleMaxLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", TitleMaxLength),
		}
	}
	return nil
}

// ValidateBody checks that a body is present. Bodies have no length limit.
func ValidateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return &ValidationError{Field: "body", Message: "body is required"}
	}
	return nil
}

// Validate runs every field rule and returns all failures together.
func (a *Article) Validate() error {
	var errs ValidationErrors
	if err := ValidateTitle(a.Title); err != nil {
		errs = append(errs, err.(*ValidationError))
	}
	if err := ValidateBody(a.Body); err != nil {
		errs = append(errs, err.(*ValidationError))
	}
	return errs.OrNil()
}
