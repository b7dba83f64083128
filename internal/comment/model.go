// Package comment provides the comment domain model and data access.
package comment

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Limits enforced on new comments.
const (
	MaxTextLength   = 5000
	MaxAuthorLength = 200
)

var (
	// ErrNotFound is returned when no comment matches an ID.
	ErrNotFound = errors.New("comment not found")
	// ErrInvalid is returned when a draft fails validation.
	ErrInvalid = errors.New("invalid comment")
)

// Comment is a persisted comment. ID and CreatedAt are assigned by the store.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// Draft is the caller-supplied content of a new comment.
type Draft struct {
	Text   string `json:"text" validate:"required,max=5000"`
	Author string `json:"author" validate:"required,max=200"`
}

// ValidationError describes the first rule a draft violated.
type ValidationError struct {
	Field string
	Rule  string
	Param string
}

func (e *ValidationError) Error() string {
	switch e.Rule {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

// Unwrap lets errors.Is match ErrInvalid.
func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalize returns a copy of d with surrounding whitespace removed.
func (d Draft) Normalize() Draft {
	return Draft{
		Text:   strings.TrimSpace(d.Text),
		Author: strings.TrimSpace(d.Author),
	}
}

// Validate checks d against its struct tags. Call Normalize first so
// whitespace-only fields count as missing.
func (d Draft) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()}
	}
	return fmt.Errorf("validating comment: %w", err)
}
