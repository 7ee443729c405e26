package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorFunc builds a field-tagged error. Validators take one so callers
// decide the concrete error type.
type ErrorFunc func(field, msg string) error

// NewValidationError is the default ErrorFunc.
func NewValidationError(field, msg string) error {
	return ValidationError{Field: field, Msg: msg}
}

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// FieldErrors collects several field messages of one object.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

// Add records a ValidationError; other errors are ignored and reported false.
func (e FieldErrors) Add(err error) bool {
	var v ValidationError
	if !errors.As(err, &v) {
		return false
	}
	e[v.Field] = v.Msg
	return true
}

// OrNil returns nil when nothing was collected.
func (e FieldErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

type ConflictError struct {
	Resource string
	Field    string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// TicketError pins a failure to one entry of an order's ticket list.
type TicketError struct {
	Index int
	Err   error
}

func (e TicketError) Error() string {
	return fmt.Sprintf("tickets[%d]: %v", e.Index, e.Err)
}

func (e TicketError) Unwrap() error { return e.Err }

// Fields renders the wrapped failure as field -> message.
func (e TicketError) Fields() map[string]string {
	var fe FieldErrors
	if errors.As(e.Err, &fe) {
		return fe
	}
	var ve ValidationError
	if errors.As(e.Err, &ve) {
		return map[string]string{ve.Field: ve.Msg}
	}
	var ce ConflictError
	if errors.As(e.Err, &ce) {
		field := ce.Field
		if field == "" {
			field = "non_field_errors"
		}
		return map[string]string{field: ce.Msg}
	}
	return map[string]string{"non_field_errors": e.Err.Error()}
}

type UnauthorizedError struct {
	Msg string
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "authentication credentials were not provided"
}

type ForbiddenError struct {
	Msg string
}

func (e ForbiddenError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "you do not have permission to perform this action"
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	if errors.As(err, &target) {
		return true
	}
	var fields FieldErrors
	return errors.As(err, &fields)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}
