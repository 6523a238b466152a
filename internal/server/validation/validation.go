// Package validation checks user and note payloads before anything is
// written. Decode* turn a raw JSON body into a typed input; Validate* check
// an already-typed input. Both report failures as *Error, whose message is
// the first violated rule.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// UserInput is the signup payload.
type UserInput struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=6"`
}

// NoteInput is the create and update payload.
type NoteInput struct {
	Title   string `json:"title" validate:"required,min=3,max=50"`
	Content string `json:"content" validate:"required,min=5,max=300"`
}

// FieldError describes one violated rule.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// Error is a failed validation. Fields is never empty and is ordered by
// field declaration.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Message
}

// NewError builds a single-field Error.
func NewError(field, rule, msg string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Rule: rule, Message: msg}}}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func ValidateUser(in UserInput) error {
	return check(in)
}

func ValidateNote(in NoteInput) error {
	return check(in)
}

func DecodeUser(raw []byte) (UserInput, error) {
	var in UserInput
	if err := decode(raw, &in); err != nil {
		return UserInput{}, err
	}
	return in, ValidateUser(in)
}

// DecodeCredentials decodes a login payload without applying the signup
// rules; a login with a short password is just wrong credentials.
func DecodeCredentials(raw []byte) (UserInput, error) {
	var in UserInput
	if err := decode(raw, &in); err != nil {
		return UserInput{}, err
	}
	return in, nil
}

func DecodeNote(raw []byte) (NoteInput, error) {
	var in NoteInput
	if err := decode(raw, &in); err != nil {
		return NoteInput{}, err
	}
	return in, ValidateNote(in)
}

func decode(raw []byte, dst any) error {
	err := json.Unmarshal(raw, dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return NewError(typeErr.Field, "string", fmt.Sprintf("%q must be a string", typeErr.Field))
	}
	return NewError("", "object", `"value" must be of type object`)
}

func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", fe.Field())
	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%q is invalid", fe.Field())
	}
}
