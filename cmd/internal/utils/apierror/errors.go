package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

var (
	MalformedBodyError  = NewSimple(http.StatusBadRequest, "Malformed request body")
	InternalServerError = NewSimple(http.StatusInternalServerError, "Internal server error")

	/*
	 * Used for authentications
	 */
	UnauthorizedError        = NewSimple(http.StatusUnauthorized, "Unauthorized")
	InvalidAuthTokenError    = NewSimple(http.StatusUnauthorized, "Invalid or expired authorization token")
	CredentialsMismatchError = NewSimple(http.StatusUnauthorized, "Invalid email or password")
	UserAlreadyExistsError   = NewSimple(http.StatusConflict, "Email already exists")

	/*
	 * Notes and categories
	 */
	NoteNotFoundError        = NewSimple(http.StatusNotFound, "Note not found")
	NoteForbiddenError       = NewSimple(http.StatusForbidden, "You do not have permission to edit this note")
	DuplicateNoteTitleError  = NewSimple(http.StatusConflict, "Note with this title already exists")
	NoteNotOwnedError        = NewSimple(http.StatusNotFound, "Note does not exist or does not belong to the user")
	CategoryNotOwnedError    = NewSimple(http.StatusForbidden, "One or more categories do not belong to the user")
	CategoryNotLinkedError   = NewSimple(http.StatusNotFound, "Category is not associated with this note")
	DuplicateCategoryError   = NewSimple(http.StatusConflict, "Category with this name already exists")
	MissingCategoryNameError = NewSimple(http.StatusBadRequest, "Category name is required")
)

// FromValidationError groups validator failures by JSON field name.
// Errors that did not come from the validator are reported as a malformed body.
func FromValidationError(err error) ErrorResponse {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return MalformedBodyError
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := fe.Field()

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "gt":
			problems[field] = append(problems[field], "Value must be greater than "+fe.Param())
		case "hasupper":
			problems[field] = append(problems[field], "Value must have at least one uppercase character")
		case "haslower":
			problems[field] = append(problems[field], "Value must have at least one lowercase character")
		case "hasdigit":
			problems[field] = append(problems[field], "Value must have at least one number")
		case "hasspecial":
			problems[field] = append(problems[field], "Value must have at least one special character")
		case "maxbytes":
			problems[field] = append(problems[field], "Value is too long, max bytes: "+fe.Param())
		case "nospaces":
			problems[field] = append(problems[field], "Value must not contain whitespace")
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}

func NewMissingParamError(name string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' is required", name)
}
