package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound       = NewAppError("NOT_FOUND", "Not found", http.StatusNotFound)
	ErrUnauthorized   = NewAppError("UNAUTHORIZED", "Not authorized", http.StatusUnauthorized)
	ErrBadRequest     = NewAppError("BAD_REQUEST", "Bad request", http.StatusBadRequest)
	ErrInternalServer = NewAppError("INTERNAL_SERVER_ERROR", "Server error", http.StatusInternalServerError)
	ErrValidation     = NewAppError("VALIDATION_ERROR", "Validation error", http.StatusBadRequest)
	ErrDatabase       = NewAppError("DATABASE_ERROR", "Database error", http.StatusInternalServerError)

	ErrEmailInUse         = NewAppError("EMAIL_IN_USE", "Email in use", http.StatusConflict)
	ErrInvalidCredentials = NewAppError("INVALID_CREDENTIALS", "Email or password is wrong", http.StatusUnauthorized)
	ErrEmailNotVerified   = NewAppError("EMAIL_NOT_VERIFIED", "Email not verify", http.StatusUnauthorized)
	ErrUserNotFound       = NewAppError("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	ErrAlreadyVerified    = NewAppError("ALREADY_VERIFIED", "Verification has already been passed", http.StatusBadRequest)
	ErrContactNotFound    = NewAppError("CONTACT_NOT_FOUND", "Not found", http.StatusNotFound)
	ErrMissingAvatar      = NewAppError("AVATAR_MISSING", "Avatar file is required", http.StatusBadRequest)
	ErrMailDelivery       = NewAppError("MAIL_DELIVERY_FAILED", "Verification email could not be sent", http.StatusInternalServerError)
)

// AppError is the single error shape crossing service boundaries. Sentinels
// above are templates: use the With* helpers to derive a copy.
type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so wrapped copies of a sentinel still satisfy errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	clone := e.clone()
	if details == nil {
		clone.Details = make(map[string]interface{})
		return clone
	}
	clone.Details = make(map[string]interface{}, len(details))
	for k, v := range details {
		clone.Details[k] = v
	}
	return clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := e.clone()
	clone.Err = err
	return clone
}

func (e *AppError) WithMessage(message string) *AppError {
	clone := e.clone()
	clone.Message = message
	return clone
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func WrapError(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
		Details:    make(map[string]interface{}),
	}
}

func (e *AppError) clone() *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	if e.Details != nil {
		clone.Details = make(map[string]interface{}, len(e.Details))
		for k, v := range e.Details {
			clone.Details[k] = v
		}
	} else {
		clone.Details = make(map[string]interface{})
	}
	return &clone
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// FromError normalises any error into an AppError. Unknown failures become a
// generic 500 that keeps the cause for logging only.
func FromError(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	if errors.Is(err, context.Canceled) {
		return WrapError(err, "REQUEST_CANCELED", "Request canceled", http.StatusRequestTimeout)
	}

	return WrapError(err, "UNKNOWN_ERROR", "Server error", http.StatusInternalServerError)
}

func NewValidationError(field, message string) *AppError {
	return ErrValidation.
		WithMessage(fmt.Sprintf("%s %s", field, message)).
		WithDetails(map[string]interface{}{"field": field})
}

func NewDatabaseError(err error) *AppError {
	return WrapError(err, "DATABASE_ERROR", "Database operation failed", http.StatusInternalServerError)
}

// ParseValidationErrors turns a binding failure into a 400 listing every
// offending field. Non-validator errors (malformed JSON) stay a plain 400.
func ParseValidationErrors(err error) *AppError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ErrBadRequest.WithError(err)
	}

	fieldErrors := make([]map[string]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fieldErrors = append(fieldErrors, map[string]string{
			"field":   fieldName(fieldErr.Field()),
			"message": translateValidationError(fieldErr),
		})
	}

	message := "Validation failed"
	if len(fieldErrors) == 1 {
		message = fieldErrors[0]["message"]
	}

	return ErrValidation.
		WithMessage(message).
		WithDetails(map[string]interface{}{"fields": fieldErrors}).
		WithError(err)
}

func fieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func translateValidationError(fe validator.FieldError) string {
	name := fieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("missing required %s field", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email", name)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed on '%s' validation", name, fe.Tag())
	}
}
