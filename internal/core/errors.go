// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")

	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInvalidAmount       = errors.New("invalid amount")

	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
	ErrTokenInvalid = errors.New("token invalid")
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	HTTPStatus int            `json:"-"`

	// err is the sentinel this error refines, so errors.Is keeps
	// matching across the repository/service/handler boundary.
	err error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.err
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func ValidationError(message string) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		err:        ErrInvalidInput,
	}
}

func NotFoundError(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		err:        ErrNotFound,
	}
}

func UnauthorizedError(message string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
		err:        ErrUnauthorized,
	}
}

func ForbiddenError(message string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    message,
		HTTPStatus: http.StatusForbidden,
		err:        ErrForbidden,
	}
}

func ConflictError(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusConflict,
		err:        ErrConflict,
	}
}

// InvalidTransitionError reports a state machine violation. It always names
// the source state, the requested target and the full allowed set so the
// caller can see exactly why the transition was refused.
func InvalidTransitionError(from, target string, allowed []string) *AppError {
	return &AppError{
		Code: "INVALID_TRANSITION",
		Message: fmt.Sprintf(
			"cannot transition from %q to %q",
			from,
			target,
		),
		Details: map[string]any{
			"from":    from,
			"target":  target,
			"allowed": allowed,
		},
		HTTPStatus: http.StatusUnprocessableEntity,
		err:        ErrInvalidTransition,
	}
}

func InsufficientCreditsError(required, balance int) *AppError {
	return &AppError{
		Code: "INSUFFICIENT_CREDITS",
		Message: fmt.Sprintf(
			"operation requires %d credits, balance is %d",
			required,
			balance,
		),
		Details: map[string]any{
			"required": required,
			"balance":  balance,
		},
		HTTPStatus: http.StatusPaymentRequired,
		err:        ErrInsufficientCredits,
	}
}

func TokenExpiredError() *AppError {
	return &AppError{
		Code:       "TOKEN_EXPIRED",
		Message:    "access token has expired",
		HTTPStatus: http.StatusUnauthorized,
		err:        ErrTokenExpired,
	}
}

func TokenRevokedError() *AppError {
	return &AppError{
		Code:       "TOKEN_REVOKED",
		Message:    "access token has been revoked",
		HTTPStatus: http.StatusUnauthorized,
		err:        ErrTokenRevoked,
	}
}

func TokenInvalidError() *AppError {
	return &AppError{
		Code:       "TOKEN_INVALID",
		Message:    "access token is invalid",
		HTTPStatus: http.StatusUnauthorized,
		err:        ErrTokenInvalid,
	}
}

func FormatValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "invalid request"
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, formatFieldError(fieldErr))
	}

	return strings.Join(messages, "; ")
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
