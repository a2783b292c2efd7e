package errors

import (
	"fmt"
	"net/http"
)

var (
	// Tokens and authorization.
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")
	ErrTokenIsNotAccess     = fmt.Errorf("token is not an access token")
	ErrEmptyAuthHeader      = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader    = fmt.Errorf("invalid authorization header format")
	ErrInvalidCredentials   = fmt.Errorf("invalid credentials")
	ErrUnauthorized         = fmt.Errorf("unauthorized")
	ErrForbidden            = fmt.Errorf("forbidden")

	// Context.
	ErrUserIDNotFoundInContext = fmt.Errorf("user id not found in request context")

	// Domain.
	ErrNotFound           = fmt.Errorf("record not found")
	ErrBadRequest         = fmt.Errorf("bad request")
	ErrPayloadTooLarge    = fmt.Errorf("file too large")
	ErrInvalidVersionType = fmt.Errorf("invalid file version type")
	ErrInvalidStatus      = fmt.Errorf("invalid order status")
	ErrConflict           = fmt.Errorf("order was modified concurrently")
)

// StatusCodes maps sentinel errors onto the HTTP codes the API exposes.
var StatusCodes = map[error]int{
	ErrInvalidSigningMethod: http.StatusUnauthorized,
	ErrInvalidToken:         http.StatusUnauthorized,
	ErrTokenExpired:         http.StatusUnauthorized,
	ErrTokenIsNotAccess:     http.StatusUnauthorized,
	ErrEmptyAuthHeader:      http.StatusUnauthorized,
	ErrInvalidAuthHeader:    http.StatusUnauthorized,
	ErrInvalidCredentials:   http.StatusUnauthorized,
	ErrUnauthorized:         http.StatusUnauthorized,
	ErrForbidden:            http.StatusForbidden,

	ErrUserIDNotFoundInContext: http.StatusUnauthorized,

	ErrNotFound:           http.StatusNotFound,
	ErrBadRequest:         http.StatusBadRequest,
	ErrPayloadTooLarge:    http.StatusRequestEntityTooLarge,
	ErrInvalidVersionType: http.StatusBadRequest,
	ErrInvalidStatus:      http.StatusBadRequest,
	ErrConflict:           http.StatusConflict,
}

// HttpError carries an explicit status code and a user-facing message around
// an underlying cause. Internal storage details never reach the client.
type HttpError struct {
	Code    int
	Message string
	Err     error
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err}
}
