package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "tuning-portal/pkg/errors"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	})
}

// ErrorResponse maps an error onto the JSON envelope. Sentinel errors carry
// their registered status code, HttpError carries its own, anything else is a
// plain 500 without internal detail.
func ErrorResponse(ctx echo.Context, err error) error {
	message := "internal server error"
	code := http.StatusInternalServerError

	var httpErr *apperrors.HttpError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		message = httpErr.Message
		code = httpErr.Code
	case errors.As(err, &echoErr):
		message = fmt.Sprintf("%v", echoErr.Message)
		code = echoErr.Code
	default:
		for sentinel, statusCode := range apperrors.StatusCodes {
			if errors.Is(err, sentinel) {
				message = sentinel.Error()
				code = statusCode
				break
			}
		}
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Body:    struct{}{},
		Message: message,
	})
}
