package api

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/spirulina/internal/repository"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message ErrorMessage `json:"message"`
}

type ErrorMessage struct {
	Reason string `json:"reason"`
	Advice string `json:"advice,omitempty"`
}

func newHTTPError(code int, reason, advice string, cause error) *echo.HTTPError {
	he := echo.NewHTTPError(code, ErrorResponse{Message: ErrorMessage{Reason: reason, Advice: advice}})
	if cause != nil {
		he = he.SetInternal(cause)
	}
	return he
}

func BadRequest(reason string, cause error) *echo.HTTPError {
	return newHTTPError(http.StatusBadRequest, reason, "", cause)
}

func NotFound(reason string, cause error) *echo.HTTPError {
	return newHTTPError(http.StatusNotFound, reason, "", cause)
}

func ServiceUnavailable(cause error) *echo.HTTPError {
	return newHTTPError(
		http.StatusServiceUnavailable,
		"storage is unavailable", "retry later; nothing was changed",
		cause,
	)
}

// fromStoreError maps a failed store operation onto an HTTP error. Anything
// other than missing records and unreachable storage is a validation
// failure.
func fromStoreError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, repository.ErrStorageUnavailable):
		return ServiceUnavailable(err)
	case errors.Is(err, repository.ErrNotFound):
		return NotFound(err.Error(), err)
	default:
		return BadRequest(err.Error(), err)
	}
}

func asHTTPError(err error, target **echo.HTTPError) bool {
	return errors.As(err, target)
}
