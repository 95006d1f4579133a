package errors

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const msgInternal = "Error interno del servidor"

// Classify maps an error to its HTTP status and error type.
// Anything that is not a client-facing *Error is a server failure.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInsufficientStock):
		return http.StatusBadRequest, HttpInsufficientStockError
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest, HttpValidationError
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, HttpNotFoundError
	default:
		return http.StatusInternalServerError, HttpInternalError
	}
}

// Respond writes err as an ErrorResponse. Server failures are logged and answered with a
// generic message so file paths and I/O details stay out of the response.
func Respond(c *gin.Context, err error) {
	status, errorType := Classify(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(status, ErrorResponse{ErrorType: errorType, Message: msgInternal})
		return
	}
	c.JSON(status, ErrorResponse{ErrorType: errorType, Message: err.Error()})
}

// RespondInvalidJSON answers a request whose body could not be bound.
func RespondInvalidJSON(c *gin.Context, err error) {
	slog.Warn("Invalid request body", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusBadRequest, ErrorResponse{
		ErrorType: HttpInvalidJsonError,
		Message:   "Datos inválidos",
		Details:   err.Error(),
	})
}

// PathID parses the :id path parameter. On failure it answers 400 and returns false.
func PathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			ErrorType: HttpValidationError,
			Message:   "ID inválido",
			Details:   c.Param("id"),
		})
		return 0, false
	}
	return id, true
}
