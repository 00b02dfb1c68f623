// Package apperr carries the error taxonomy the HTTP layer maps onto status
// codes: validation (400), not found (404), conflict (409), unauthorized (401).
// Anything that is not an *Error is treated as an infrastructure failure and
// surfaces as a 500 with a generic body.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Kind int

const (
	Validation Kind = iota
	NotFound
	Conflict
	Unauthorized
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validationf(format string, args ...interface{}) error {
	return &Error{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) error {
	return &Error{Kind: Conflict, Message: fmt.Sprintf(format, args...)}
}

func Unauthorizedf(format string, args ...interface{}) error {
	return &Error{Kind: Unauthorized, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func status(kind Kind) int {
	switch kind {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a JSON error body. Taxonomy errors keep their message;
// everything else becomes a generic 500 and is attached to the context so the
// request logger records the concrete failure.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if errors.As(err, &appErr) {
		c.JSON(status(appErr.Kind), gin.H{"error": appErr.Message})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
