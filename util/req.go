package util

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/studyclub-io/study-club-be/db"
)

type HTTPError struct {
	Status  int
	Message string
	// Cause is the underlying error, logged server-side and never serialized.
	Cause error
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

var (
	MalformedIdHTTPErr = &HTTPError{
		Message: "id malformed",
		Status:  http.StatusBadRequest,
	}
	UnauthenticatedHTTPErr = &HTTPError{
		Message: "must be logged in",
		Status:  http.StatusUnauthorized,
	}
	ForbiddenHTTPErr = &HTTPError{
		Message: "insufficient role",
		Status:  http.StatusForbidden,
	}
	NotFoundHTTPErr = &HTTPError{
		Message: "not found",
		Status:  http.StatusNotFound,
	}
)

// BuildDbHTTPErr classifies a store error onto the response taxonomy:
// malformed cursors are the caller's fault, duplicate keys are conflicts,
// vanished targets are 404, everything else collapses to a safe 500 and the
// original error is logged by HandlerWrapper.
func BuildDbHTTPErr(err error) *HTTPError {
	switch {
	case errors.Is(err, db.ErrBadCursor):
		return &HTTPError{Status: http.StatusBadRequest, Message: "malformed cursor"}
	case errors.Is(err, db.ErrNotFound):
		return NotFoundHTTPErr
	case db.IsDupKeyErr(err):
		message := "already exists"
		if key := db.GetDupKey(err); key != "" {
			message = fmt.Sprintf("already exists (%v)", key)
		}
		return &HTTPError{Status: http.StatusConflict, Message: message, Cause: err}
	}
	return &HTTPError{Status: http.StatusInternalServerError, Message: "database error", Cause: err}
}

func BuildJSONBindHTTPErr(err error) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Message: err.Error()}
}

func ParseId(raw string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, MalformedIdHTTPErr
	}
	return id, nil
}

type HandlerOpts struct {
	// CreatedStatus makes a nil-error response answer 201 instead of 200.
	CreatedStatus bool
}

// HandlerWrapper adapts a (data, *HTTPError) handler into the uniform
// response envelope. Server-side failures are logged with the route context;
// the client only ever sees the safe message.
func HandlerWrapper(handler func(c *gin.Context) (interface{}, *HTTPError), opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, httpErr := handler(c)
		if httpErr != nil {
			if httpErr.Status >= http.StatusInternalServerError {
				log.Error().
					Err(httpErr.Cause).
					Str("method", c.Request.Method).
					Str("path", c.FullPath()).
					Str("message", httpErr.Message).
					Msg("request failed")
			}
			c.JSON(httpErr.Status, gin.H{
				"success": false,
				"message": httpErr.Message,
			})
			return
		}
		status := http.StatusOK
		if opts != nil && opts.CreatedStatus {
			status = http.StatusCreated
		}
		if data == nil {
			c.JSON(status, gin.H{"success": true})
			return
		}
		c.JSON(status, gin.H{
			"success": true,
			"data":    data,
		})
	}
}
