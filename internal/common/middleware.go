package common

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shubham90-developer/Total-Health-sub004/internal/apperrors"
)

const (
	// Context keys
	ContextKeyRequestID = "request_id"

	// Headers
	HeaderRequestID = "X-Request-ID"
)

// RequestIDMiddleware tags every request with an ID, reusing a valid
// incoming X-Request-ID header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// RequestID returns the ID assigned by RequestIDMiddleware, or "" when the
// middleware is not installed.
func RequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// ErrorHandler renders the last error a handler attached with c.Error.
// Binding errors become 400s with one message per failed field, typed
// application errors use their own status and message, and anything else is
// logged and reported as a generic 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		ginErr := c.Errors.Last()
		if ginErr.IsType(gin.ErrorTypeBind) {
			RespondError(c, http.StatusBadRequest, ValidationMessages(ginErr.Err)...)
			return
		}

		if appErr, ok := apperrors.As(ginErr.Err); ok {
			if appErr.Status >= http.StatusInternalServerError {
				log.Printf("request %s: %v", RequestID(c), appErr)
			}
			RespondError(c, appErr.Status, appErr.Message)
			return
		}

		log.Printf("request %s: unhandled error: %v", RequestID(c), ginErr.Err)
		RespondError(c, http.StatusInternalServerError, "internal server error")
	}
}

// BindError attaches a request binding failure to the context.
func BindError(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
}

// ValidationMessages turns validator failures into field-level messages.
func ValidationMessages(err error) []string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "min", "gte":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max", "lte":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		case "datetime":
			messages = append(messages, fmt.Sprintf("%s must match the format %s", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid (%s)", field, fe.Tag()))
		}
	}
	return messages
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
