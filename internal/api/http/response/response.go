// Package response writes the JSON envelope shared by every endpoint:
//
//	{"success": bool, "message": string, "data"?: any, "error"?: string}
//
// Error is the one place where an error kind becomes an HTTP status.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/apperr"
)

// exposeErrorsKey marks requests whose error responses may carry the
// underlying error text.
const exposeErrorsKey = "expose_errors"

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ListEnvelope adds the aggregate fields returned beside a page of records.
type ListEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Total   any    `json:"total"`
	Count   int    `json:"count"`
}

// ExposeErrors enables error detail in responses. Install it only outside
// production.
func ExposeErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(exposeErrorsKey, true)
		c.Next()
	}
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func List(c *gin.Context, message string, data any, total any, count int) {
	c.JSON(http.StatusOK, ListEnvelope{Success: true, Message: message, Data: data, Total: total, Count: count})
}

// Fail writes a failure envelope with an explicit status.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}

// Error maps err to its status and writes the failure envelope. Internal
// errors get a generic message; the cause is attached to the gin context for
// the request logger.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	kind := apperr.KindOf(err)
	status := StatusOf(kind)

	env := Envelope{Success: false, Message: apperr.MessageOf(err, http.StatusText(status))}
	if kind == apperr.KindInternal {
		env.Message = "internal server error"
	}
	if c.GetBool(exposeErrorsKey) {
		env.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, env)
}

func StatusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindInUse:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindTimeout:
		return http.StatusGatewayTimeout
	case apperr.KindUpstream:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
