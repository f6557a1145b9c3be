package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/api/http/response"
)

// Recovery turns a panic into a 500 envelope and logs it with a stack.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.StackSkip("stack", 1),
		)
		response.Fail(c, http.StatusInternalServerError, "internal server error")
	})
}
