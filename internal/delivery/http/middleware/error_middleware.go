package middleware

import (
	"errors"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Non-AppErrors are logged and replaced with a generic 500 so persistence
// details never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		if appErr.Code >= 500 {
			logger.Log.Error("request failed",
				"request_id", c.GetString(RequestIDKey),
				"method", c.Request.Method,
				"path", c.FullPath(),
				"error", errors.Join(appErr, appErr.Err),
			)
		}

		response.Error(c, appErr)
	}
}
