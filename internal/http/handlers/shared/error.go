package shared

import (
	"github.com/flipcart-next/internal/http/response"
	"github.com/flipcart-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(RequestIDKey); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回 {error} 响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	logAppError(c, appErr)
	c.JSON(appErr.Status, appErr.ErrorBody())
}

// RespondFail 返回 {success:false,...} 响应；withCause 为真时附带底层错误文本。
func RespondFail(c *gin.Context, code int, msg string, err error, withCause bool) {
	appErr := response.WrapError(code, msg, err)
	logAppError(c, appErr)
	c.JSON(appErr.Status, appErr.FailBody(withCause))
}

func logAppError(c *gin.Context, appErr *response.AppError) {
	if appErr.Err == nil {
		return
	}
	RequestLog(c).Errorw("handler_error",
		"status", appErr.Status,
		"message", appErr.Message,
		"error", appErr.Err,
	)
}
