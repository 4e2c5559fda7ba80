package shared

import (
	"github.com/flipcart-next/internal/models"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	RequestIDKey = "request_id"
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
)

// SetUserID 写入当前登录用户
func SetUserID(c *gin.Context, id models.EntityID) {
	c.Set(UserIDKey, id)
}

// UserID 读取当前登录用户，未登录时返回 false
func UserID(c *gin.Context) (models.EntityID, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(models.EntityID)
	if !ok || id.IsZero() {
		return "", false
	}
	return id, true
}
