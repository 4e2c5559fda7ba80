package public

import (
	"github.com/flipcart-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Healthz 存活检查
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(response.CodeOK, gin.H{"status": "ok"})
}
