package public

import (
	"strconv"
	"strings"

	handlershared "github.com/flipcart-next/internal/http/handlers/shared"
	"github.com/flipcart-next/internal/http/response"
	"github.com/flipcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SignupRequest 注册请求
type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup 用户注册
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}
	_, token, err := h.UserAuthService.Signup(c.Request.Context(), req.Email, req.Password, strings.TrimSpace(req.Name))
	if err != nil {
		respondWithMappedError(c, err, signupErrorRules, response.CodeInternal, "Signup failed")
		return
	}
	response.Token(c, response.CodeCreated, token)
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}
	user, token, err := h.UserAuthService.Login(c.Request.Context(), req.Email, req.Password)
	h.UserLoginLogService.Record(c.Request.Context(), service.LoginAttempt{
		Email:     req.Email,
		User:      user,
		Err:       err,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString(handlershared.RequestIDKey),
	})
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "Login failed")
		return
	}
	response.Token(c, response.CodeOK, token)
}

// ListMyLoginLogs 当前用户最近的登录记录
func (h *Handler) ListMyLoginLogs(c *gin.Context) {
	uid, ok := handlershared.UserID(c)
	if !ok {
		response.Unauthorized(c, msgUnauthorized)
		return
	}
	limit, _ := strconv.Atoi(strings.TrimSpace(c.Query("limit")))
	logs, err := h.UserLoginLogService.ListByUser(c.Request.Context(), uid, limit)
	if err != nil {
		handlershared.RespondFail(c, response.CodeInternal, "Failed to fetch login logs", err, false)
		return
	}
	response.SuccessWithCount(c, logs, len(logs))
}
