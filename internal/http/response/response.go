package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope 购物车/商品接口统一响应结构
// 字段按需出现，保持与既有前端约定一致
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// MessageBody 仅含 message 的响应
type MessageBody struct {
	Message string `json:"message"`
}

// ErrorBody 仅含 error 的响应
type ErrorBody struct {
	Error string `json:"error"`
}

// TokenBody 鉴权成功响应
type TokenBody struct {
	Token string `json:"token"`
}

// Success 成功响应 {success:true,data}
func Success(c *gin.Context, data interface{}) {
	c.JSON(CodeOK, Envelope{Success: true, Data: data})
}

// SuccessWithMsg 成功响应（自定义状态码与消息）
func SuccessWithMsg(c *gin.Context, status int, msg string, data interface{}) {
	c.JSON(status, Envelope{Success: true, Message: msg, Data: data})
}

// SuccessWithCount 列表响应 {success:true,count,data}
func SuccessWithCount(c *gin.Context, data interface{}, count int) {
	c.JSON(CodeOK, Envelope{Success: true, Count: &count, Data: data})
}

// Fail 失败响应 {success:false,message[,error]}
func Fail(c *gin.Context, status int, msg string, err error) {
	body := Envelope{Success: false, Message: msg}
	if err != nil {
		body.Error = err.Error()
	}
	c.JSON(status, body)
}

// Message 仅返回 message
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, MessageBody{Message: msg})
}

// Error 仅返回 error
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorBody{Error: msg})
}

// Token 返回 token
func Token(c *gin.Context, status int, token string) {
	c.JSON(status, TokenBody{Token: token})
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}
