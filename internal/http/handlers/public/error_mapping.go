package public

import (
	"errors"

	handlershared "github.com/flipcart-next/internal/http/handlers/shared"
	"github.com/flipcart-next/internal/http/response"
	"github.com/flipcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// 对外错误文案
const (
	msgCartFieldsRequired = "ProductId and user are required"
	msgCartQuantity       = "Quantity must be a positive integer"
	msgCartAdded          = "Item added to cart"
	msgCartAddFailed      = "Failed to add item to cart"
	msgCartFetchFailed    = "Failed to fetch cart data"
	msgCartNotFound       = "Cart item not found"
	msgCartDeleted        = "Cart item deleted successfully"
	msgInternal           = "Internal server error"
	msgCatalogUnavailable = "Catalog unavailable"
	msgProductsFailed     = "Failed to fetch products"
	msgUnauthorized       = "Unauthorized"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

// matchMappedError 返回第一个命中的规则
func matchMappedError(err error, rules []mappedHandlerError) (mappedHandlerError, bool) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			return rule, true
		}
	}
	return mappedHandlerError{}, false
}

// respondWithMappedError 以 {error} 形式返回映射后的错误
func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	if rule, ok := matchMappedError(err, rules); ok {
		handlershared.RespondError(c, rule.code, rule.msg, nil)
		return
	}
	handlershared.RespondError(c, fallbackCode, fallbackMsg, err)
}

var cartAddErrorRules = []mappedHandlerError{
	{target: service.ErrCartInvalid, code: response.CodeBadRequest, msg: msgCartFieldsRequired},
	{target: service.ErrCartQuantityInvalid, code: response.CodeBadRequest, msg: msgCartQuantity},
}

var cartViewErrorRules = []mappedHandlerError{
	{target: service.ErrCartInvalid, code: response.CodeBadRequest, msg: msgCartFieldsRequired},
	{target: service.ErrCatalogUnavailable, code: response.CodeBadGateway, msg: msgCatalogUnavailable},
}

var productErrorRules = []mappedHandlerError{
	{target: service.ErrCatalogUnavailable, code: response.CodeBadGateway, msg: msgCatalogUnavailable},
}

var signupErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "Invalid email"},
	{target: service.ErrPasswordTooShort, code: response.CodeBadRequest, msg: "Password too short"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, msg: "Email already registered"},
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "Invalid email"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "Invalid email or password"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, msg: "Account disabled"},
}
