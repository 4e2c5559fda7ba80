package public

import (
	"errors"

	handlershared "github.com/flipcart-next/internal/http/handlers/shared"
	"github.com/flipcart-next/internal/http/response"
	"github.com/flipcart-next/internal/models"
	"github.com/flipcart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求，productId/user 兼容字符串与数字
type AddCartItemRequest struct {
	ProductID models.EntityID `json:"productId"`
	User      models.EntityID `json:"user"`
	Quantity  *models.FlexInt `json:"quantity"`
}

func (r AddCartItemRequest) toInput(userID models.EntityID) service.AddCartItemInput {
	input := service.AddCartItemInput{UserID: userID, ProductID: r.ProductID}
	if r.Quantity != nil {
		quantity := int(*r.Quantity)
		input.Quantity = &quantity
	}
	return input
}

// AddCartItem 加入购物车（用户来自请求体）
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RequestLog(c).Debugw("cart_add_bind_failed", "error", err)
		response.Fail(c, response.CodeBadRequest, msgCartFieldsRequired, nil)
		return
	}
	h.addCartItem(c, req.toInput(req.User))
}

// AddMyCartItem 加入当前登录用户的购物车，忽略请求体中的 user
func (h *Handler) AddMyCartItem(c *gin.Context) {
	uid, ok := handlershared.UserID(c)
	if !ok {
		response.Unauthorized(c, msgUnauthorized)
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RequestLog(c).Debugw("cart_add_bind_failed", "error", err)
		response.Fail(c, response.CodeBadRequest, msgCartFieldsRequired, nil)
		return
	}
	h.addCartItem(c, req.toInput(uid))
}

func (h *Handler) addCartItem(c *gin.Context, input service.AddCartItemInput) {
	cart, err := h.CartService.AddItem(c.Request.Context(), input)
	if err != nil {
		if rule, ok := matchMappedError(err, cartAddErrorRules); ok {
			response.Fail(c, rule.code, rule.msg, nil)
			return
		}
		handlershared.RespondFail(c, response.CodeInternal, msgCartAddFailed, err, true)
		return
	}
	handlershared.RequestLog(c).Infow("cart_add_ok",
		"user_id", input.UserID,
		"product_id", input.ProductID,
		"cart_id", cart.ID,
	)
	response.SuccessWithMsg(c, response.CodeCreated, msgCartAdded, cart)
}

// ListCarts 获取全部购物车文档
func (h *Handler) ListCarts(c *gin.Context) {
	carts, err := h.CartService.ListAll(c.Request.Context())
	if err != nil {
		handlershared.RespondFail(c, response.CodeInternal, msgCartFetchFailed, err, true)
		return
	}
	response.SuccessWithCount(c, carts, len(carts))
}

// DeleteCart 按文档 ID 删除购物车
func (h *Handler) DeleteCart(c *gin.Context) {
	id, _ := models.ParseEntityID(c.Param("id"))
	err := h.CartService.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		response.Message(c, response.CodeOK, msgCartDeleted)
	case errors.Is(err, service.ErrCartNotFound):
		response.Message(c, response.CodeNotFound, msgCartNotFound)
	default:
		handlershared.RespondError(c, response.CodeInternal, msgInternal, err)
	}
}

// ViewCart 获取指定用户的购物车视图
func (h *Handler) ViewCart(c *gin.Context) {
	uid, _ := models.ParseEntityID(c.Param("user"))
	h.renderCartView(c, uid)
}

// ViewMyCart 获取当前登录用户的购物车视图
func (h *Handler) ViewMyCart(c *gin.Context) {
	uid, ok := handlershared.UserID(c)
	if !ok {
		response.Unauthorized(c, msgUnauthorized)
		return
	}
	h.renderCartView(c, uid)
}

func (h *Handler) renderCartView(c *gin.Context, uid models.EntityID) {
	view, err := h.CartService.View(c.Request.Context(), uid)
	if err != nil {
		if rule, ok := matchMappedError(err, cartViewErrorRules); ok {
			handlershared.RespondFail(c, rule.code, rule.msg, err, false)
			return
		}
		handlershared.RespondFail(c, response.CodeInternal, msgCartFetchFailed, err, true)
		return
	}
	response.Success(c, view)
}
