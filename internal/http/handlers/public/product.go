package public

import (
	"strconv"
	"strings"

	"github.com/flipcart-next/internal/catalog"
	handlershared "github.com/flipcart-next/internal/http/handlers/shared"
	"github.com/flipcart-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品列表/搜索，返回扁平数组
func (h *Handler) ListProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(strings.TrimSpace(c.Query("limit")))
	query := catalog.Query{
		Keyword:  c.Query("q"),
		Category: c.Query("category"),
		Limit:    limit,
	}
	products, err := h.ProductService.List(c.Request.Context(), query)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, msgProductsFailed)
		return
	}
	c.JSON(response.CodeOK, products)
}

// ListCategories 商品分类（按首次出现顺序）
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.ProductService.Categories(c.Request.Context())
	if err != nil {
		if rule, ok := matchMappedError(err, productErrorRules); ok {
			handlershared.RespondFail(c, rule.code, rule.msg, err, false)
			return
		}
		handlershared.RespondFail(c, response.CodeInternal, msgProductsFailed, err, true)
		return
	}
	response.Success(c, categories)
}
