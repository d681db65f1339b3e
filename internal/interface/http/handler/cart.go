package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/bookmarket/internal/application/cart"
	"github.com/xiebiao/bookmarket/internal/interface/http/dto"
	"github.com/xiebiao/bookmarket/internal/interface/http/middleware"
	"github.com/xiebiao/bookmarket/pkg/response"
)

// CartHandler 购物车HTTP处理器
// 每个用户只有一个购物车，接口里不出现购物车ID，归属由JWT决定
type CartHandler struct {
	cartUseCase *appcart.CartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(cartUseCase *appcart.CartUseCase) *CartHandler {
	return &CartHandler{cartUseCase: cartUseCase}
}

// Get 查询当前用户购物车
// @Summary      查询购物车
// @Description  还没有购物车时返回空车，不报错
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcart.CartResponse}
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	ownerID := middleware.MustGetUserID(c)

	result, err := h.cartUseCase.Get(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddItem 加购
// @Summary      加入购物车
// @Description  数量区间[1,200]；同一本书重复加购生成独立条目
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "书籍与数量"
// @Success      200 {object} response.Response{data=appcart.CartResponse}
// @Failure      400 {object} response.Response "数量越界"
// @Failure      404 {object} response.Response "书籍不存在"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	ownerID := middleware.MustGetUserID(c)

	result, err := h.cartUseCase.AddBook(c.Request.Context(), appcart.AddBookRequest{
		OwnerID:  ownerID,
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateItem 修改条目数量
// @Summary      修改购物车条目数量
// @Description  行金额按加购时锁定的单价重新计算
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "购物车条目ID"
// @Param        request body dto.UpdateCartItemRequest true "新数量"
// @Success      200 {object} response.Response{data=appcart.CartResponse}
// @Failure      400 {object} response.Response "数量越界"
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /api/v1/cart/items/{id} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	ownerID := middleware.MustGetUserID(c)

	result, err := h.cartUseCase.UpdateQuantity(c.Request.Context(), appcart.UpdateQuantityRequest{
		OwnerID:  ownerID,
		ItemID:   c.Param("id"),
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RemoveItem 移除条目
// @Summary      移除购物车条目
// @Description  条目不存在时静默成功（幂等删除）；从未加购的用户没有购物车，报错
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "购物车条目ID"
// @Success      200 {object} response.Response{data=appcart.CartResponse}
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "购物车不存在"
// @Router       /api/v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	ownerID := middleware.MustGetUserID(c)

	result, err := h.cartUseCase.RemoveBook(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
