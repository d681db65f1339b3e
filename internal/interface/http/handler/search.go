package handler

import (
	"github.com/gin-gonic/gin"

	appsearch "github.com/xiebiao/bookmarket/internal/application/search"
	"github.com/xiebiao/bookmarket/internal/interface/http/dto"
	"github.com/xiebiao/bookmarket/pkg/geo"
	"github.com/xiebiao/bookmarket/pkg/response"
)

// SearchHandler 高级搜索HTTP处理器
// 条件组合较多，用POST+JSON而不是查询串
type SearchHandler struct {
	searchUseCase *appsearch.AdvancedSearchUseCase
}

// NewSearchHandler 创建搜索处理器
func NewSearchHandler(searchUseCase *appsearch.AdvancedSearchUseCase) *SearchHandler {
	return &SearchHandler{searchUseCase: searchUseCase}
}

// Search 高级搜索
// @Summary      高级搜索
// @Description  按书名/作者/分类/标签/价格区间组合过滤，可选按距离排序
// @Tags         搜索
// @Accept       json
// @Produce      json
// @Param        request body dto.AdvancedSearchRequest true "搜索条件"
// @Success      200 {object} response.Response{data=[]appbook.BookItem}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/search [post]
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.AdvancedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	var location *geo.Point
	if req.Latitude != nil && req.Longitude != nil {
		location = &geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	result, err := h.searchUseCase.Execute(c.Request.Context(), appsearch.AdvancedSearchRequest{
		Name:     req.Name,
		Author:   req.Author,
		GenreIDs: req.Genres,
		Tags:     req.Tags,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Location: location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
