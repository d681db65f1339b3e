package handler

import (
	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/bookmarket/internal/application/author"
	"github.com/xiebiao/bookmarket/internal/interface/http/dto"
	"github.com/xiebiao/bookmarket/pkg/response"
)

// AuthorHandler 作者HTTP处理器
// 作者由发书流程自动登记，这里只有查询和改名
type AuthorHandler struct {
	authorsUseCase *appauthor.AuthorsUseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(authorsUseCase *appauthor.AuthorsUseCase) *AuthorHandler {
	return &AuthorHandler{authorsUseCase: authorsUseCase}
}

// List 查询全部作者
// @Summary      作者列表
// @Tags         作者
// @Produce      json
// @Success      200 {object} response.Response{data=[]appauthor.AuthorResponse}
// @Router       /api/v1/authors [get]
func (h *AuthorHandler) List(c *gin.Context) {
	result, err := h.authorsUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 查询单个作者
// @Summary      作者详情
// @Tags         作者
// @Produce      json
// @Param        id path string true "作者ID"
// @Success      200 {object} response.Response{data=appauthor.AuthorResponse}
// @Failure      400 {object} response.Response "ID格式非法"
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [get]
func (h *AuthorHandler) Get(c *gin.Context) {
	result, err := h.authorsUseCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Rename 作者改名
// @Summary      作者改名
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "作者ID"
// @Param        request body dto.RenameAuthorRequest true "新名字"
// @Success      200 {object} response.Response{data=appauthor.AuthorResponse}
// @Failure      403 {object} response.Response "非管理员"
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [patch]
func (h *AuthorHandler) Rename(c *gin.Context) {
	var req dto.RenameAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.authorsUseCase.Rename(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
