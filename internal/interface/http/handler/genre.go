package handler

import (
	"github.com/gin-gonic/gin"

	appgenre "github.com/xiebiao/bookmarket/internal/application/genre"
	"github.com/xiebiao/bookmarket/internal/interface/http/dto"
	"github.com/xiebiao/bookmarket/pkg/response"
)

// GenreHandler 分类HTTP处理器
// 写操作全部挂在RequireAdmin中间件之后，Handler里不再判管理员
type GenreHandler struct {
	manageUseCase *appgenre.ManageGenresUseCase
}

// NewGenreHandler 创建分类处理器
func NewGenreHandler(manageUseCase *appgenre.ManageGenresUseCase) *GenreHandler {
	return &GenreHandler{manageUseCase: manageUseCase}
}

// List 查询全部分类
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]appgenre.GenreResponse}
// @Router       /api/v1/genres [get]
func (h *GenreHandler) List(c *gin.Context) {
	result, err := h.manageUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateRoot 创建根分类
// @Summary      创建根分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateGenreRequest true "分类名"
// @Success      200 {object} response.Response{data=appgenre.GenreResponse}
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "非管理员"
// @Failure      409 {object} response.Response "分类名已存在"
// @Router       /api/v1/genres [post]
func (h *GenreHandler) CreateRoot(c *gin.Context) {
	var req dto.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.CreateRoot(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddChild 在父分类下创建子分类
// @Summary      创建子分类
// @Description  插入子分类并登记到父分类的子节点列表，两步在一个事务里
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "父分类ID"
// @Param        request body dto.AddChildGenreRequest true "分类名"
// @Success      200 {object} response.Response{data=appgenre.GenreResponse}
// @Failure      404 {object} response.Response "父分类不存在"
// @Router       /api/v1/genres/{id}/children [post]
func (h *GenreHandler) AddChild(c *gin.Context) {
	var req dto.AddChildGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.AddChild(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListChildren 查询直接子分类
// @Summary      子分类列表
// @Tags         分类
// @Produce      json
// @Param        id path string true "父分类ID"
// @Success      200 {object} response.Response{data=[]appgenre.GenreResponse}
// @Failure      404 {object} response.Response "父分类不存在"
// @Router       /api/v1/genres/{id}/children [get]
func (h *GenreHandler) ListChildren(c *gin.Context) {
	result, err := h.manageUseCase.ListChildren(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DetachChild 从父分类摘除并删除子分类
// @Summary      摘除子分类
// @Description  子分类不在父分类的子节点列表里时照常删除子分类
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "父分类ID"
// @Param        childId path string true "子分类ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "父分类或子分类不存在"
// @Router       /api/v1/genres/{id}/children/{childId} [delete]
func (h *GenreHandler) DetachChild(c *gin.Context) {
	if err := h.manageUseCase.DetachChild(c.Request.Context(), c.Param("id"), c.Param("childId")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// DeleteLeaf 删除分类
// @Summary      删除分类
// @Description  直接删除，不检查是否还有子节点
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "分类ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/genres/{id} [delete]
func (h *GenreHandler) DeleteLeaf(c *gin.Context) {
	if err := h.manageUseCase.DeleteLeaf(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
