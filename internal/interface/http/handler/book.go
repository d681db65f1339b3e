package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookmarket/internal/application/book"
	"github.com/xiebiao/bookmarket/internal/interface/http/dto"
	"github.com/xiebiao/bookmarket/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
	"github.com/xiebiao/bookmarket/pkg/geo"
	"github.com/xiebiao/bookmarket/pkg/response"
)

// BookHandler 书籍HTTP处理器
// 目录查询类接口公开，发布/修改/下架需要登录
type BookHandler struct {
	createUseCase      *appbook.CreateBookUseCase
	listUseCase        *appbook.ListBooksUseCase
	sortUseCase        *appbook.SortBooksUseCase
	getUseCase         *appbook.GetBookUseCase
	giveawaysUseCase   *appbook.GiveawaysUseCase
	updateStockUseCase *appbook.UpdateStockUseCase
	deleteUseCase      *appbook.DeleteBookUseCase
	uploadImageUseCase *appbook.UploadImageUseCase
}

// NewBookHandler 创建书籍处理器
func NewBookHandler(
	createUseCase *appbook.CreateBookUseCase,
	listUseCase *appbook.ListBooksUseCase,
	sortUseCase *appbook.SortBooksUseCase,
	getUseCase *appbook.GetBookUseCase,
	giveawaysUseCase *appbook.GiveawaysUseCase,
	updateStockUseCase *appbook.UpdateStockUseCase,
	deleteUseCase *appbook.DeleteBookUseCase,
	uploadImageUseCase *appbook.UploadImageUseCase,
) *BookHandler {
	return &BookHandler{
		createUseCase:      createUseCase,
		listUseCase:        listUseCase,
		sortUseCase:        sortUseCase,
		getUseCase:         getUseCase,
		giveawaysUseCase:   giveawaysUseCase,
		updateStockUseCase: updateStockUseCase,
		deleteUseCase:      deleteUseCase,
		uploadImageUseCase: uploadImageUseCase,
	}
}

// Create 发布书籍（上架）
// @Summary      发布书籍
// @Description  卖家发布二手书，作者按名字自动登记
// @Tags         书籍
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "书籍信息"
// @Success      200 {object} response.Response{data=appbook.BookItem}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      409 {object} response.Response "同名书籍已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	sellerID := middleware.MustGetUserID(c)

	// 经纬度要么都传要么都不传
	var location *geo.Point
	if req.Latitude != nil && req.Longitude != nil {
		location = &geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		SellerID:      sellerID,
		Name:          req.Name,
		AuthorNames:   req.Authors,
		GenreIDs:      req.Genres,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		BookCondition: req.BookCondition,
		Tags:          req.Tags,
		Description:   req.Description,
		Location:      location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// List 目录分页查询
// @Summary      书籍目录
// @Description  按发布时间倒序分页，每页5条，条目带解析后的作者名/分类名/卖家用户名；页码越界返回Invalid page number
// @Tags         书籍
// @Produce      json
// @Param        page query int false "页码（从1开始）"
// @Success      200 {object} response.Response{data=appbook.ListBooksResponse}
// @Failure      406 {object} response.Response "页码越界"
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	var query dto.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		// 页码不是数字与页码越界同样处理
		response.Error(c, apperrors.ErrInvalidPage)
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), query.Page)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Pages 目录总页数
// @Summary      目录总页数
// @Description  前端渲染分页器用
// @Tags         书籍
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /api/v1/books/pages [get]
func (h *BookHandler) Pages(c *gin.Context) {
	pages, err := h.listUseCase.NumberOfPages(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"pages": pages})
}

// Sort 按字段排序
// @Summary      书籍排序
// @Description  按name/unitPrice/genre排序，返回前10条；order为ascending时升序
// @Tags         书籍
// @Produce      json
// @Param        by query string true "排序字段" Enums(name, unitPrice, genre)
// @Param        order query string false "排序方向" Enums(ascending, descending)
// @Success      200 {object} response.Response{data=[]appbook.BookItem}
// @Failure      400 {object} response.Response "非法排序字段"
// @Router       /api/v1/books/sort [get]
func (h *BookHandler) Sort(c *gin.Context) {
	var query dto.SortBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.sortUseCase.SortByField(c.Request.Context(), query.By, query.Order)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SortByLocation 按距离排序
// @Summary      按距离排序
// @Description  按与指定坐标的球面距离升序，没有坐标的书排最后
// @Tags         书籍
// @Produce      json
// @Param        latitude query number true "纬度"
// @Param        longitude query number true "经度"
// @Success      200 {object} response.Response{data=[]appbook.BookItem}
// @Failure      400 {object} response.Response "坐标非法"
// @Router       /api/v1/books/location [get]
func (h *BookHandler) SortByLocation(c *gin.Context) {
	var query dto.LocationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.sortUseCase.SortByLocation(c.Request.Context(), geo.Point{
		Latitude:  query.Latitude,
		Longitude: query.Longitude,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Giveaways 免费赠送列表
// @Summary      免费书籍
// @Description  单价为0的书籍，最多10条，走Redis缓存
// @Tags         书籍
// @Produce      json
// @Success      200 {object} response.Response{data=[]appbook.BookItem}
// @Router       /api/v1/books/giveaways [get]
func (h *BookHandler) Giveaways(c *gin.Context) {
	result, err := h.giveawaysUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 书籍详情
// @Summary      书籍详情
// @Description  按ID查询，作者和分类解析成完整对象并附卖家用户名；ID非24位十六进制返回Invalid ID
// @Tags         书籍
// @Produce      json
// @Param        id path string true "书籍ID"
// @Success      200 {object} response.Response{data=appbook.BookDetail}
// @Failure      400 {object} response.Response "ID格式非法"
// @Failure      404 {object} response.Response "书籍不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	result, err := h.getUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateStock 修改库存/价格
// @Summary      修改库存或价格
// @Description  卖家修改自己书籍的库存和单价，两个字段都可选
// @Tags         书籍
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "书籍ID"
// @Param        request body dto.UpdateStockRequest true "修改内容"
// @Success      200 {object} response.Response{data=appbook.BookItem}
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "不是自己的书"
// @Failure      404 {object} response.Response "书籍不存在"
// @Router       /api/v1/books/{id} [patch]
func (h *BookHandler) UpdateStock(c *gin.Context) {
	var req dto.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	sellerID := middleware.MustGetUserID(c)

	result, err := h.updateStockUseCase.Execute(c.Request.Context(), appbook.UpdateStockRequest{
		SellerID:  sellerID,
		BookID:    c.Param("id"),
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Delete 下架书籍
// @Summary      下架书籍
// @Description  卖家删除自己的书，返回被删书籍的快照
// @Tags         书籍
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "书籍ID"
// @Success      200 {object} response.Response{data=appbook.BookItem}
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "不是自己的书"
// @Failure      404 {object} response.Response "书籍不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	sellerID := middleware.MustGetUserID(c)

	result, err := h.deleteUseCase.Execute(c.Request.Context(), sellerID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UploadImage 上传书籍图片
// @Summary      上传书籍图片
// @Description  multipart表单上传，对象存入S3，URL追加到书籍记录
// @Tags         书籍
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "书籍ID"
// @Param        image formData file true "图片文件"
// @Success      200 {object} response.Response{data=appbook.BookItem}
// @Failure      400 {object} response.Response "缺少文件"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/books/{id}/images [post]
func (h *BookHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: 缺少image文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ErrorWithCode(c, 50000, "读取上传文件失败")
		return
	}
	defer file.Close()

	sellerID := middleware.MustGetUserID(c)

	result, err := h.uploadImageUseCase.Execute(c.Request.Context(), appbook.UploadImageRequest{
		SellerID:    sellerID,
		BookID:      c.Param("id"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
