package book

import (
	"context"

	"github.com/xiebiao/bookmarket/internal/domain/author"
	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/domain/genre"
	"github.com/xiebiao/bookmarket/pkg/geo"
	"github.com/xiebiao/bookmarket/pkg/metrics"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// CreateBookUseCase 发布书籍用例
// 设计说明：
// 1. 作者按名字自动解析：不存在的作者会被登记（author.Service.Resolve）
// 2. 分类必须预先由管理员创建，只校验存在性，不自动创建
// 3. 同一卖家的书名唯一性由数据库复合索引保证
type CreateBookUseCase struct {
	bookService   book.Service
	authorService author.Service
	genreRepo     genre.Repository
}

// NewCreateBookUseCase 创建发布书籍用例
func NewCreateBookUseCase(
	bookService book.Service,
	authorService author.Service,
	genreRepo genre.Repository,
) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService:   bookService,
		authorService: authorService,
		genreRepo:     genreRepo,
	}
}

// CreateBookRequest 发布书籍请求DTO
type CreateBookRequest struct {
	SellerID      string     // 卖家ID（从JWT中提取）
	Name          string     // 书名
	AuthorNames   []string   // 作者名列表（自动解析/登记）
	GenreIDs      []string   // 分类ID列表
	Quantity      int        // 库存
	UnitPrice     float64    // 单价（0表示免费赠送）
	BookCondition string     // 成色：used | unused
	Tags          []string   // 标签（入库前统一转小写）
	Description   string     // 描述
	Location      *geo.Point // 卖家坐标（可选）
}

// Execute 执行发布
// 业务流程：
// 1. 解析分类ID并校验存在性
// 2. 按名字解析作者（不存在则自动登记）
// 3. 构建实体并交给领域服务校验、落库
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookItem, error) {
	sellerID, err := objectid.Parse(req.SellerID)
	if err != nil {
		return nil, err
	}

	// 1. 分类校验
	genreIDs := make([]objectid.ID, 0, len(req.GenreIDs))
	for _, raw := range req.GenreIDs {
		id, err := objectid.Parse(raw)
		if err != nil {
			return nil, err
		}
		if _, err := uc.genreRepo.FindByID(ctx, id); err != nil {
			return nil, err
		}
		genreIDs = append(genreIDs, id)
	}

	// 2. 作者解析（find-or-create）
	authorIDs, err := uc.authorService.ResolveAll(ctx, req.AuthorNames)
	if err != nil {
		return nil, err
	}

	// 3. 构建实体并发布
	b := book.NewBook(
		req.Name,
		genreIDs,
		authorIDs,
		req.Quantity,
		req.UnitPrice,
		book.Condition(req.BookCondition),
		sellerID,
		req.Tags,
		req.Description,
		req.Location,
	)

	if err := uc.bookService.Publish(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.ListingsCreatedTotal)

	item := toBookItem(b)
	return &item, nil
}
