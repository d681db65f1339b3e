package search

import (
	"context"
	"strings"

	"github.com/xiebiao/bookmarket/internal/domain/author"
	appbook "github.com/xiebiao/bookmarket/internal/application/book"
	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/pkg/geo"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// AdvancedSearchUseCase 高级搜索用例
// 设计说明：
// 1. 作者条件是名字子串：先在作者表模糊匹配出ID，再按ID过滤书籍
// 2. 分类/标签是AND语义，价格区间在应用层先做钳制
// 3. 结果可选按距离排序（最后一步，在内存中完成）
type AdvancedSearchUseCase struct {
	bookRepo   book.Repository
	authorRepo author.Repository
}

// NewAdvancedSearchUseCase 创建高级搜索用例
func NewAdvancedSearchUseCase(bookRepo book.Repository, authorRepo author.Repository) *AdvancedSearchUseCase {
	return &AdvancedSearchUseCase{
		bookRepo:   bookRepo,
		authorRepo: authorRepo,
	}
}

// AdvancedSearchRequest 高级搜索请求DTO
// 所有条件都是可选的，空条件不参与过滤
type AdvancedSearchRequest struct {
	Name     string     // 书名子串（大小写不敏感）
	Author   string     // 作者名子串（大小写不敏感）
	GenreIDs []string   // 分类ID列表（AND语义）
	Tags     []string   // 标签列表（AND语义，匹配前转小写）
	MinPrice float64    // 最低价（负数按0处理）
	MaxPrice float64    // 最高价（<=0或>10000时按10000处理）
	Location *geo.Point // 有值时结果按距离升序排序
}

// Execute 执行搜索
func (uc *AdvancedSearchUseCase) Execute(ctx context.Context, req AdvancedSearchRequest) ([]appbook.BookItem, error) {
	// 1. 价格区间钳制
	minPrice := req.MinPrice
	if minPrice < 0 {
		minPrice = 0
	}
	maxPrice := req.MaxPrice
	if maxPrice <= 0 || maxPrice > book.MaxUnitPrice {
		maxPrice = book.MaxUnitPrice
	}

	// 2. 作者名子串 → 作者ID列表
	// 填了作者条件但一个作者都匹配不上时，结果必然为空，直接短路
	var authorIDs []objectid.ID
	if keyword := strings.TrimSpace(req.Author); keyword != "" {
		authors, err := uc.authorRepo.SearchByName(ctx, keyword)
		if err != nil {
			return nil, err
		}
		if len(authors) == 0 {
			return []appbook.BookItem{}, nil
		}
		authorIDs = make([]objectid.ID, len(authors))
		for i, a := range authors {
			authorIDs[i] = a.ID
		}
	}

	// 3. 分类ID解析
	genreIDs := make([]objectid.ID, 0, len(req.GenreIDs))
	for _, raw := range req.GenreIDs {
		id, err := objectid.Parse(raw)
		if err != nil {
			return nil, err
		}
		genreIDs = append(genreIDs, id)
	}

	// 4. 执行查询
	books, err := uc.bookRepo.Search(ctx, book.SearchParams{
		Name:      strings.TrimSpace(req.Name),
		Genres:    genreIDs,
		Tags:      book.NormalizeTags(req.Tags),
		AuthorIDs: authorIDs,
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
	})
	if err != nil {
		return nil, err
	}

	// 5. 可选的距离排序（排序永远是最后一步）
	if req.Location != nil {
		if !req.Location.Valid() {
			return nil, book.ErrInvalidLocation
		}
		book.SortByDistance(books, *req.Location)
	}

	return toItems(books), nil
}

func toItems(books []*book.Book) []appbook.BookItem {
	items := make([]appbook.BookItem, 0, len(books))
	for _, b := range books {
		items = append(items, toItem(b))
	}
	return items
}

func toItem(b *book.Book) appbook.BookItem {
	genres := make([]string, len(b.Genres))
	for i, id := range b.Genres {
		genres[i] = string(id)
	}
	authors := make([]string, len(b.Authors))
	for i, id := range b.Authors {
		authors[i] = string(id)
	}
	return appbook.BookItem{
		ID:            string(b.ID),
		Name:          b.Name,
		Genres:        genres,
		Authors:       authors,
		Quantity:      b.Quantity,
		UnitPrice:     b.UnitPrice,
		BookCondition: string(b.BookCondition),
		SellerID:      string(b.SellerID),
		Tags:          b.Tags,
		Images:        b.Images,
		Location:      b.Location,
		CreatedAt:     b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
