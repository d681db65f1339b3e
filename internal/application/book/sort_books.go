package book

import (
	"context"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/pkg/geo"
)

// SortLimit 排序类接口只返回前10条
const SortLimit = 10

// SortBooksUseCase 书籍排序查询用例
// 两个入口：按字段排序（name/unitPrice/genre）和按距离排序
type SortBooksUseCase struct {
	bookRepo book.Repository
}

// NewSortBooksUseCase 创建排序查询用例
func NewSortBooksUseCase(bookRepo book.Repository) *SortBooksUseCase {
	return &SortBooksUseCase{bookRepo: bookRepo}
}

// SortByField 按字段排序，返回前10条
// 业务规则：
// 1. 字段只允许name、unitPrice、genre
// 2. order为"ascending"时升序，其余一律降序
func (uc *SortBooksUseCase) SortByField(ctx context.Context, field, order string) ([]BookItem, error) {
	sortField, err := book.ParseSortField(field)
	if err != nil {
		return nil, err
	}
	sortOrder := book.ParseSortOrder(order)

	books, err := uc.bookRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	book.SortBooks(books, sortField, sortOrder)
	if len(books) > SortLimit {
		books = books[:SortLimit]
	}

	return toBookItems(books), nil
}

// SortByLocation 按与指定坐标的球面距离升序排序
// 没有坐标的书籍视为无穷远，排在最后
func (uc *SortBooksUseCase) SortByLocation(ctx context.Context, origin geo.Point) ([]BookItem, error) {
	if !origin.Valid() {
		return nil, book.ErrInvalidLocation
	}

	books, err := uc.bookRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	book.SortByDistance(books, origin)

	return toBookItems(books), nil
}
