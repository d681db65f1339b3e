package book

import (
	"context"
	"errors"

	"github.com/xiebiao/bookmarket/internal/domain/author"
	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/domain/genre"
	"github.com/xiebiao/bookmarket/internal/domain/user"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// PageSize 目录分页固定每页5条
const PageSize = 5

// ListBooksUseCase 书籍目录分页查询用例
// 设计说明：
// 目录页直接展示作者名、分类名和卖家用户名，
// 名称解析只针对当前页（最多5条），作者/分类各一次批量查询
type ListBooksUseCase struct {
	bookRepo   book.Repository
	authorRepo author.Repository
	genreRepo  genre.Repository
	userRepo   user.Repository
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(
	bookRepo book.Repository,
	authorRepo author.Repository,
	genreRepo genre.Repository,
	userRepo user.Repository,
) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookRepo:   bookRepo,
		authorRepo: authorRepo,
		genreRepo:  genreRepo,
		userRepo:   userRepo,
	}
}

// ListedBook 目录列表项：基础字段之外带解析后的名称
type ListedBook struct {
	BookItem
	AuthorNames []string `json:"author_names"`
	GenreNames  []string `json:"genre_names"`
	SellerName  string   `json:"seller_name"`
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List       []ListedBook `json:"list"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}

// Execute 执行列表查询
// 业务规则：
// 1. 每页固定5条
// 2. 页码必须落在[1, ceil(total/5)]内，否则返回"Invalid page number"
//    （目录为空时任何页码都越界）
func (uc *ListBooksUseCase) Execute(ctx context.Context, page int) (*ListBooksResponse, error) {
	// 1. 先取总数算出合法页码区间
	total, err := uc.bookRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	if page < 1 || page > totalPages {
		return nil, apperrors.ErrInvalidPage
	}

	// 2. 查询当前页
	books, _, err := uc.bookRepo.List(ctx, book.ListParams{
		Page:     page,
		PageSize: PageSize,
	})
	if err != nil {
		return nil, err
	}

	// 3. 解析当前页的作者名、分类名、卖家用户名
	list, err := uc.resolveNames(ctx, books)
	if err != nil {
		return nil, err
	}

	return &ListBooksResponse{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   PageSize,
		TotalPages: totalPages,
	}, nil
}

// NumberOfPages 查询目录总页数（前端渲染分页器用）
func (uc *ListBooksUseCase) NumberOfPages(ctx context.Context) (int, error) {
	total, err := uc.bookRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	return int((total + PageSize - 1) / PageSize), nil
}

// resolveNames 把ID批量换成名称
// 作者/分类被删时对应名称缺失；卖家被注销时用户名留空
func (uc *ListBooksUseCase) resolveNames(ctx context.Context, books []*book.Book) ([]ListedBook, error) {
	var authorIDs, genreIDs []objectid.ID
	seenAuthor := make(map[objectid.ID]struct{})
	seenGenre := make(map[objectid.ID]struct{})
	for _, b := range books {
		for _, id := range b.Authors {
			if _, ok := seenAuthor[id]; !ok {
				seenAuthor[id] = struct{}{}
				authorIDs = append(authorIDs, id)
			}
		}
		for _, id := range b.Genres {
			if _, ok := seenGenre[id]; !ok {
				seenGenre[id] = struct{}{}
				genreIDs = append(genreIDs, id)
			}
		}
	}

	authors, err := uc.authorRepo.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authorNames := make(map[objectid.ID]string, len(authors))
	for _, a := range authors {
		authorNames[a.ID] = a.Name
	}

	genres, err := uc.genreRepo.FindByIDs(ctx, genreIDs)
	if err != nil {
		return nil, err
	}
	genreNames := make(map[objectid.ID]string, len(genres))
	for _, g := range genres {
		genreNames[g.ID] = g.Name
	}

	// 一页最多5条，卖家逐个查（同卖家只查一次）
	sellerNames := make(map[objectid.ID]string)
	for _, b := range books {
		if _, ok := sellerNames[b.SellerID]; ok {
			continue
		}
		u, err := uc.userRepo.FindByID(ctx, b.SellerID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				sellerNames[b.SellerID] = ""
				continue
			}
			return nil, err
		}
		sellerNames[b.SellerID] = u.Username
	}

	list := make([]ListedBook, len(books))
	for i, b := range books {
		item := ListedBook{
			BookItem:    toBookItem(b),
			AuthorNames: make([]string, 0, len(b.Authors)),
			GenreNames:  make([]string, 0, len(b.Genres)),
			SellerName:  sellerNames[b.SellerID],
		}
		for _, id := range b.Authors {
			if name, ok := authorNames[id]; ok {
				item.AuthorNames = append(item.AuthorNames, name)
			}
		}
		for _, id := range b.Genres {
			if name, ok := genreNames[id]; ok {
				item.GenreNames = append(item.GenreNames, name)
			}
		}
		list[i] = item
	}
	return list, nil
}
