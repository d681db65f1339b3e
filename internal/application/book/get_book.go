package book

import (
	"context"
	"errors"

	"github.com/xiebiao/bookmarket/internal/domain/author"
	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/domain/genre"
	"github.com/xiebiao/bookmarket/internal/domain/user"
)

// GetBookUseCase 书籍详情查询用例
// 详情接口把作者和分类的ID解析成完整对象（各一次批量查询），并附上卖家用户名
type GetBookUseCase struct {
	bookService book.Service
	authorRepo  author.Repository
	genreRepo   genre.Repository
	userRepo    user.Repository
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(
	bookService book.Service,
	authorRepo author.Repository,
	genreRepo genre.Repository,
	userRepo user.Repository,
) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
		authorRepo:  authorRepo,
		genreRepo:   genreRepo,
		userRepo:    userRepo,
	}
}

// Execute 执行详情查询
// ID不是24位十六进制时返回"Invalid ID"
func (uc *GetBookUseCase) Execute(ctx context.Context, rawID string) (*BookDetail, error) {
	b, err := uc.bookService.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}

	authors, err := uc.authorRepo.FindByIDs(ctx, b.Authors)
	if err != nil {
		return nil, err
	}

	genres, err := uc.genreRepo.FindByIDs(ctx, b.Genres)
	if err != nil {
		return nil, err
	}

	// 卖家已注销时用户名留空，详情本身照常返回
	sellerName := ""
	seller, err := uc.userRepo.FindByID(ctx, b.SellerID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
	} else {
		sellerName = seller.Username
	}

	return toBookDetail(b, authors, genres, sellerName), nil
}
