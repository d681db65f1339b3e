package author

import (
	"context"

	"github.com/xiebiao/bookmarket/internal/domain/author"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// AuthorsUseCase 作者查询与维护用例
// 说明：作者记录由书籍发布流程自动登记（见book.CreateBookUseCase），
// 这里只暴露查询和改名
type AuthorsUseCase struct {
	authorService author.Service
}

// NewAuthorsUseCase 创建作者用例
func NewAuthorsUseCase(authorService author.Service) *AuthorsUseCase {
	return &AuthorsUseCase{authorService: authorService}
}

// AuthorResponse 作者响应DTO
type AuthorResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List 查询全部作者
func (uc *AuthorsUseCase) List(ctx context.Context) ([]*AuthorResponse, error) {
	authors, err := uc.authorService.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*AuthorResponse, len(authors))
	for i, a := range authors {
		result[i] = &AuthorResponse{ID: string(a.ID), Name: a.Name}
	}
	return result, nil
}

// Get 查询单个作者
func (uc *AuthorsUseCase) Get(ctx context.Context, rawID string) (*AuthorResponse, error) {
	id, err := objectid.Parse(rawID)
	if err != nil {
		return nil, err
	}

	a, err := uc.authorService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &AuthorResponse{ID: string(a.ID), Name: a.Name}, nil
}

// Rename 更新作者名（仅管理员）
func (uc *AuthorsUseCase) Rename(ctx context.Context, rawID, name string) (*AuthorResponse, error) {
	id, err := objectid.Parse(rawID)
	if err != nil {
		return nil, err
	}

	a, err := uc.authorService.Rename(ctx, id, name)
	if err != nil {
		return nil, err
	}
	return &AuthorResponse{ID: string(a.ID), Name: a.Name}, nil
}
