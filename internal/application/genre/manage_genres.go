package genre

import (
	"context"

	"github.com/xiebiao/bookmarket/internal/domain/genre"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// TxManager 事务边界抽象（由mysql.TxManager实现）
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ManageGenresUseCase 分类树管理用例（仅管理员，权限在HTTP中间件校验）
// 设计说明：
// AddChild要写两行（插入子分类+更新父分类的子节点列表），任何一步
// 失败都会让树结构和节点记录不一致，所以整个操作包在数据库事务里。
type ManageGenresUseCase struct {
	genreService genre.Service
	txManager    TxManager
}

// NewManageGenresUseCase 创建分类管理用例
func NewManageGenresUseCase(genreService genre.Service, txManager TxManager) *ManageGenresUseCase {
	return &ManageGenresUseCase{
		genreService: genreService,
		txManager:    txManager,
	}
}

// GenreResponse 分类响应DTO
type GenreResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Children []string `json:"children"`
	IsParent bool     `json:"is_parent"`
}

func toGenreResponse(g *genre.Genre) *GenreResponse {
	children := make([]string, len(g.Children))
	for i, id := range g.Children {
		children[i] = string(id)
	}
	return &GenreResponse{
		ID:       string(g.ID),
		Name:     g.Name,
		Children: children,
		IsParent: g.IsParent,
	}
}

// CreateRoot 创建根分类
func (uc *ManageGenresUseCase) CreateRoot(ctx context.Context, name string) (*GenreResponse, error) {
	g, err := uc.genreService.CreateRoot(ctx, name)
	if err != nil {
		return nil, err
	}
	return toGenreResponse(g), nil
}

// AddChild 在父分类下创建子分类
// 事务保证：子分类插入与父分类更新要么都成功，要么都回滚
func (uc *ManageGenresUseCase) AddChild(ctx context.Context, rawParentID, name string) (*GenreResponse, error) {
	parentID, err := objectid.Parse(rawParentID)
	if err != nil {
		return nil, err
	}

	var child *genre.Genre
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var txErr error
		child, txErr = uc.genreService.AddChild(txCtx, parentID, name)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return toGenreResponse(child), nil
}

// ListChildren 查询父分类的全部直接子分类
func (uc *ManageGenresUseCase) ListChildren(ctx context.Context, rawParentID string) ([]*GenreResponse, error) {
	parentID, err := objectid.Parse(rawParentID)
	if err != nil {
		return nil, err
	}

	children, err := uc.genreService.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}

	result := make([]*GenreResponse, len(children))
	for i, g := range children {
		result[i] = toGenreResponse(g)
	}
	return result, nil
}

// DetachChild 从父分类摘除子分类并删除之
// 摘除引用和删除子分类两次写入，同样包在事务里
func (uc *ManageGenresUseCase) DetachChild(ctx context.Context, rawParentID, rawChildID string) error {
	parentID, err := objectid.Parse(rawParentID)
	if err != nil {
		return err
	}
	childID, err := objectid.Parse(rawChildID)
	if err != nil {
		return err
	}

	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		return uc.genreService.DetachChild(txCtx, parentID, childID)
	})
}

// DeleteLeaf 删除分类（不检查是否还有子节点）
func (uc *ManageGenresUseCase) DeleteLeaf(ctx context.Context, rawID string) error {
	id, err := objectid.Parse(rawID)
	if err != nil {
		return err
	}
	return uc.genreService.DeleteLeaf(ctx, id)
}

// List 查询全部分类
func (uc *ManageGenresUseCase) List(ctx context.Context) ([]*GenreResponse, error) {
	genres, err := uc.genreService.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*GenreResponse, len(genres))
	for i, g := range genres {
		result[i] = toGenreResponse(g)
	}
	return result, nil
}
