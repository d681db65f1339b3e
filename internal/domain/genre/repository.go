package genre

import (
	"context"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// Repository 分类仓储接口
type Repository interface {
	// Create 创建分类
	// 注意：分类名重复时返回ErrGenreDuplicate
	Create(ctx context.Context, g *Genre) error

	// FindByID 根据ID查找分类
	// 如果不存在，返回ErrGenreNotFound
	FindByID(ctx context.Context, id objectid.ID) (*Genre, error)

	// FindByIDs 批量查找分类（一次查询取回某节点的全部子分类）
	// 不存在的ID会被静默跳过
	FindByIDs(ctx context.Context, ids []objectid.ID) ([]*Genre, error)

	// Update 更新分类（子节点列表变化后持久化）
	Update(ctx context.Context, g *Genre) error

	// Delete 删除分类
	// 如果不存在，返回ErrGenreNotFound
	Delete(ctx context.Context, id objectid.ID) error

	// List 查询全部分类
	List(ctx context.Context) ([]*Genre, error)
}
