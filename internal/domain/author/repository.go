package author

import (
	"context"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// Repository 作者仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/mysql层
// 3. 便于单元测试（Mock此接口）
type Repository interface {
	// Create 创建作者
	// 注意：名字唯一性由数据库UNIQUE索引保证，重复时返回ErrAuthorDuplicate
	Create(ctx context.Context, a *Author) error

	// FindByID 根据ID查找作者
	// 如果不存在，返回ErrAuthorNotFound
	FindByID(ctx context.Context, id objectid.ID) (*Author, error)

	// FindByIDs 批量查找作者（用于书籍详情的作者解析）
	// 不存在的ID会被静默跳过，不返回错误
	FindByIDs(ctx context.Context, ids []objectid.ID) ([]*Author, error)

	// FindByName 根据名字精确查找作者
	// 如果不存在，返回ErrAuthorNotFound
	FindByName(ctx context.Context, name string) (*Author, error)

	// SearchByName 按名字模糊查找（大小写不敏感的子串匹配）
	// 用于高级搜索按作者名筛选书籍
	SearchByName(ctx context.Context, keyword string) ([]*Author, error)

	// Update 更新作者信息
	Update(ctx context.Context, a *Author) error

	// List 查询全部作者
	List(ctx context.Context) ([]*Author, error)
}
