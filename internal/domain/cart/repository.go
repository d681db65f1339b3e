package cart

import (
	"context"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// Repository 购物车仓储接口
// 设计说明：购物车以整行为单位读写（条目存JSON列），
// 没有针对单个条目的持久化操作
type Repository interface {
	// FindByOwner 查询买家的购物车
	// 如果不存在，返回ErrCartNotFound
	FindByOwner(ctx context.Context, ownerID objectid.ID) (*Cart, error)

	// Create 创建购物车（买家首次加购时）
	Create(ctx context.Context, c *Cart) error

	// Update 更新购物车（条目变化后整体落库）
	Update(ctx context.Context, c *Cart) error

	// Delete 删除购物车（结账成功后）
	Delete(ctx context.Context, id objectid.ID) error
}
