package user

import (
	"context"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/mysql层
// 3. 这样domain层不依赖任何外部框架（GORM、sqlx等）
// 4. 便于单元测试（Mock此接口）
type Repository interface {
	// Create 创建用户
	// 用户名或邮箱已存在时返回ErrUsernameDuplicate/ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	// 如果不存在，返回ErrUserNotFound
	FindByID(ctx context.Context, id objectid.ID) (*User, error)

	// FindByUsername 根据用户名查找用户
	// 如果不存在，返回ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail 根据邮箱查找用户
	// 如果不存在，返回ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update 更新用户信息
	Update(ctx context.Context, user *User) error
}
