package user

import (
	"time"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. User是用户聚合的根实体，买家和卖家是同一种用户
// 2. 密码已加密存储（bcrypt），不应该有GetPassword()等方法暴露明文
// 3. IsAdmin决定能否操作分类树等管理接口
// 4. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID        objectid.ID
	Username  string
	Email     string
	Password  string // bcrypt哈希值
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(username, email, hashedPassword string) *User {
	now := time.Now()
	return &User{
		ID:        objectid.New(),
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		IsAdmin:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GrantAdmin 授予管理员权限（领域行为）
func (u *User) GrantAdmin() {
	u.IsAdmin = true
	u.UpdatedAt = time.Now()
}
