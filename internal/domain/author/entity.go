package author

import (
	"strings"
	"time"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// Author 作者实体（聚合根）
// 设计说明：
// 1. 作者由书籍发布流程按名字自动登记，不需要作者本人注册
// 2. Name有唯一索引，同名作者只会存在一条记录
// 3. ID是应用侧生成的24位十六进制文档ID（见pkg/objectid）
type Author struct {
	ID        objectid.ID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// 作者名长度的允许区间
const (
	MinNameLength = 3
	MaxNameLength = 255
)

// NewAuthor 创建新作者（工厂方法）
// 名字会去除首尾空白，保证"Jack London"和" Jack London "指向同一作者
func NewAuthor(name string) *Author {
	now := time.Now()
	return &Author{
		ID:        objectid.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Rename 更新作者名（领域行为）
func (a *Author) Rename(name string) {
	a.Name = strings.TrimSpace(name)
	a.UpdatedAt = time.Now()
}
