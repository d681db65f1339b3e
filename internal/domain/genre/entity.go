package genre

import (
	"strings"
	"time"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// Genre 分类实体（聚合根）
// 设计说明：
// 1. 分类构成一棵树：每个节点持有直接子节点的ID列表（Children）
// 2. IsParent标记节点是否有子节点，列表接口可据此过滤出叶子分类
// 3. 分类名全局唯一（数据库UNIQUE索引保证）
type Genre struct {
	ID        objectid.ID
	Name      string
	Children  []objectid.ID
	IsParent  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// 分类名长度的允许区间（与作者名共用同一套约束）
const (
	MinNameLength = 3
	MaxNameLength = 255
)

// NewGenre 创建新分类（工厂方法）
// 新分类没有子节点，既可作为根节点也可被挂到某个父节点下
func NewGenre(name string) *Genre {
	now := time.Now()
	return &Genre{
		ID:        objectid.New(),
		Name:      strings.TrimSpace(name),
		Children:  []objectid.ID{},
		IsParent:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AppendChild 挂载子节点（领域行为）
func (g *Genre) AppendChild(childID objectid.ID) {
	g.Children = append(g.Children, childID)
	g.IsParent = true
	g.UpdatedAt = time.Now()
}

// DetachChild 从子节点列表中摘除指定ID
// 返回值表示该ID原本是否在列表中。即使不在，调用方仍会继续删除
// 子分类本身（引用摘除是宽松的，保证父节点最终不引用该子分类）
func (g *Genre) DetachChild(childID objectid.ID) bool {
	for i, id := range g.Children {
		if id == childID {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			g.IsParent = len(g.Children) > 0
			g.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

