package book

import (
	"context"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// ListParams 分页查询参数
type ListParams struct {
	Page     int // 页码（从1开始）
	PageSize int // 每页数量
}

// SearchParams 高级搜索参数
// 语义说明：
// 1. Genres/Tags是AND语义：书籍必须包含全部指定的分类/标签
// 2. Name是大小写不敏感的子串匹配
// 3. AuthorIDs是OR语义：命中任意一个作者即可（由作者名模糊匹配预先解析）
// 4. 价格区间为[MinPrice, MaxPrice]闭区间
type SearchParams struct {
	Name      string
	Genres    []objectid.ID
	Tags      []string
	AuthorIDs []objectid.ID
	MinPrice  float64
	MaxPrice  float64
}

// Repository 书籍仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建书籍
	// 注意：同一卖家重复发布同名书籍时返回ErrBookDuplicate
	Create(ctx context.Context, b *Book) error

	// FindByID 根据ID查找书籍
	// 如果不存在，返回ErrBookNotFound
	FindByID(ctx context.Context, id objectid.ID) (*Book, error)

	// FindByIDs 批量查找书籍（交易历史、购物车展示用）
	// 不存在的ID会被静默跳过
	FindByIDs(ctx context.Context, ids []objectid.ID) ([]*Book, error)

	// Update 更新书籍
	Update(ctx context.Context, b *Book) error

	// Delete 删除书籍（软删除）
	// 如果不存在，返回ErrBookNotFound
	Delete(ctx context.Context, id objectid.ID) error

	// List 分页查询书籍列表，按发布时间倒序
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ListAll 查询全部在售书籍（排序类接口在内存中做排序）
	ListAll(ctx context.Context) ([]*Book, error)

	// ListGiveaways 查询免费赠送的书籍（单价为0），最多limit条
	ListGiveaways(ctx context.Context, limit int) ([]*Book, error)

	// Count 统计在售书籍总数
	Count(ctx context.Context) (int64, error)

	// Search 高级搜索
	Search(ctx context.Context, params SearchParams) ([]*Book, error)

	// LockByID 悲观锁查询书籍（SELECT FOR UPDATE，结账事务用）
	LockByID(ctx context.Context, id objectid.ID) (*Book, error)

	// UpdateStock 原子更新库存
	// UPDATE books SET quantity = quantity + delta WHERE id = ? AND quantity + delta >= 0
	// 书籍不存在返回ErrBookNotFound，库存不足返回ErrOutOfStock
	UpdateStock(ctx context.Context, id objectid.ID, delta int) error
}
