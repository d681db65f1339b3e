package book

import (
	"context"
	"strings"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// Service 书籍领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务逻辑和业务规则校验
// 2. 作者解析、缓存、图片上传等编排逻辑在application层，不在这里
type Service interface {
	// Publish 发布书籍（上架）
	Publish(ctx context.Context, b *Book) error

	// Get 根据ID字符串查询书籍
	// ID不是24位十六进制时返回ErrInvalidID（"Invalid ID"）
	Get(ctx context.Context, rawID string) (*Book, error)

	// UpdateStock 部分更新库存信息（仅限卖家本人）
	UpdateStock(ctx context.Context, sellerID objectid.ID, rawID string, quantity *int, unitPrice *float64) (*Book, error)

	// Delete 下架书籍（仅限卖家本人），返回被删除的书籍快照
	Delete(ctx context.Context, sellerID objectid.ID, rawID string) (*Book, error)
}

type service struct {
	repo Repository
}

// NewService 创建书籍服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Publish 发布书籍
// 业务规则:
// 1. 书名必填，长度不超过255
// 2. 库存不能为负
// 3. 单价在[0, 10000]区间，0表示免费赠送
// 4. 成色只能是used或unused
// 5. 坐标（如有）必须在经纬度有效范围内
// 6. 同一卖家的书名唯一性由数据库复合唯一索引保证
func (s *service) Publish(ctx context.Context, b *Book) error {
	// 1. 书名校验
	if name := strings.TrimSpace(b.Name); name == "" || len(name) > 255 {
		return ErrInvalidName
	}

	// 2. 库存校验
	if b.Quantity < 0 {
		return ErrInvalidQuantity
	}

	// 3. 单价校验
	if b.UnitPrice < 0 || b.UnitPrice > MaxUnitPrice {
		return ErrInvalidPrice
	}

	// 4. 成色校验
	if !b.BookCondition.IsValid() {
		return ErrInvalidCondition
	}

	// 5. 坐标校验
	if b.Location != nil && !b.Location.Valid() {
		return ErrInvalidLocation
	}

	// 6. 持久化（重名冲突由Repository转换为ErrBookDuplicate）
	return s.repo.Create(ctx, b)
}

// Get 根据ID字符串查询书籍
func (s *service) Get(ctx context.Context, rawID string) (*Book, error) {
	id, err := objectid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// UpdateStock 部分更新库存信息
// 业务流程：
// 1. 解析ID并查询书籍
// 2. 校验卖家身份
// 3. 应用变更并持久化
func (s *service) UpdateStock(ctx context.Context, sellerID objectid.ID, rawID string, quantity *int, unitPrice *float64) (*Book, error) {
	b, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}

	if !b.IsOwnedBy(sellerID) {
		return nil, ErrNotOwner
	}

	if err := b.UpdateStock(quantity, unitPrice); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Delete 下架书籍，返回被删除的书籍快照
func (s *service) Delete(ctx context.Context, sellerID objectid.ID, rawID string) (*Book, error) {
	b, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}

	if !b.IsOwnedBy(sellerID) {
		return nil, ErrNotOwner
	}

	if err := s.repo.Delete(ctx, b.ID); err != nil {
		return nil, err
	}

	return b, nil
}
