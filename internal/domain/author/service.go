package author

import (
	"context"
	"errors"
	"strings"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// Service 作者领域服务
// 设计说明：
// 1. Resolve是核心操作：按名字找到作者，不存在则登记一个新作者
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
type Service interface {
	// Resolve 按名字解析作者，不存在时自动创建
	Resolve(ctx context.Context, name string) (*Author, error)

	// ResolveAll 批量解析作者名，返回去重后的作者ID列表
	ResolveAll(ctx context.Context, names []string) ([]objectid.ID, error)

	// GetByID 根据ID查询作者
	GetByID(ctx context.Context, id objectid.ID) (*Author, error)

	// List 查询全部作者
	List(ctx context.Context) ([]*Author, error)

	// Rename 更新作者名
	Rename(ctx context.Context, id objectid.ID, name string) (*Author, error)
}

type service struct {
	repo Repository
}

// NewService 创建作者服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Resolve 按名字解析作者
// 业务规则：
// 1. 名字长度在[3,255]之间
// 2. 先插入后查询：直接INSERT，命中唯一索引冲突时再按名字查回已有记录
//
// 为什么不先SELECT再INSERT？
// 两个请求同时解析同一个新作者名时，SELECT都查不到，INSERT就会产生
// 两条记录或一条失败。依赖唯一索引让数据库做仲裁，冲突方退化为查询。
func (s *service) Resolve(ctx context.Context, name string) (*Author, error) {
	// 1. 名字校验
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < MinNameLength || len(trimmed) > MaxNameLength {
		return nil, ErrInvalidName
	}

	// 2. 尝试插入
	a := NewAuthor(trimmed)
	err := s.repo.Create(ctx, a)
	if err == nil {
		return a, nil
	}

	// 3. 唯一索引冲突说明作者已存在，按名字查回
	if errors.Is(err, ErrAuthorDuplicate) {
		return s.repo.FindByName(ctx, trimmed)
	}

	return nil, err
}

// ResolveAll 批量解析作者名
// 同一本书的作者列表中出现重复名字时只保留一个ID
func (s *service) ResolveAll(ctx context.Context, names []string) ([]objectid.ID, error) {
	ids := make([]objectid.ID, 0, len(names))
	seen := make(map[objectid.ID]struct{}, len(names))

	for _, name := range names {
		a, err := s.Resolve(ctx, name)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		ids = append(ids, a.ID)
	}

	return ids, nil
}

// GetByID 根据ID查询作者
func (s *service) GetByID(ctx context.Context, id objectid.ID) (*Author, error) {
	return s.repo.FindByID(ctx, id)
}

// List 查询全部作者
func (s *service) List(ctx context.Context) ([]*Author, error) {
	return s.repo.List(ctx)
}

// Rename 更新作者名
func (s *service) Rename(ctx context.Context, id objectid.ID, name string) (*Author, error) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < MinNameLength || len(trimmed) > MaxNameLength {
		return nil, ErrInvalidName
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Rename(trimmed)
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}
