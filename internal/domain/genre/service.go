package genre

import (
	"context"
	"strings"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// Service 分类领域服务
// 设计说明：
// 1. 分类树的全部修改操作仅管理员可用（权限校验在HTTP中间件层完成）
// 2. AddChild涉及两次写入（创建子节点+更新父节点），调用方需包在事务中
type Service interface {
	// CreateRoot 创建根分类
	CreateRoot(ctx context.Context, name string) (*Genre, error)

	// AddChild 在父分类下创建子分类
	// 注意：包含创建子节点与更新父节点两次写入，应在事务内调用
	AddChild(ctx context.Context, parentID objectid.ID, name string) (*Genre, error)

	// ListChildren 查询父分类的全部直接子分类（一次批量查询）
	ListChildren(ctx context.Context, parentID objectid.ID) ([]*Genre, error)

	// DetachChild 从父分类摘除子分类并删除之
	// 宽松语义：子分类不在父节点列表中不算错误；子分类记录不存在则返回ErrGenreNotFound
	DetachChild(ctx context.Context, parentID, childID objectid.ID) error

	// DeleteLeaf 删除分类（不检查是否还有子节点）
	DeleteLeaf(ctx context.Context, id objectid.ID) error

	// GetByID 查询单个分类
	GetByID(ctx context.Context, id objectid.ID) (*Genre, error)

	// List 查询全部分类
	List(ctx context.Context) ([]*Genre, error)
}

type service struct {
	repo Repository
}

// NewService 创建分类服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateRoot 创建根分类
func (s *service) CreateRoot(ctx context.Context, name string) (*Genre, error) {
	// 1. 名字校验
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < MinNameLength || len(trimmed) > MaxNameLength {
		return nil, ErrInvalidName
	}

	// 2. 创建并持久化（名字重复由Repository返回ErrGenreDuplicate）
	g := NewGenre(trimmed)
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

// AddChild 在父分类下创建子分类
// 业务流程：
// 1. 确认父分类存在
// 2. 创建子分类
// 3. 把子分类ID挂到父分类的Children上
func (s *service) AddChild(ctx context.Context, parentID objectid.ID, name string) (*Genre, error) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < MinNameLength || len(trimmed) > MaxNameLength {
		return nil, ErrInvalidName
	}

	// 1. 确认父分类存在
	parent, err := s.repo.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	// 2. 创建子分类
	child := NewGenre(trimmed)
	if err := s.repo.Create(ctx, child); err != nil {
		return nil, err
	}

	// 3. 更新父分类的子节点列表
	parent.AppendChild(child.ID)
	if err := s.repo.Update(ctx, parent); err != nil {
		return nil, err
	}

	return child, nil
}

// ListChildren 查询父分类的全部直接子分类
// 学习要点：用FindByIDs一次取回所有子节点，避免N+1查询
func (s *service) ListChildren(ctx context.Context, parentID objectid.ID) ([]*Genre, error) {
	parent, err := s.repo.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	if len(parent.Children) == 0 {
		return []*Genre{}, nil
	}

	return s.repo.FindByIDs(ctx, parent.Children)
}

// DetachChild 从父分类摘除子分类并删除之
// 宽松语义只覆盖引用：子分类不在父节点的Children里照常往下删；
// 但子分类记录本身不存在时返回ErrGenreNotFound
func (s *service) DetachChild(ctx context.Context, parentID, childID objectid.ID) error {
	// 1. 父分类必须存在
	parent, err := s.repo.FindByID(ctx, parentID)
	if err != nil {
		return err
	}

	// 2. 摘除引用（不在列表中也继续往下走）
	if parent.DetachChild(childID) {
		if err := s.repo.Update(ctx, parent); err != nil {
			return err
		}
	}

	// 3. 删除子分类本身
	return s.repo.Delete(ctx, childID)
}

// DeleteLeaf 删除分类
// 不检查子节点：删除带子节点的分类会留下悬空引用，由调用方自行保证删除顺序
func (s *service) DeleteLeaf(ctx context.Context, id objectid.ID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// GetByID 查询单个分类
func (s *service) GetByID(ctx context.Context, id objectid.ID) (*Genre, error) {
	return s.repo.FindByID(ctx, id)
}

// List 查询全部分类
func (s *service) List(ctx context.Context) ([]*Genre, error) {
	return s.repo.List(ctx)
}
