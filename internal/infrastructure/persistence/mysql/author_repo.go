package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookmarket/internal/domain/author"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// authorRepository 作者仓储实现(MySQL)
// 设计说明:
// 1. 作者由书籍发布流程按名字自动登记(find-or-create)
// 2. 并发重复登记靠Name列的UNIQUE索引兜底,冲突转成ErrAuthorDuplicate
//    由领域服务改走查询路径
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

// Create 创建作者
func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{
		ID:        string(a.ID),
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrAuthorDuplicate
		}
		return apperrors.Wrap(err, "创建作者失败")
	}
	return nil
}

// FindByID 根据ID查找作者
func (r *authorRepository) FindByID(ctx context.Context, id objectid.ID) (*author.Author, error) {
	var model AuthorModel
	err := getDB(ctx, r.db).Where("id = ?", string(id)).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}

	return toAuthorEntity(&model), nil
}

// FindByIDs 批量查找作者,不存在的ID静默跳过
func (r *authorRepository) FindByIDs(ctx context.Context, ids []objectid.ID) ([]*author.Author, error) {
	if len(ids) == 0 {
		return []*author.Author{}, nil
	}

	var models []AuthorModel
	err := getDB(ctx, r.db).Where("id IN ?", idsToStrings(ids)).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "批量查询作者失败")
	}

	authors := make([]*author.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, nil
}

// FindByName 根据名字精确查找作者
func (r *authorRepository) FindByName(ctx context.Context, name string) (*author.Author, error) {
	var model AuthorModel
	err := getDB(ctx, r.db).Where("name = ?", name).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}

	return toAuthorEntity(&model), nil
}

// SearchByName 按名字模糊查找(大小写不敏感)
// MySQL默认排序规则(utf8mb4_general_ci等)下LIKE本身就大小写不敏感
func (r *authorRepository) SearchByName(ctx context.Context, keyword string) ([]*author.Author, error) {
	var models []AuthorModel
	err := getDB(ctx, r.db).Where("name LIKE ?", "%"+keyword+"%").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "模糊查询作者失败")
	}

	authors := make([]*author.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, nil
}

// Update 更新作者信息
func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{
		ID:        string(a.ID),
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrAuthorDuplicate
		}
		return apperrors.Wrap(err, "更新作者失败")
	}
	return nil
}

// List 查询全部作者
func (r *authorRepository) List(ctx context.Context) ([]*author.Author, error) {
	var models []AuthorModel
	if err := getDB(ctx, r.db).Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询作者列表失败")
	}

	authors := make([]*author.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, nil
}

// toAuthorEntity GORM模型 → 领域实体
func toAuthorEntity(model *AuthorModel) *author.Author {
	return &author.Author{
		ID:        objectid.ID(model.ID),
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
