package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookmarket/internal/domain/genre"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// genreRepository 分类仓储实现(MySQL)
// 设计说明:
// 1. Children作为JSON列整体读写,树操作(挂子节点/摘除)发生在领域层
// 2. AddChild/DetachChild的两步写入由应用层包事务,
//    这里的所有方法都通过getDB参与context里的事务
type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository 创建分类仓储
func NewGenreRepository(db *gorm.DB) genre.Repository {
	return &genreRepository{db: db}
}

// Create 创建分类
func (r *genreRepository) Create(ctx context.Context, g *genre.Genre) error {
	model := toGenreModel(g)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrGenreDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}
	return nil
}

// FindByID 根据ID查找分类
func (r *genreRepository) FindByID(ctx context.Context, id objectid.ID) (*genre.Genre, error) {
	var model GenreModel
	err := getDB(ctx, r.db).Where("id = ?", string(id)).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGenreNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}

	return toGenreEntity(&model), nil
}

// FindByIDs 批量查找分类,不存在的ID静默跳过
func (r *genreRepository) FindByIDs(ctx context.Context, ids []objectid.ID) ([]*genre.Genre, error) {
	if len(ids) == 0 {
		return []*genre.Genre{}, nil
	}

	var models []GenreModel
	err := getDB(ctx, r.db).Where("id IN ?", idsToStrings(ids)).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "批量查询分类失败")
	}

	genres := make([]*genre.Genre, len(models))
	for i := range models {
		genres[i] = toGenreEntity(&models[i])
	}
	return genres, nil
}

// Update 更新分类
func (r *genreRepository) Update(ctx context.Context, g *genre.Genre) error {
	model := toGenreModel(g)

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrGenreDuplicate
		}
		return apperrors.Wrap(err, "更新分类失败")
	}
	return nil
}

// Delete 删除分类
func (r *genreRepository) Delete(ctx context.Context, id objectid.ID) error {
	result := getDB(ctx, r.db).Where("id = ?", string(id)).Delete(&GenreModel{})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除分类失败")
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrGenreNotFound
	}
	return nil
}

// List 查询全部分类
func (r *genreRepository) List(ctx context.Context) ([]*genre.Genre, error) {
	var models []GenreModel
	if err := getDB(ctx, r.db).Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}

	genres := make([]*genre.Genre, len(models))
	for i := range models {
		genres[i] = toGenreEntity(&models[i])
	}
	return genres, nil
}

// toGenreEntity GORM模型 → 领域实体
func toGenreEntity(model *GenreModel) *genre.Genre {
	return &genre.Genre{
		ID:        objectid.ID(model.ID),
		Name:      model.Name,
		Children:  stringsToIDs(model.Children),
		IsParent:  model.IsParent,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// toGenreModel 领域实体 → GORM模型
func toGenreModel(g *genre.Genre) *GenreModel {
	return &GenreModel{
		ID:        string(g.ID),
		Name:      g.Name,
		Children:  idsToStrings(g.Children),
		IsParent:  g.IsParent,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
