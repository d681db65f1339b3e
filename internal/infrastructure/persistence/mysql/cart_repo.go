package mysql

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookmarket/internal/domain/cart"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// cartRepository 购物车仓储实现(MySQL)
// 设计说明:
// 1. 条目手动序列化成JSON文本整列存储(条目结构带嵌套,读写都以购物车为单位)
// 2. OwnerID唯一索引保证每个买家最多一个购物车
// 3. 结账事务里的Delete通过getDB参与事务
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// FindByOwner 查询买家的购物车
func (r *cartRepository) FindByOwner(ctx context.Context, ownerID objectid.ID) (*cart.Cart, error) {
	var model CartModel
	err := getDB(ctx, r.db).Where("owner_id = ?", string(ownerID)).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	return toCartEntity(&model)
}

// Create 创建购物车
func (r *cartRepository) Create(ctx context.Context, c *cart.Cart) error {
	model, err := toCartModel(c)
	if err != nil {
		return err
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建购物车失败")
	}
	return nil
}

// Update 更新购物车(条目变化后整体落库)
func (r *cartRepository) Update(ctx context.Context, c *cart.Cart) error {
	model, err := toCartModel(c)
	if err != nil {
		return err
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新购物车失败")
	}
	return nil
}

// Delete 删除购物车(结账成功后)
func (r *cartRepository) Delete(ctx context.Context, id objectid.ID) error {
	result := getDB(ctx, r.db).Where("id = ?", string(id)).Delete(&CartModel{})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartNotFound
	}
	return nil
}

// toCartEntity GORM模型 → 领域实体
func toCartEntity(model *CartModel) (*cart.Cart, error) {
	var items []cart.BookInCart
	if model.Items != "" {
		if err := json.Unmarshal([]byte(model.Items), &items); err != nil {
			return nil, apperrors.Wrap(err, "解析购物车条目失败")
		}
	}
	if items == nil {
		items = []cart.BookInCart{}
	}

	return &cart.Cart{
		ID:        objectid.ID(model.ID),
		OwnerID:   objectid.ID(model.OwnerID),
		Items:     items,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

// toCartModel 领域实体 → GORM模型
func toCartModel(c *cart.Cart) (*CartModel, error) {
	raw, err := json.Marshal(c.Items)
	if err != nil {
		return nil, apperrors.Wrap(err, "序列化购物车条目失败")
	}

	return &CartModel{
		ID:        string(c.ID),
		OwnerID:   string(c.OwnerID),
		Items:     string(raw),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}
