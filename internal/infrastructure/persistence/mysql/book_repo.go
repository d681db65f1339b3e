package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
	"github.com/xiebiao/bookmarket/pkg/geo"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// bookRepository 书籍仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如卖家+书名重复),转换为业务错误
// 4. 分类/标签等数组字段存JSON列,AND过滤用JSON_CONTAINS下推到数据库
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建书籍仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建书籍
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		// 卖家+书名复合唯一索引冲突
		if isDuplicateError(err) {
			return book.ErrBookDuplicate
		}
		return apperrors.Wrap(err, "创建书籍失败")
	}

	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找书籍
func (r *bookRepository) FindByID(ctx context.Context, id objectid.ID) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where("id = ?", string(id)).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询书籍失败")
	}

	return toBookEntity(&model), nil
}

// FindByIDs 批量查找书籍,不存在的ID静默跳过
func (r *bookRepository) FindByIDs(ctx context.Context, ids []objectid.ID) ([]*book.Book, error) {
	if len(ids) == 0 {
		return []*book.Book{}, nil
	}

	var models []BookModel
	err := getDB(ctx, r.db).Where("id IN ?", idsToStrings(ids)).Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "批量查询书籍失败")
	}

	return toBookEntities(models), nil
}

// Update 更新书籍信息
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	// 使用Save更新所有字段
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrBookDuplicate
		}
		return apperrors.Wrap(err, "更新书籍失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除书籍(软删除)
func (r *bookRepository) Delete(ctx context.Context, id objectid.ID) error {
	result := getDB(ctx, r.db).Where("id = ?", string(id)).Delete(&BookModel{})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除书籍失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 分页查询书籍列表,按发布时间倒序
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := getDB(ctx, r.db).Model(&BookModel{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书籍总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Order("created_at DESC").
		Limit(params.PageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书籍列表失败")
	}

	return toBookEntities(models), total, nil
}

// ListAll 查询全部在售书籍
// 排序类接口在内存中做排序,这里只负责取数
func (r *bookRepository) ListAll(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := getDB(ctx, r.db).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询书籍失败")
	}
	return toBookEntities(models), nil
}

// ListGiveaways 查询免费赠送的书籍(单价为0),最多limit条
func (r *bookRepository) ListGiveaways(ctx context.Context, limit int) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).
		Where("unit_price = 0").
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询赠书列表失败")
	}
	return toBookEntities(models), nil
}

// Count 统计在售书籍总数
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := getDB(ctx, r.db).Model(&BookModel{}).Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计书籍总数失败")
	}
	return total, nil
}

// Search 高级搜索
// 教学要点:
// 1. JSON列的包含判断用JSON_CONTAINS下推到数据库,避免全表拉回内存过滤
// 2. 分类/标签逐个追加Where即AND语义;作者拼成一组OR
// 3. utf8mb4的ci排序规则下LIKE天然大小写不敏感
func (r *bookRepository) Search(ctx context.Context, params book.SearchParams) ([]*book.Book, error) {
	query := getDB(ctx, r.db).Model(&BookModel{})

	if params.Name != "" {
		query = query.Where("name LIKE ?", "%"+params.Name+"%")
	}

	// 分类AND语义:必须包含全部指定分类
	for _, id := range params.Genres {
		query = query.Where("JSON_CONTAINS(genres, JSON_QUOTE(?))", string(id))
	}

	// 标签AND语义
	for _, tag := range params.Tags {
		query = query.Where("JSON_CONTAINS(tags, JSON_QUOTE(?))", tag)
	}

	// 作者OR语义:命中任意一个作者即可
	if len(params.AuthorIDs) > 0 {
		or := getDB(ctx, r.db).Model(&BookModel{})
		for i, id := range params.AuthorIDs {
			if i == 0 {
				or = or.Where("JSON_CONTAINS(authors, JSON_QUOTE(?))", string(id))
			} else {
				or = or.Or("JSON_CONTAINS(authors, JSON_QUOTE(?))", string(id))
			}
		}
		query = query.Where(or)
	}

	query = query.Where("unit_price BETWEEN ? AND ?", params.MinPrice, params.MaxPrice)

	var models []BookModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "搜索书籍失败")
	}

	return toBookEntities(models), nil
}

// LockByID 悲观锁查询书籍(结账事务用)
// 教学要点:SELECT FOR UPDATE必须在事务里,通过getDB从context取事务DB
func (r *bookRepository) LockByID(ctx context.Context, id objectid.ID) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", string(id)).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定书籍失败")
	}

	return toBookEntity(&model), nil
}

// UpdateStock 更新库存(原子操作)
func (r *bookRepository) UpdateStock(ctx context.Context, id objectid.ID, delta int) error {
	// 使用UPDATE语句原子性更新库存
	// UPDATE books SET quantity = quantity + delta WHERE id = ? AND quantity + delta >= 0
	db := getDB(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ?", string(id)).
		Where("quantity + ? >= 0", delta). // 防止库存为负
		Update("quantity", gorm.Expr("quantity + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		// 可能是书籍不存在,或者库存不足,再查一次确定原因
		var model BookModel
		if err := db.Where("id = ?", string(id)).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询书籍失败")
		}
		// 书籍存在,说明是库存不足
		return book.ErrOutOfStock
	}

	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	var location *geo.Point
	if model.Latitude != nil && model.Longitude != nil {
		location = &geo.Point{
			Latitude:  *model.Latitude,
			Longitude: *model.Longitude,
		}
	}

	return &book.Book{
		ID:            objectid.ID(model.ID),
		Name:          model.Name,
		Genres:        stringsToIDs(model.Genres),
		Authors:       stringsToIDs(model.Authors),
		Quantity:      model.Quantity,
		UnitPrice:     model.UnitPrice,
		BookCondition: book.Condition(model.BookCondition),
		SellerID:      objectid.ID(model.SellerID),
		Tags:          model.Tags,
		Description:   model.Description,
		Images:        model.Images,
		Location:      location,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	model := &BookModel{
		ID:            string(b.ID),
		Name:          b.Name,
		Genres:        idsToStrings(b.Genres),
		Authors:       idsToStrings(b.Authors),
		Quantity:      b.Quantity,
		UnitPrice:     b.UnitPrice,
		BookCondition: string(b.BookCondition),
		SellerID:      string(b.SellerID),
		Tags:          b.Tags,
		Description:   b.Description,
		Images:        b.Images,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if b.Location != nil {
		lat, lng := b.Location.Latitude, b.Location.Longitude
		model.Latitude = &lat
		model.Longitude = &lng
	}
	return model
}
