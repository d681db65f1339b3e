package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookmarket/internal/domain/transaction"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// transactionRepository 交易仓储实现(MySQL)
// Create在结账事务内被调用,必须通过getDB参与context里的事务
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 创建交易仓储
func NewTransactionRepository(db *gorm.DB) transaction.Repository {
	return &transactionRepository{db: db}
}

// Create 创建交易记录
func (r *transactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	model := toTransactionModel(t)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建交易记录失败")
	}
	return nil
}

// FindByID 根据ID查找交易
func (r *transactionRepository) FindByID(ctx context.Context, id objectid.ID) (*transaction.Transaction, error) {
	var model TransactionModel
	err := getDB(ctx, r.db).Where("id = ?", string(id)).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(err, "查询交易记录失败")
	}

	return toTransactionEntity(&model), nil
}

// FindByBuyer 查询买家的全部交易,按创建时间倒序
func (r *transactionRepository) FindByBuyer(ctx context.Context, buyerID objectid.ID) ([]*transaction.Transaction, error) {
	var models []TransactionModel
	err := getDB(ctx, r.db).
		Where("buyer_id = ?", string(buyerID)).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询交易历史失败")
	}

	txns := make([]*transaction.Transaction, len(models))
	for i := range models {
		txns[i] = toTransactionEntity(&models[i])
	}
	return txns, nil
}

// Update 更新交易(评分、报告)
func (r *transactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	model := toTransactionModel(t)

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新交易记录失败")
	}
	return nil
}

// toTransactionEntity GORM模型 → 领域实体
func toTransactionEntity(model *TransactionModel) *transaction.Transaction {
	return &transaction.Transaction{
		ID:          objectid.ID(model.ID),
		BuyerID:     objectid.ID(model.BuyerID),
		Books:       stringsToIDs(model.Books),
		TotalAmount: model.Total,
		Payment: transaction.Payment{
			Method:          model.PaymentMethod,
			DeliveryType:    model.DeliveryType,
			DeliveryAddress: model.DeliveryAddress,
		},
		TransactionRating: model.Rating,
		ReportText:        model.ReportText,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

// toTransactionModel 领域实体 → GORM模型
func toTransactionModel(t *transaction.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:              string(t.ID),
		BuyerID:         string(t.BuyerID),
		Books:           idsToStrings(t.Books),
		Total:           t.TotalAmount,
		PaymentMethod:   t.Payment.Method,
		DeliveryType:    t.Payment.DeliveryType,
		DeliveryAddress: t.Payment.DeliveryAddress,
		Rating:          t.TransactionRating,
		ReportText:      t.ReportText,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
