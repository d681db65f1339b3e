package transaction

import (
	"context"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// Repository 交易仓储接口
type Repository interface {
	// Create 创建交易记录（结账事务内调用）
	Create(ctx context.Context, t *Transaction) error

	// FindByID 根据ID查找交易
	// 如果不存在，返回ErrTransactionNotFound
	FindByID(ctx context.Context, id objectid.ID) (*Transaction, error)

	// FindByBuyer 查询买家的全部交易，按创建时间倒序
	FindByBuyer(ctx context.Context, buyerID objectid.ID) ([]*Transaction, error)

	// Update 更新交易（评分、报告）
	Update(ctx context.Context, t *Transaction) error
}
