package transaction

import (
	"context"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/domain/transaction"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// BuyUseCase 直接购买用例（不经过购物车的旧接口）
// 设计说明：
// 老客户端只买单本书，保留这个接口做兼容。
// 历史行为：剩余数量<=0时按"书不存在"报错，客户端据此文案展示，不能改
type BuyUseCase struct {
	bookRepo  book.Repository
	txnRepo   transaction.Repository
	txManager TxManager
}

// NewBuyUseCase 创建直接购买用例
func NewBuyUseCase(
	bookRepo book.Repository,
	txnRepo transaction.Repository,
	txManager TxManager,
) *BuyUseCase {
	return &BuyUseCase{
		bookRepo:  bookRepo,
		txnRepo:   txnRepo,
		txManager: txManager,
	}
}

// BuyRequest 直接购买请求DTO
// Quantity和UnitPrice由客户端随单报上来（旧协议如此），不传时按
// 数量1、书的当前标价兜底
type BuyRequest struct {
	BuyerID   string // 从JWT中提取
	BookID    string // 路径参数
	Quantity  int
	UnitPrice *float64 // nil表示按当前标价成交
}

// Execute 执行购买（单本）
// 交易金额 = 数量 × 单价；库存按旧协议固定扣1，与成交数量无关
func (uc *BuyUseCase) Execute(ctx context.Context, req BuyRequest) (*TransactionResponse, error) {
	buyerID, err := objectid.Parse(req.BuyerID)
	if err != nil {
		return nil, err
	}
	bookID, err := objectid.Parse(req.BookID)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	var txn *transaction.Transaction

	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		b, err := uc.bookRepo.LockByID(ctx, bookID)
		if err != nil {
			return err
		}

		// 售罄与不存在同文案（兼容旧客户端）
		if b.Quantity <= 0 {
			return book.ErrOutOfStock
		}

		unitPrice := b.UnitPrice
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}

		// 旧接口不收集支付配送信息
		totalAmount := float64(quantity) * unitPrice
		txn = transaction.NewTransaction(buyerID, []objectid.ID{b.ID}, totalAmount, transaction.Payment{})
		if err := uc.txnRepo.Create(ctx, txn); err != nil {
			return err
		}

		return uc.bookRepo.UpdateStock(ctx, b.ID, -1)
	})
	if err != nil {
		return nil, err
	}

	resp := toResponse(txn)
	return &resp, nil
}
