package transaction

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/domain/cart"
	"github.com/xiebiao/bookmarket/internal/domain/transaction"
	"github.com/xiebiao/bookmarket/pkg/metrics"
	"github.com/xiebiao/bookmarket/pkg/mq"
	"github.com/xiebiao/bookmarket/pkg/objectid"
	"github.com/xiebiao/bookmarket/pkg/tracing"
)

// TxManager 事务边界抽象（由mysql.TxManager实现）
// 在使用方定义接口，单元测试里可以用直通实现替代真实事务
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CheckoutUseCase 结账用例
// 设计说明：
// 1. 核心流程在一个数据库事务里：逐条锁书 → 创建交易记录 → 扣库存 → 删购物车
// 2. 交易记录快照的是书籍ID列表和购物车总金额，书籍后续改价不影响历史
// 3. 事务提交后再发MQ事件，发布失败只记日志（交易已成立，不能因通知失败回滚）
type CheckoutUseCase struct {
	cartRepo  cart.Repository
	bookRepo  book.Repository
	txnRepo   transaction.Repository
	txManager TxManager
	publisher *mq.Publisher
}

// NewCheckoutUseCase 创建结账用例
func NewCheckoutUseCase(
	cartRepo cart.Repository,
	bookRepo book.Repository,
	txnRepo transaction.Repository,
	txManager TxManager,
	publisher *mq.Publisher,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		cartRepo:  cartRepo,
		bookRepo:  bookRepo,
		txnRepo:   txnRepo,
		txManager: txManager,
		publisher: publisher,
	}
}

// CheckoutRequest 结账请求DTO
// 支付与配送信息可选，不填时交易记录里留空
type CheckoutRequest struct {
	BuyerID         string // 从JWT中提取
	PaymentMethod   string
	DeliveryType    string
	DeliveryAddress string
}

// CheckoutResponse 结账响应DTO
// 只返回交易ID和总金额，详情走交易历史接口
type CheckoutResponse struct {
	ID          string  `json:"id"`
	TotalAmount float64 `json:"totalAmount"`
}

// TransactionCreatedEvent 结账成功事件（发布到MQ）
type TransactionCreatedEvent struct {
	TransactionID string   `json:"transactionId"`
	BuyerID       string   `json:"buyerId"`
	BookIDs       []string `json:"bookIds"`
	TotalAmount   float64  `json:"totalAmount"`
	CreatedAt     string   `json:"createdAt"`
}

// Execute 执行结账
// 业务规则：
// 1. 没有购物车或购物车为空都按"No items in cart"处理
// 2. 任意一本书不存在或库存不足，整单失败（事务回滚）
// 3. 成功后购物车被删除，交易记录评分初始为0
func (uc *CheckoutUseCase) Execute(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "bookmarket-api", "Checkout")
	defer span.End()

	start := time.Now()

	buyerID, err := objectid.Parse(req.BuyerID)
	if err != nil {
		return nil, err
	}

	// 1. 取购物车（不存在等同于空）
	c, err := uc.cartRepo.FindByOwner(ctx, buyerID)
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			return nil, cart.ErrEmptyCart
		}
		return nil, err
	}
	if c.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}

	// 2. 事务内完成全部写入
	// 总金额以服务端购物车重算为准，不信任客户端传值
	txn := transaction.NewTransaction(buyerID, c.BookIDs(), c.TotalAmount(), transaction.Payment{
		Method:          req.PaymentMethod,
		DeliveryType:    req.DeliveryType,
		DeliveryAddress: req.DeliveryAddress,
	})

	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		// 逐条目锁书并校验库存（SELECT FOR UPDATE防并发超卖）
		for _, item := range c.Items {
			b, err := uc.bookRepo.LockByID(ctx, item.BookID)
			if err != nil {
				return err
			}
			if b.Quantity < item.Quantity {
				return book.ErrOutOfStock
			}
		}

		// 创建交易记录
		if err := uc.txnRepo.Create(ctx, txn); err != nil {
			return err
		}

		// 扣减库存
		for _, item := range c.Items {
			if err := uc.bookRepo.UpdateStock(ctx, item.BookID, -item.Quantity); err != nil {
				return err
			}
		}

		// 删除购物车（结账后购物车生命周期结束）
		return uc.cartRepo.Delete(ctx, c.ID)
	})
	if err != nil {
		metrics.IncCounter(metrics.CheckoutsFailedTotal)
		return nil, err
	}

	metrics.IncCounter(metrics.CheckoutsCompletedTotal)
	metrics.ObserveHistogram(metrics.CheckoutDuration, time.Since(start).Seconds())

	// 3. 事务提交后发布事件（尽力而为）
	uc.publishCreated(ctx, txn)

	return &CheckoutResponse{
		ID:          string(txn.ID),
		TotalAmount: txn.TotalAmount,
	}, nil
}

func (uc *CheckoutUseCase) publishCreated(ctx context.Context, txn *transaction.Transaction) {
	if uc.publisher == nil {
		return
	}

	bookIDs := make([]string, len(txn.Books))
	for i, id := range txn.Books {
		bookIDs[i] = string(id)
	}

	event := TransactionCreatedEvent{
		TransactionID: string(txn.ID),
		BuyerID:       string(txn.BuyerID),
		BookIDs:       bookIDs,
		TotalAmount:   txn.TotalAmount,
		CreatedAt:     txn.CreatedAt.Format(time.RFC3339),
	}
	if err := uc.publisher.Publish("transaction.created", event); err != nil {
		log.Printf("TraceID=%s, 发布transaction.created事件失败: %v",
			tracing.ExtractTraceID(ctx), err)
	}
}
