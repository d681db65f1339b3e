package transaction

import (
	"context"
	"log"

	"github.com/xiebiao/bookmarket/internal/domain/transaction"
	"github.com/xiebiao/bookmarket/pkg/mq"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// RateUseCase 交易评分用例
type RateUseCase struct {
	txnRepo   transaction.Repository
	publisher *mq.Publisher
}

// NewRateUseCase 创建评分用例
func NewRateUseCase(txnRepo transaction.Repository, publisher *mq.Publisher) *RateUseCase {
	return &RateUseCase{
		txnRepo:   txnRepo,
		publisher: publisher,
	}
}

// RateRequest 评分请求DTO
type RateRequest struct {
	BuyerID       string // 从JWT中提取
	TransactionID string // 路径参数
	Rating        int    // 1-5
}

// TransactionRatedEvent 交易评分事件（发布到MQ）
type TransactionRatedEvent struct {
	TransactionID string `json:"transactionId"`
	BuyerID       string `json:"buyerId"`
	Rating        int    `json:"rating"`
}

// Execute 执行评分
// 归属校验、评分区间、仅一次，规则都在实体的Rate方法里
func (uc *RateUseCase) Execute(ctx context.Context, req RateRequest) (*TransactionResponse, error) {
	buyerID, err := objectid.Parse(req.BuyerID)
	if err != nil {
		return nil, err
	}
	txnID, err := objectid.Parse(req.TransactionID)
	if err != nil {
		return nil, err
	}

	txn, err := uc.txnRepo.FindByID(ctx, txnID)
	if err != nil {
		return nil, err
	}

	if err := txn.Rate(buyerID, req.Rating); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Update(ctx, txn); err != nil {
		return nil, err
	}

	// 评分事件尽力而为发布
	if uc.publisher != nil {
		event := TransactionRatedEvent{
			TransactionID: string(txn.ID),
			BuyerID:       string(txn.BuyerID),
			Rating:        req.Rating,
		}
		if err := uc.publisher.Publish("transaction.rated", event); err != nil {
			log.Printf("发布transaction.rated事件失败: %v", err)
		}
	}

	resp := toResponse(txn)
	return &resp, nil
}
