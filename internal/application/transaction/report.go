package transaction

import (
	"context"
	"log"

	"github.com/xiebiao/bookmarket/internal/domain/transaction"
	"github.com/xiebiao/bookmarket/pkg/mq"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// ReportUseCase 交易问题报告用例
// 报告是自由文本，客服/风控流程通过MQ事件异步跟进
type ReportUseCase struct {
	txnRepo   transaction.Repository
	publisher *mq.Publisher
}

// NewReportUseCase 创建报告用例
func NewReportUseCase(txnRepo transaction.Repository, publisher *mq.Publisher) *ReportUseCase {
	return &ReportUseCase{
		txnRepo:   txnRepo,
		publisher: publisher,
	}
}

// ReportRequest 报告请求DTO
type ReportRequest struct {
	BuyerID       string // 从JWT中提取
	TransactionID string // 路径参数
	Text          string // 报告内容（非空）
}

// TransactionReportedEvent 交易报告事件（发布到MQ）
type TransactionReportedEvent struct {
	TransactionID string `json:"transactionId"`
	BuyerID       string `json:"buyerId"`
	Text          string `json:"text"`
}

// Execute 执行报告提交
func (uc *ReportUseCase) Execute(ctx context.Context, req ReportRequest) (*TransactionResponse, error) {
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

	if err := txn.Report(buyerID, req.Text); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Update(ctx, txn); err != nil {
		return nil, err
	}

	if uc.publisher != nil {
		event := TransactionReportedEvent{
			TransactionID: string(txn.ID),
			BuyerID:       string(txn.BuyerID),
			Text:          txn.ReportText,
		}
		if err := uc.publisher.Publish("transaction.reported", event); err != nil {
			log.Printf("发布transaction.reported事件失败: %v", err)
		}
	}

	resp := toResponse(txn)
	return &resp, nil
}
