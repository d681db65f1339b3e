package transaction

import (
	"context"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/domain/transaction"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// TransactionResponse 交易记录响应DTO
// Books是书籍ID快照；历史接口额外返回解析后的书籍概要
type TransactionResponse struct {
	ID                string        `json:"id"`
	BuyerID           string        `json:"buyerId"`
	Books             []string      `json:"books"`
	ResolvedBooks     []BookSummary `json:"resolvedBooks,omitempty"`
	TotalAmount       float64       `json:"totalAmount"`
	PaymentMethod     string        `json:"paymentMethod,omitempty"`
	DeliveryType      string        `json:"deliveryType,omitempty"`
	DeliveryAddress   string        `json:"deliveryAddress,omitempty"`
	TransactionRating int           `json:"transactionRating"`
	ReportText        string        `json:"reportText,omitempty"`
	CreatedAt         string        `json:"createdAt"`
}

// BookSummary 交易历史里的书籍概要
type BookSummary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
}

func toResponse(t *transaction.Transaction) TransactionResponse {
	books := make([]string, len(t.Books))
	for i, id := range t.Books {
		books[i] = string(id)
	}
	return TransactionResponse{
		ID:                string(t.ID),
		BuyerID:           string(t.BuyerID),
		Books:             books,
		TotalAmount:       t.TotalAmount,
		PaymentMethod:     t.Payment.Method,
		DeliveryType:      t.Payment.DeliveryType,
		DeliveryAddress:   t.Payment.DeliveryAddress,
		TransactionRating: t.TransactionRating,
		ReportText:        t.ReportText,
		CreatedAt:         t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// HistoryUseCase 交易历史查询用例
// 设计说明：
// 历史里的书籍ID统一收集后做一次批量查询，再逐条回填，
// 避免每条交易各查一次数据库（N+1问题）
type HistoryUseCase struct {
	txnRepo  transaction.Repository
	bookRepo book.Repository
}

// NewHistoryUseCase 创建交易历史用例
func NewHistoryUseCase(txnRepo transaction.Repository, bookRepo book.Repository) *HistoryUseCase {
	return &HistoryUseCase{
		txnRepo:  txnRepo,
		bookRepo: bookRepo,
	}
}

// Execute 查询买家的全部交易，按时间倒序
func (uc *HistoryUseCase) Execute(ctx context.Context, rawBuyerID string) ([]TransactionResponse, error) {
	buyerID, err := objectid.Parse(rawBuyerID)
	if err != nil {
		return nil, err
	}

	txns, err := uc.txnRepo.FindByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	// 1. 收集全部书籍ID（去重）
	seen := make(map[objectid.ID]struct{})
	var ids []objectid.ID
	for _, t := range txns {
		for _, id := range t.Books {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	// 2. 一次批量查询
	books, err := uc.bookRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	summaries := make(map[objectid.ID]BookSummary, len(books))
	for _, b := range books {
		summaries[b.ID] = BookSummary{
			ID:        string(b.ID),
			Name:      b.Name,
			UnitPrice: b.UnitPrice,
		}
	}

	// 3. 回填（已下架的书在快照里保留ID，但没有概要）
	result := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		resp := toResponse(t)
		for _, id := range t.Books {
			if s, ok := summaries[id]; ok {
				resp.ResolvedBooks = append(resp.ResolvedBooks, s)
			}
		}
		result = append(result, resp)
	}

	return result, nil
}
