package transaction

import (
	"strings"
	"time"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// 评分允许区间
const (
	MinRating = 1
	MaxRating = 5
)

// Payment 支付与配送信息（值对象）
// 结账时由买家填写，直接购买的旧接口不携带，留空
type Payment struct {
	Method          string // 支付方式，如 cash / card
	DeliveryType    string // 配送方式，如 pickup / courier
	DeliveryAddress string // 配送地址，自提时可为空
}

// Transaction 交易记录实体（聚合根）
// 设计说明：
// 1. 结账成功后生成，Books是结账瞬间购物车条目引用的书籍ID快照
// 2. TransactionRating初始为0表示未评分，买家事后可评1-5分，仅一次
// 3. ReportText为空表示未提交问题报告，同样仅能提交一次
// 4. 交易记录不可撤销、不可修改金额，评分和报告是仅有的两个写入口
type Transaction struct {
	ID                objectid.ID
	BuyerID           objectid.ID
	Books             []objectid.ID
	TotalAmount       float64
	Payment           Payment
	TransactionRating int
	ReportText        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewTransaction 创建交易记录（工厂方法）
// 评分初始化为0（未评分）
func NewTransaction(buyerID objectid.ID, books []objectid.ID, totalAmount float64, payment Payment) *Transaction {
	now := time.Now()
	return &Transaction{
		ID:                objectid.New(),
		BuyerID:           buyerID,
		Books:             books,
		TotalAmount:       totalAmount,
		Payment:           payment,
		TransactionRating: 0,
		ReportText:        "",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// IsOwnedBy 判断交易是否属于指定买家
func (t *Transaction) IsOwnedBy(buyerID objectid.ID) bool {
	return t.BuyerID == buyerID
}

// IsRated 是否已评分
func (t *Transaction) IsRated() bool {
	return t.TransactionRating != 0
}

// Rate 买家评分（领域行为）
// 业务规则：
// 1. 只有交易的买家本人可以评分；别人的交易按"不存在"处理，
//    不向外暴露交易ID是否有效
// 2. 评分范围1-5
// 3. 每笔交易只能评分一次
func (t *Transaction) Rate(buyerID objectid.ID, rating int) error {
	if !t.IsOwnedBy(buyerID) {
		return ErrTransactionNotFound
	}
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	if t.IsRated() {
		return ErrAlreadyRated
	}

	t.TransactionRating = rating
	t.UpdatedAt = time.Now()
	return nil
}

// IsReported 是否已提交问题报告
func (t *Transaction) IsReported() bool {
	return t.ReportText != ""
}

// Report 买家提交问题报告（领域行为）
// 业务规则：
// 1. 只有交易的买家本人可以报告，别人的交易按"不存在"处理
// 2. 报告内容不能为空
// 3. 每笔交易只能报告一次
func (t *Transaction) Report(buyerID objectid.ID, text string) error {
	if !t.IsOwnedBy(buyerID) {
		return ErrTransactionNotFound
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyReport
	}
	if t.IsReported() {
		return ErrAlreadyReported
	}

	t.ReportText = trimmed
	t.UpdatedAt = time.Now()
	return nil
}
