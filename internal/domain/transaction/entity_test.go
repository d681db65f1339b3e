package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

func TestNewTransaction_RatingStartsAtZero(t *testing.T) {
	buyer := objectid.New()
	books := []objectid.ID{objectid.New(), objectid.New()}

	payment := Payment{Method: "cash", DeliveryType: "pickup"}
	txn := NewTransaction(buyer, books, 37.5, payment)

	assert.Equal(t, 0, txn.TransactionRating)
	assert.False(t, txn.IsRated())
	assert.False(t, txn.IsReported())
	assert.Equal(t, books, txn.Books)
	assert.Equal(t, 37.5, txn.TotalAmount)
	assert.Equal(t, payment, txn.Payment)
}

func TestTransaction_Rate(t *testing.T) {
	buyer := objectid.New()
	txn := NewTransaction(buyer, nil, 10, Payment{})

	require.NoError(t, txn.Rate(buyer, 4))
	assert.Equal(t, 4, txn.TransactionRating)

	// 只能评分一次
	assert.ErrorIs(t, txn.Rate(buyer, 5), ErrAlreadyRated)
	assert.Equal(t, 4, txn.TransactionRating)
}

func TestTransaction_Rate_RangeCheck(t *testing.T) {
	buyer := objectid.New()
	txn := NewTransaction(buyer, nil, 10, Payment{})

	assert.ErrorIs(t, txn.Rate(buyer, 0), ErrInvalidRating)
	assert.ErrorIs(t, txn.Rate(buyer, 6), ErrInvalidRating)

	// 边界值允许
	assert.NoError(t, txn.Rate(buyer, 1))
}

func TestTransaction_Rate_OnlyBuyer(t *testing.T) {
	buyer := objectid.New()
	txn := NewTransaction(buyer, nil, 10, Payment{})

	// 别人的交易按"不存在"报错，不暴露交易是否真实存在
	assert.ErrorIs(t, txn.Rate(objectid.New(), 3), ErrTransactionNotFound)
	assert.False(t, txn.IsRated())
}

func TestTransaction_Report(t *testing.T) {
	buyer := objectid.New()
	txn := NewTransaction(buyer, nil, 10, Payment{})

	require.NoError(t, txn.Report(buyer, "书籍缺页"))
	assert.Equal(t, "书籍缺页", txn.ReportText)
	assert.True(t, txn.IsReported())

	// 只能报告一次
	assert.ErrorIs(t, txn.Report(buyer, "另一个问题"), ErrAlreadyReported)
	assert.Equal(t, "书籍缺页", txn.ReportText)
}

func TestTransaction_Report_Validation(t *testing.T) {
	buyer := objectid.New()
	txn := NewTransaction(buyer, nil, 10, Payment{})

	assert.ErrorIs(t, txn.Report(buyer, "   "), ErrEmptyReport)
	assert.ErrorIs(t, txn.Report(objectid.New(), "问题"), ErrTransactionNotFound)
}
