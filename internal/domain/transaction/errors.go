package transaction

import (
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// 交易领域错误
var (
	// ErrTransactionNotFound 交易记录不存在
	ErrTransactionNotFound = apperrors.ErrTransactionNotFound

	// ErrAlreadyRated 交易已评分
	ErrAlreadyRated = apperrors.ErrAlreadyRated

	// ErrAlreadyReported 交易已提交问题报告
	ErrAlreadyReported = apperrors.ErrAlreadyReported

	// ErrInvalidRating 评分越界（1-5）
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须在1-5之间")

	// ErrEmptyReport 报告内容为空
	ErrEmptyReport = apperrors.New(apperrors.ErrCodeInvalidParams, "报告内容不能为空")
)
