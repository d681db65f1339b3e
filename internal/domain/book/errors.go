package book

import (
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// 书籍领域错误
var (
	// ErrBookNotFound 书籍不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrBookDuplicate 同一卖家重复发布同名书籍
	ErrBookDuplicate = apperrors.ErrBookDuplicate

	// ErrOutOfStock 库存不足或购买数量非法
	ErrOutOfStock = apperrors.ErrOutOfStock

	// ErrNotOwner 操作他人发布的书籍
	ErrNotOwner = apperrors.ErrNotOwner

	// ErrInvalidName 书名为空或过长
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "书名长度应为1-255个字符")

	// ErrInvalidPrice 单价越界（0-10000）
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "单价必须在0-10000之间")

	// ErrInvalidQuantity 库存数量为负
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "库存数量不能为负数")

	// ErrInvalidCondition 成色取值非法
	ErrInvalidCondition = apperrors.New(apperrors.ErrCodeInvalidParams, "成色只能是used或unused")

	// ErrInvalidSortField 排序字段非法
	ErrInvalidSortField = apperrors.New(apperrors.ErrCodeInvalidParams, "排序字段只能是name、unitPrice或genre")

	// ErrInvalidLocation 坐标越界
	ErrInvalidLocation = apperrors.New(apperrors.ErrCodeInvalidParams, "坐标超出有效范围")
)
