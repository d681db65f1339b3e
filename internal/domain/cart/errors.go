package cart

import (
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// 购物车领域错误
var (
	// ErrCartNotFound 买家还没有购物车
	ErrCartNotFound = apperrors.ErrCartNotFound

	// ErrCartItemNotFound 购物车条目不存在
	ErrCartItemNotFound = apperrors.ErrCartItemNotFound

	// ErrEmptyCart 购物车为空（"No items in cart"，结账时返回）
	ErrEmptyCart = apperrors.ErrEmptyCart

	// ErrInvalidQuantity 购买数量越界（1-200）
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须在1-200之间")
)
