package user

import (
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// 用户领域错误
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.ErrUserNotFound

	// ErrUsernameDuplicate 用户名已被占用
	ErrUsernameDuplicate = apperrors.ErrUsernameDuplicate

	// ErrEmailDuplicate 邮箱已被注册
	ErrEmailDuplicate = apperrors.ErrEmailDuplicate

	// ErrInvalidPassword 密码错误
	ErrInvalidPassword = apperrors.ErrInvalidPassword

	// ErrWeakPassword 密码强度不足
	ErrWeakPassword = apperrors.ErrWeakPassword
)
