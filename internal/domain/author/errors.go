package author

import (
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// 作者领域错误
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.ErrAuthorNotFound

	// ErrAuthorDuplicate 作者名已存在（唯一索引冲突）
	ErrAuthorDuplicate = apperrors.ErrAuthorDuplicate

	// ErrInvalidName 作者名过短或过长
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "作者名长度应为3-255个字符")
)
