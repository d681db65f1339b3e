package genre

import (
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// 分类领域错误
var (
	// ErrGenreNotFound 分类不存在
	ErrGenreNotFound = apperrors.ErrGenreNotFound

	// ErrGenreDuplicate 分类名已存在（唯一索引冲突）
	ErrGenreDuplicate = apperrors.ErrGenreDuplicate

	// ErrInvalidName 分类名过短或过长
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名长度应为3-255个字符")
)
