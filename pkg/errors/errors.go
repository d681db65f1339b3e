package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 40xxx: 客户端错误（校验失败、未授权、资源不存在、冲突）
// - 50xxx: 服务端错误（数据库异常、外部服务调用失败）
// 四类业务错误与错误码段的对应关系：
// - 校验错误(Validation)：40000段业务规则 + 40900段参数
// - 未授权(Unauthorized)：40100段
// - 资源不存在(NotFound)：40400段
// - 冲突(Conflict)：40600段

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeStorageError  = 50003 // 对象存储错误
	ErrCodeMQError       = 50004 // 消息队列错误

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 密码错误
	ErrCodeForbidden       = 40104 // 无权限（如非管理员操作分类）
	ErrCodeNotOwner        = 40105 // 资源属于其他用户

	// 资源错误（40400-40499）
	ErrCodeNotFound            = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound        = 40401 // 用户不存在
	ErrCodeBookNotFound        = 40402 // 书籍不存在
	ErrCodeAuthorNotFound      = 40403 // 作者不存在
	ErrCodeGenreNotFound       = 40404 // 分类不存在
	ErrCodeCartNotFound        = 40405 // 购物车不存在
	ErrCodeCartItemNotFound    = 40406 // 购物车条目不存在
	ErrCodeTransactionNotFound = 40407 // 交易记录不存在

	// 冲突错误（40600-40699）
	ErrCodeConflict          = 40600 // 冲突(通用)
	ErrCodeEmailDuplicate    = 40601 // 邮箱已存在
	ErrCodeUsernameDuplicate = 40602 // 用户名已存在
	ErrCodeGenreDuplicate    = 40603 // 分类名已存在
	ErrCodeAuthorDuplicate   = 40604 // 作者名已存在
	ErrCodeBookDuplicate     = 40605 // 同一卖家重复发布同名书籍

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError     = 40000 // 业务错误(通用)
	ErrCodeInsufficientStock = 40001 // 库存不足
	ErrCodeOutOfStock        = 40002 // 书籍已售罄（剩余数量<=0）
	ErrCodeEmptyCart         = 40003 // 购物车为空
	ErrCodeAlreadyRated      = 40004 // 交易已评分
	ErrCodeAlreadyReported   = 40005 // 交易已提交报告
	ErrCodeWeakPassword      = 40006 // 密码强度不足

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
	ErrCodeInvalidID     = 40902 // ID格式错误（非24位十六进制）
	ErrCodeInvalidPage   = 40903 // 页码越界
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")
	ErrStorageError  = New(ErrCodeStorageError, "文件存储服务错误")

	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "密码错误")
	ErrForbidden       = New(ErrCodeForbidden, "无权限访问")
	ErrNotOwner        = New(ErrCodeNotOwner, "无权操作他人资源")

	// 资源不存在
	ErrUserNotFound        = New(ErrCodeUserNotFound, "用户不存在")
	ErrBookNotFound        = New(ErrCodeBookNotFound, "书籍不存在")
	ErrAuthorNotFound      = New(ErrCodeAuthorNotFound, "作者不存在")
	ErrGenreNotFound       = New(ErrCodeGenreNotFound, "分类不存在")
	ErrCartNotFound        = New(ErrCodeCartNotFound, "购物车不存在")
	ErrCartItemNotFound    = New(ErrCodeCartItemNotFound, "购物车条目不存在")
	ErrTransactionNotFound = New(ErrCodeTransactionNotFound, "交易记录不存在")

	// 冲突
	ErrEmailDuplicate    = New(ErrCodeEmailDuplicate, "邮箱已被注册")
	ErrUsernameDuplicate = New(ErrCodeUsernameDuplicate, "用户名已被占用")
	ErrGenreDuplicate    = New(ErrCodeGenreDuplicate, "分类名已存在")
	ErrAuthorDuplicate   = New(ErrCodeAuthorDuplicate, "作者名已存在")
	ErrBookDuplicate     = New(ErrCodeBookDuplicate, "A book with the given name already exists in your collection")

	// 业务规则
	ErrInsufficientStock = New(ErrCodeInsufficientStock, "库存不足")
	ErrOutOfStock        = New(ErrCodeOutOfStock, "Book doesn't exist")
	ErrEmptyCart         = New(ErrCodeEmptyCart, "No items in cart")
	ErrAlreadyRated      = New(ErrCodeAlreadyRated, "交易已评分")
	ErrAlreadyReported   = New(ErrCodeAlreadyReported, "交易已提交报告")
	ErrWeakPassword      = New(ErrCodeWeakPassword, "密码强度不足（需8-20位，包含字母和数字）")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
	ErrInvalidID     = New(ErrCodeInvalidID, "Invalid ID")
	ErrInvalidPage   = New(ErrCodeInvalidPage, "Invalid page number")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// IsNotFound 判断是否为资源不存在类错误（40400段）
func IsNotFound(err error) bool {
	appErr := GetAppError(err)
	return appErr.Code >= 40400 && appErr.Code < 40500
}

// IsConflict 判断是否为冲突类错误（40600段）
func IsConflict(err error) bool {
	appErr := GetAppError(err)
	return appErr.Code >= 40600 && appErr.Code < 40700
}

// IsValidation 判断是否为校验类错误（40000段业务规则或40900段参数）
func IsValidation(err error) bool {
	appErr := GetAppError(err)
	return (appErr.Code >= 40000 && appErr.Code < 40100) ||
		(appErr.Code >= 40900 && appErr.Code < 41000)
}

// IsUnauthorized 判断是否为认证授权类错误（40100段）
func IsUnauthorized(err error) bool {
	appErr := GetAppError(err)
	return appErr.Code >= 40100 && appErr.Code < 40200
}
