package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// MySQL错误码:
// - 1062: Duplicate entry 'xxx' for key 'yyy'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	// GORM v2的错误判断
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 兼容检查:错误信息包含"Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry")
}

// getDB 从context获取事务DB,如果没有则使用传入的默认DB
// 教学要点:事务传递机制,TxManager把事务DB放进context,
// 各Repository通过该函数拿到同一个事务
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// idsToStrings 文档ID切片 → 字符串切片(入库用)
func idsToStrings(ids []objectid.ID) []string {
	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = string(id)
	}
	return result
}

// stringsToIDs 字符串切片 → 文档ID切片(出库用)
func stringsToIDs(raw []string) []objectid.ID {
	result := make([]objectid.ID, len(raw))
	for i, s := range raw {
		result[i] = objectid.ID(s)
	}
	return result
}
