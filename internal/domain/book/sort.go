package book

import (
	"sort"
	"strings"

	"github.com/xiebiao/bookmarket/pkg/geo"
)

// SortField 排序字段
type SortField string

const (
	SortFieldName      SortField = "name"
	SortFieldUnitPrice SortField = "unitPrice"
	SortFieldGenre     SortField = "genre"
)

// ParseSortField 解析排序字段，只允许name、unitPrice、genre三个取值
func ParseSortField(s string) (SortField, error) {
	switch SortField(s) {
	case SortFieldName, SortFieldUnitPrice, SortFieldGenre:
		return SortField(s), nil
	default:
		return "", ErrInvalidSortField
	}
}

// SortOrder 排序方向
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortOrder 解析排序方向
// 约定："ascending"为升序，其余任何取值都按降序处理
func ParseSortOrder(s string) SortOrder {
	if s == "ascending" {
		return OrderAsc
	}
	return OrderDesc
}

// comparators 排序字段到升序比较函数的映射表
// 按genre排序时取分类ID列表的首个元素做字典序比较（没有分类的排在前面）
var comparators = map[SortField]func(a, b *Book) bool{
	SortFieldName: func(a, b *Book) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	},
	SortFieldUnitPrice: func(a, b *Book) bool {
		return a.UnitPrice < b.UnitPrice
	},
	SortFieldGenre: func(a, b *Book) bool {
		return firstGenre(a) < firstGenre(b)
	},
}

func firstGenre(b *Book) string {
	if len(b.Genres) == 0 {
		return ""
	}
	return string(b.Genres[0])
}

// SortBooks 按指定字段与方向排序（原地稳定排序）
func SortBooks(books []*Book, field SortField, order SortOrder) {
	less, ok := comparators[field]
	if !ok {
		return
	}
	if order == OrderDesc {
		asc := less
		less = func(a, b *Book) bool { return asc(b, a) }
	}
	sort.SliceStable(books, func(i, j int) bool {
		return less(books[i], books[j])
	})
}

// SortByDistance 按与origin的球面距离升序排序
// 没有坐标的书籍距离视为+Inf，始终排在最后
func SortByDistance(books []*Book, origin geo.Point) {
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].DistanceFrom(origin) < books[j].DistanceFrom(origin)
	})
}
