package book

import (
	"math"
	"strings"
	"time"

	"github.com/xiebiao/bookmarket/pkg/geo"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// Condition 书籍成色
type Condition string

const (
	ConditionUsed Condition = "used"   // 二手
	ConditionNew  Condition = "unused" // 全新（未拆封）
)

// IsValid 成色取值校验
func (c Condition) IsValid() bool {
	return c == ConditionUsed || c == ConditionNew
}

// MaxUnitPrice 价格上限：单价超过该值的书不允许上架，搜索价格区间也以此封顶
const MaxUnitPrice = 10000.0

// Book 书籍实体（聚合根）
// 设计说明：
// 1. 这是二手书集市的在售条目：一个卖家发布的一本书及其库存
// 2. Genres/Authors存分类和作者的文档ID，详情接口再批量解析成对象
// 3. Tags统一转小写存储，搜索时大小写不敏感
// 4. Location是卖家自报的坐标，可为空；按距离排序时空坐标排在最后
// 5. UnitPrice为0表示免费赠送（giveaway）
type Book struct {
	ID            objectid.ID
	Name          string
	Genres        []objectid.ID
	Authors       []objectid.ID
	Quantity      int
	UnitPrice     float64
	BookCondition Condition
	SellerID      objectid.ID
	Tags          []string
	Description   string
	Images        []string
	Location      *geo.Point
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBook 创建新书籍（工厂方法）
// Tags在此处统一转小写，保证入库数据一致
func NewBook(name string, genres, authors []objectid.ID, quantity int, unitPrice float64,
	condition Condition, sellerID objectid.ID, tags []string, description string,
	location *geo.Point) *Book {
	now := time.Now()
	return &Book{
		ID:            objectid.New(),
		Name:          strings.TrimSpace(name),
		Genres:        genres,
		Authors:       authors,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		BookCondition: condition,
		SellerID:      sellerID,
		Tags:          NormalizeTags(tags),
		Description:   description,
		Images:        []string{},
		Location:      location,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NormalizeTags 标签归一化：转小写、去首尾空白、去重
func NormalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		result = append(result, t)
	}
	return result
}

// IsOwnedBy 判断书籍是否属于指定卖家
func (b *Book) IsOwnedBy(sellerID objectid.ID) bool {
	return b.SellerID == sellerID
}

// IsGiveaway 是否为免费赠送（单价为0）
func (b *Book) IsGiveaway() bool {
	return b.UnitPrice == 0
}

// DecrStock 扣减库存（领域行为）
// 业务规则：
// 1. 扣减数量必须为正
// 2. 库存不足时返回ErrOutOfStock
func (b *Book) DecrStock(quantity int) error {
	if quantity <= 0 {
		return ErrOutOfStock
	}
	if b.Quantity < quantity {
		return ErrOutOfStock
	}
	b.Quantity -= quantity
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateStock 部分更新库存信息
// quantity和unitPrice都是可选字段，nil表示不修改
func (b *Book) UpdateStock(quantity *int, unitPrice *float64) error {
	if quantity != nil {
		if *quantity < 0 {
			return ErrInvalidQuantity
		}
		b.Quantity = *quantity
	}
	if unitPrice != nil {
		if *unitPrice < 0 || *unitPrice > MaxUnitPrice {
			return ErrInvalidPrice
		}
		b.UnitPrice = *unitPrice
	}
	b.UpdatedAt = time.Now()
	return nil
}

// AddImage 追加一张图片URL
func (b *Book) AddImage(url string) {
	b.Images = append(b.Images, url)
	b.UpdatedAt = time.Now()
}

// DistanceFrom 计算与指定坐标的距离（公里）
// 没有坐标的书籍返回+Inf，按距离排序时自然落到最后
func (b *Book) DistanceFrom(origin geo.Point) float64 {
	if b.Location == nil || !b.Location.Valid() {
		return math.Inf(1)
	}
	return geo.Distance(origin, *b.Location)
}
