package cart

import (
	"time"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// BookInCart 购物车条目
// UnitPrice是加购瞬间锁定的单价，卖家事后改价不影响已在车里的条目；
// TotalAmount是该条目的小计（数量 × 锁定单价）
type BookInCart struct {
	ID          objectid.ID `json:"id"`
	BookID      objectid.ID `json:"bookId"`
	Quantity    int         `json:"quantity"`
	UnitPrice   float64     `json:"unitPrice"`
	TotalAmount float64     `json:"totalAmount"`
}

// Cart 购物车实体（聚合根）
// 设计说明：
// 1. 每个买家最多只有一个购物车（OwnerID唯一索引）
// 2. 条目作为JSON列整体存储在购物车行内，读改写都以购物车为单位
// 3. 结账后整个购物车被删除，下次加购时重新创建
type Cart struct {
	ID        objectid.ID
	OwnerID   objectid.ID
	Items     []BookInCart
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCart 创建新购物车（工厂方法）
func NewCart(ownerID objectid.ID) *Cart {
	now := time.Now()
	return &Cart{
		ID:        objectid.New(),
		OwnerID:   ownerID,
		Items:     []BookInCart{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// 单次购买数量的允许区间
const (
	MinItemQuantity = 1
	MaxItemQuantity = 200
)

// AddItem 加入书籍（领域行为）
// 同一本书重复加购会生成独立条目，与新建条目语义一致
func (c *Cart) AddItem(bookID objectid.ID, quantity int, unitPrice float64) (*BookInCart, error) {
	if quantity < MinItemQuantity || quantity > MaxItemQuantity {
		return nil, ErrInvalidQuantity
	}

	item := BookInCart{
		ID:          objectid.New(),
		BookID:      bookID,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalAmount: float64(quantity) * unitPrice,
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
	return &item, nil
}

// UpdateItemQuantity 修改条目数量并按加购时锁定的单价重算小计
// 条目不存在返回ErrCartItemNotFound
func (c *Cart) UpdateItemQuantity(itemID objectid.ID, quantity int) (*BookInCart, error) {
	if quantity < MinItemQuantity || quantity > MaxItemQuantity {
		return nil, ErrInvalidQuantity
	}

	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			c.Items[i].TotalAmount = float64(quantity) * c.Items[i].UnitPrice
			c.UpdatedAt = time.Now()
			return &c.Items[i], nil
		}
	}

	return nil, ErrCartItemNotFound
}

// RemoveItem 移除条目
// 宽松语义：条目不在购物车里也不报错，最终状态都是"条目不存在"
func (c *Cart) RemoveItem(itemID objectid.ID) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// FindItem 按条目ID查找
func (c *Cart) FindItem(itemID objectid.ID) (*BookInCart, bool) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i], true
		}
	}
	return nil, false
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalAmount 购物车总金额（各条目小计之和）
func (c *Cart) TotalAmount() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.TotalAmount
	}
	return total
}

// BookIDs 购物车中全部条目引用的书籍ID（结账时快照到交易记录）
func (c *Cart) BookIDs() []objectid.ID {
	ids := make([]objectid.ID, len(c.Items))
	for i, item := range c.Items {
		ids[i] = item.BookID
	}
	return ids
}
