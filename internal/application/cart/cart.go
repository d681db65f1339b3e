package cart

import (
	"context"
	"errors"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/domain/cart"
	"github.com/xiebiao/bookmarket/pkg/metrics"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// CartUseCase 购物车用例
// 设计说明：
// 1. 每个买家只有一个购物车，首次加购时隐式创建
// 2. 加购时把书籍当时的单价锁定在条目上，改数量按锁定价重算行金额
// 3. 移除不存在的条目不报错（删除操作天然幂等）
type CartUseCase struct {
	cartRepo cart.Repository
	bookRepo book.Repository
}

// NewCartUseCase 创建购物车用例
func NewCartUseCase(cartRepo cart.Repository, bookRepo book.Repository) *CartUseCase {
	return &CartUseCase{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

// CartItemResponse 购物车条目响应DTO
type CartItemResponse struct {
	ID          string  `json:"id"`
	BookID      string  `json:"bookId"`
	BookName    string  `json:"bookName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalAmount float64 `json:"totalAmount"`
}

// CartResponse 购物车响应DTO
type CartResponse struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"ownerId"`
	Items       []CartItemResponse `json:"items"`
	TotalAmount float64            `json:"totalAmount"`
}

// Get 查询当前买家的购物车
// 没有购物车时返回一个空购物车视图而不是404，前端少一个分支
func (uc *CartUseCase) Get(ctx context.Context, rawOwnerID string) (*CartResponse, error) {
	ownerID, err := objectid.Parse(rawOwnerID)
	if err != nil {
		return nil, err
	}

	c, err := uc.cartRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			return &CartResponse{
				OwnerID: rawOwnerID,
				Items:   []CartItemResponse{},
			}, nil
		}
		return nil, err
	}

	return uc.toResponse(ctx, c)
}

// AddBookRequest 加购请求DTO
type AddBookRequest struct {
	OwnerID  string // 从JWT中提取
	BookID   string
	Quantity int
}

// AddBook 把书加入购物车
// 业务规则：
// 1. 书籍必须存在（ID非法或查不到都报错）
// 2. 数量必须在[1,200]之间
// 3. 同一本书重复加购生成独立条目，不做合并
func (uc *CartUseCase) AddBook(ctx context.Context, req AddBookRequest) (*CartResponse, error) {
	ownerID, err := objectid.Parse(req.OwnerID)
	if err != nil {
		return nil, err
	}
	bookID, err := objectid.Parse(req.BookID)
	if err != nil {
		return nil, err
	}

	// 1. 查书拿当前单价
	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	// 2. 找到或创建购物车
	c, err := uc.cartRepo.FindByOwner(ctx, ownerID)
	created := false
	if err != nil {
		if !errors.Is(err, cart.ErrCartNotFound) {
			return nil, err
		}
		c = cart.NewCart(ownerID)
		created = true
	}

	// 3. 追加条目（数量越界在这里被拦截）
	if _, err := c.AddItem(b.ID, req.Quantity, b.UnitPrice); err != nil {
		return nil, err
	}

	// 4. 落库
	if created {
		err = uc.cartRepo.Create(ctx, c)
	} else {
		err = uc.cartRepo.Update(ctx, c)
	}
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.CartItemsAddedTotal)

	return uc.toResponse(ctx, c)
}

// UpdateQuantityRequest 修改条目数量请求DTO
type UpdateQuantityRequest struct {
	OwnerID  string // 从JWT中提取
	ItemID   string // 购物车条目ID
	Quantity int
}

// UpdateQuantity 修改购物车条目数量
// 行金额按加购时锁定的单价重算，卖家事后改价不影响已在车里的条目
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, req UpdateQuantityRequest) (*CartResponse, error) {
	ownerID, err := objectid.Parse(req.OwnerID)
	if err != nil {
		return nil, err
	}
	itemID, err := objectid.Parse(req.ItemID)
	if err != nil {
		return nil, err
	}

	c, err := uc.cartRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if _, err := c.UpdateItemQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}

	if err := uc.cartRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return uc.toResponse(ctx, c)
}

// RemoveBook 从购物车移除条目
// 业务规则：
// 1. 买家必须已有购物车，从未加购就删报ErrCartNotFound
// 2. 条目不存在时返回成功（对已有购物车的删除是幂等的）
func (uc *CartUseCase) RemoveBook(ctx context.Context, rawOwnerID, rawItemID string) (*CartResponse, error) {
	ownerID, err := objectid.Parse(rawOwnerID)
	if err != nil {
		return nil, err
	}
	itemID, err := objectid.Parse(rawItemID)
	if err != nil {
		return nil, err
	}

	c, err := uc.cartRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	c.RemoveItem(itemID)

	if err := uc.cartRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return uc.toResponse(ctx, c)
}

// toResponse 组装响应，条目上的书名批量解析一次
func (uc *CartUseCase) toResponse(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	books, err := uc.bookRepo.FindByIDs(ctx, c.BookIDs())
	if err != nil {
		return nil, err
	}
	names := make(map[objectid.ID]string, len(books))
	for _, b := range books {
		names[b.ID] = b.Name
	}

	items := make([]CartItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, CartItemResponse{
			ID:          string(item.ID),
			BookID:      string(item.BookID),
			BookName:    names[item.BookID], // 书已下架时留空
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalAmount: item.TotalAmount,
		})
	}

	return &CartResponse{
		ID:          string(c.ID),
		OwnerID:     string(c.OwnerID),
		Items:       items,
		TotalAmount: c.TotalAmount(),
	}, nil
}
