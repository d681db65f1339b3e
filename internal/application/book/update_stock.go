package book

import (
	"context"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// UpdateStockUseCase 卖家修改库存/价格用例
type UpdateStockUseCase struct {
	bookService book.Service
}

// NewUpdateStockUseCase 创建修改库存用例
func NewUpdateStockUseCase(bookService book.Service) *UpdateStockUseCase {
	return &UpdateStockUseCase{bookService: bookService}
}

// UpdateStockRequest 修改库存请求DTO
// Quantity和UnitPrice都是可选字段，nil表示不修改
type UpdateStockRequest struct {
	SellerID  string   // 从JWT中提取
	BookID    string   // 路径参数
	Quantity  *int     // 新库存（可选）
	UnitPrice *float64 // 新单价（可选）
}

// Execute 执行修改
func (uc *UpdateStockUseCase) Execute(ctx context.Context, req UpdateStockRequest) (*BookItem, error) {
	sellerID, err := objectid.Parse(req.SellerID)
	if err != nil {
		return nil, err
	}

	b, err := uc.bookService.UpdateStock(ctx, sellerID, req.BookID, req.Quantity, req.UnitPrice)
	if err != nil {
		return nil, err
	}

	item := toBookItem(b)
	return &item, nil
}

// DeleteBookUseCase 卖家下架书籍用例
// 返回被删除书籍的快照（前端展示"已下架：xxx"）
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建下架用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

// Execute 执行下架
func (uc *DeleteBookUseCase) Execute(ctx context.Context, rawSellerID, rawBookID string) (*BookItem, error) {
	sellerID, err := objectid.Parse(rawSellerID)
	if err != nil {
		return nil, err
	}

	b, err := uc.bookService.Delete(ctx, sellerID, rawBookID)
	if err != nil {
		return nil, err
	}

	item := toBookItem(b)
	return &item, nil
}
