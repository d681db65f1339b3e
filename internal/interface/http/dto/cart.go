package dto

// AddCartItemRequest 加购请求
// 数量区间[1,200]的校验在购物车实体里统一做，
// 这里只拦结构性错误（缺字段、ID长度不对）
type AddCartItemRequest struct {
	BookID   string `json:"book_id" binding:"required,len=24" example:"68a1f0c2b3d4e5f60718293a"`
	Quantity int    `json:"quantity" binding:"required" example:"2"`
}

// UpdateCartItemRequest 修改购物车条目数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required" example:"3"`
}
