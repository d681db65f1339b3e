package dto

// CheckoutRequest 结算请求
// 支付配送信息可选：不传请求体时全部留空，自提可不填地址
type CheckoutRequest struct {
	PaymentMethod   string `json:"payment_method" binding:"omitempty,max=50" example:"cash"`
	DeliveryType    string `json:"delivery_type" binding:"omitempty,max=50" example:"pickup"`
	DeliveryAddress string `json:"delivery_address" binding:"omitempty,max=255" example:"中关村大街1号"`
}

// BuyRequest 直接购买请求（旧版客户端协议）
// 数量和单价都可以不传：数量默认1，单价默认取书的当前标价
type BuyRequest struct {
	Quantity  int      `json:"quantity" binding:"omitempty,min=1" example:"2"`
	UnitPrice *float64 `json:"unit_price" binding:"omitempty,min=0" example:"15.5"`
}

// RateTransactionRequest 交易评分请求
// 评分区间[1,5]和"只能评一次"的规则在交易实体里校验
type RateTransactionRequest struct {
	Rating int `json:"rating" binding:"required" example:"5"`
}

// ReportTransactionRequest 交易报告请求
type ReportTransactionRequest struct {
	Text string `json:"text" binding:"required,max=2000" example:"卖家发货的书与描述不符"`
}
