package dto

// CreateBookRequest HTTP发布书籍请求
// validator tag说明:
// - required: 必填字段
// - min/max: 数值范围校验
// - oneof: 枚举值校验
// 业务规则类的校验（分类存在性、同卖家书名唯一）在领域层，不在这里
type CreateBookRequest struct {
	Name          string   `json:"name" binding:"required,max=200" example:"Go程序设计语言"`
	Authors       []string `json:"authors" binding:"required,min=1" example:"Alan A. A. Donovan"`
	Genres        []string `json:"genres" binding:"omitempty,dive,len=24"`
	Quantity      int      `json:"quantity" binding:"min=0" example:"3"`
	UnitPrice     float64  `json:"unit_price" binding:"min=0" example:"45.5"` // 0表示免费赠送
	BookCondition string   `json:"book_condition" binding:"omitempty,oneof=used unused" example:"used"`
	Tags          []string `json:"tags" binding:"omitempty,max=20" example:"programming"`
	Description   string   `json:"description" binding:"max=5000"`
	Latitude      *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude     *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

// UpdateStockRequest HTTP修改库存/价格请求
// 两个字段都可选，用指针区分"没传"和"传了0"
type UpdateStockRequest struct {
	Quantity  *int     `json:"quantity" binding:"omitempty,min=0" example:"5"`
	UnitPrice *float64 `json:"unit_price" binding:"omitempty,min=0" example:"39.9"`
}

// ListBooksQuery 目录分页查询参数
// 每页条数固定，不开放给客户端
type ListBooksQuery struct {
	Page int `form:"page,default=1" example:"1"`
}

// SortBooksQuery 排序查询参数
// by只允许name/unitPrice/genre（领域层校验）；
// order为ascending时升序，其余一律降序
type SortBooksQuery struct {
	By    string `form:"by" binding:"required" example:"unitPrice"`
	Order string `form:"order" example:"ascending"`
}

// LocationQuery 按距离排序查询参数
type LocationQuery struct {
	Latitude  float64 `form:"latitude" binding:"required,min=-90,max=90" example:"31.23"`
	Longitude float64 `form:"longitude" binding:"required,min=-180,max=180" example:"121.47"`
}
