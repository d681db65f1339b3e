package dto

// AdvancedSearchRequest HTTP高级搜索请求
// 所有条件都可选：
// - name/author: 子串匹配（大小写不敏感）
// - genres: 分类ID列表，AND语义
// - tags: 标签列表，AND语义（匹配前转小写）
// - min_price/max_price: 价格区间，越界值由应用层收敛到[0,10000]
// - latitude/longitude: 两者都传时结果按距离升序
type AdvancedSearchRequest struct {
	Name      string   `json:"name" example:"Go"`
	Author    string   `json:"author" example:"Donovan"`
	Genres    []string `json:"genres" binding:"omitempty,dive,len=24"`
	Tags      []string `json:"tags" binding:"omitempty,max=20"`
	MinPrice  float64  `json:"min_price" example:"10"`
	MaxPrice  float64  `json:"max_price" example:"100"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}
