package dto

// CreateGenreRequest 创建根分类请求
type CreateGenreRequest struct {
	Name string `json:"name" binding:"required,min=3,max=255" example:"计算机"`
}

// AddChildGenreRequest 创建子分类请求
// 父分类ID走路径参数，这里只有名字
type AddChildGenreRequest struct {
	Name string `json:"name" binding:"required,min=3,max=255" example:"编程语言"`
}

// RenameAuthorRequest 作者改名请求
type RenameAuthorRequest struct {
	Name string `json:"name" binding:"required,min=3,max=255" example:"Brian W. Kernighan"`
}
