package book

import (
	"github.com/xiebiao/bookmarket/internal/domain/author"
	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/domain/genre"
	"github.com/xiebiao/bookmarket/pkg/geo"
)

// BookItem 书籍基础DTO
// 排序/搜索/赠书接口直接返回它，作者和分类只带ID（减少查询量）；
// 目录分页和详情在此基础上追加解析后的名称
type BookItem struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Genres        []string   `json:"genres"`
	Authors       []string   `json:"authors"`
	Quantity      int        `json:"quantity"`
	UnitPrice     float64    `json:"unit_price"`
	BookCondition string     `json:"book_condition"`
	SellerID      string     `json:"seller_id"`
	Tags          []string   `json:"tags"`
	Images        []string   `json:"images"`
	Location      *geo.Point `json:"location,omitempty"`
	CreatedAt     string     `json:"created_at"`
}

// BookDetail 书籍详情DTO
// 详情接口把作者和分类解析成完整对象
type BookDetail struct {
	BookItem
	Description     string          `json:"description"`
	SellerName      string          `json:"seller_name"`
	ResolvedAuthors []ResolvedName  `json:"resolved_authors"`
	ResolvedGenres  []ResolvedGenre `json:"resolved_genres"`
}

// ResolvedName 解析后的作者
type ResolvedName struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ResolvedGenre 解析后的分类
type ResolvedGenre struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsParent bool   `json:"is_parent"`
}

func toBookItem(b *book.Book) BookItem {
	genres := make([]string, len(b.Genres))
	for i, id := range b.Genres {
		genres[i] = string(id)
	}
	authors := make([]string, len(b.Authors))
	for i, id := range b.Authors {
		authors[i] = string(id)
	}
	return BookItem{
		ID:            string(b.ID),
		Name:          b.Name,
		Genres:        genres,
		Authors:       authors,
		Quantity:      b.Quantity,
		UnitPrice:     b.UnitPrice,
		BookCondition: string(b.BookCondition),
		SellerID:      string(b.SellerID),
		Tags:          b.Tags,
		Images:        b.Images,
		Location:      b.Location,
		CreatedAt:     b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toBookItems(books []*book.Book) []BookItem {
	items := make([]BookItem, len(books))
	for i, b := range books {
		items[i] = toBookItem(b)
	}
	return items
}

func toBookDetail(b *book.Book, authors []*author.Author, genres []*genre.Genre, sellerName string) *BookDetail {
	detail := &BookDetail{
		BookItem:        toBookItem(b),
		Description:     b.Description,
		SellerName:      sellerName,
		ResolvedAuthors: make([]ResolvedName, len(authors)),
		ResolvedGenres:  make([]ResolvedGenre, len(genres)),
	}
	for i, a := range authors {
		detail.ResolvedAuthors[i] = ResolvedName{ID: string(a.ID), Name: a.Name}
	}
	for i, g := range genres {
		detail.ResolvedGenres[i] = ResolvedGenre{ID: string(g.ID), Name: g.Name, IsParent: g.IsParent}
	}
	return detail
}
