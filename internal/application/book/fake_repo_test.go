package book

import (
	"context"

	"github.com/xiebiao/bookmarket/internal/domain/author"
	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/domain/genre"
	"github.com/xiebiao/bookmarket/internal/domain/user"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// fakeBookRepo 内存实现，按插入顺序保存
type fakeBookRepo struct {
	books []*book.Book
	// listErr/countErr 注入错误用
	listErr  error
	countErr error
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	return &fakeBookRepo{books: books}
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error {
	for _, exist := range r.books {
		if exist.SellerID == b.SellerID && exist.Name == b.Name {
			return book.ErrBookDuplicate
		}
	}
	r.books = append(r.books, b)
	return nil
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id objectid.ID) (*book.Book, error) {
	for _, b := range r.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepo) FindByIDs(ctx context.Context, ids []objectid.ID) ([]*book.Book, error) {
	var result []*book.Book
	for _, id := range ids {
		for _, b := range r.books {
			if b.ID == id {
				result = append(result, b)
				break
			}
		}
	}
	return result, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error {
	for i, exist := range r.books {
		if exist.ID == b.ID {
			r.books[i] = b
			return nil
		}
	}
	return book.ErrBookNotFound
}

func (r *fakeBookRepo) Delete(ctx context.Context, id objectid.ID) error {
	for i, b := range r.books {
		if b.ID == id {
			r.books = append(r.books[:i], r.books[i+1:]...)
			return nil
		}
	}
	return book.ErrBookNotFound
}

func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	start := (params.Page - 1) * params.PageSize
	if start >= len(r.books) {
		return []*book.Book{}, int64(len(r.books)), nil
	}
	end := start + params.PageSize
	if end > len(r.books) {
		end = len(r.books)
	}
	return r.books[start:end], int64(len(r.books)), nil
}

func (r *fakeBookRepo) ListAll(ctx context.Context) ([]*book.Book, error) {
	return append([]*book.Book{}, r.books...), nil
}

func (r *fakeBookRepo) ListGiveaways(ctx context.Context, limit int) ([]*book.Book, error) {
	var result []*book.Book
	for _, b := range r.books {
		if b.IsGiveaway() {
			result = append(result, b)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func (r *fakeBookRepo) Count(ctx context.Context) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return int64(len(r.books)), nil
}

func (r *fakeBookRepo) Search(ctx context.Context, params book.SearchParams) ([]*book.Book, error) {
	return append([]*book.Book{}, r.books...), nil
}

func (r *fakeBookRepo) LockByID(ctx context.Context, id objectid.ID) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookRepo) UpdateStock(ctx context.Context, id objectid.ID, delta int) error {
	b, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Quantity+delta < 0 {
		return book.ErrOutOfStock
	}
	b.Quantity += delta
	return nil
}

// fakeAuthorRepo 只实现名称解析用到的批量查询
type fakeAuthorRepo struct {
	author.Repository
	authors map[objectid.ID]*author.Author
}

func newFakeAuthorRepo(authors ...*author.Author) *fakeAuthorRepo {
	m := make(map[objectid.ID]*author.Author, len(authors))
	for _, a := range authors {
		m[a.ID] = a
	}
	return &fakeAuthorRepo{authors: m}
}

func (r *fakeAuthorRepo) FindByIDs(ctx context.Context, ids []objectid.ID) ([]*author.Author, error) {
	var result []*author.Author
	for _, id := range ids {
		if a, ok := r.authors[id]; ok {
			result = append(result, a)
		}
	}
	return result, nil
}

// fakeGenreRepo 只实现名称解析用到的批量查询
type fakeGenreRepo struct {
	genre.Repository
	genres map[objectid.ID]*genre.Genre
}

func newFakeGenreRepo(genres ...*genre.Genre) *fakeGenreRepo {
	m := make(map[objectid.ID]*genre.Genre, len(genres))
	for _, g := range genres {
		m[g.ID] = g
	}
	return &fakeGenreRepo{genres: m}
}

func (r *fakeGenreRepo) FindByIDs(ctx context.Context, ids []objectid.ID) ([]*genre.Genre, error) {
	var result []*genre.Genre
	for _, id := range ids {
		if g, ok := r.genres[id]; ok {
			result = append(result, g)
		}
	}
	return result, nil
}

// fakeUserRepo 只实现卖家用户名解析用到的查询
type fakeUserRepo struct {
	user.Repository
	users map[objectid.ID]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	m := make(map[objectid.ID]*user.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id objectid.ID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}
