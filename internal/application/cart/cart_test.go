package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/domain/cart"
	"github.com/xiebiao/bookmarket/pkg/metrics"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// fakeCartRepo 内存购物车仓储（每个买家最多一条）
type fakeCartRepo struct {
	carts map[objectid.ID]*cart.Cart // key: OwnerID
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[objectid.ID]*cart.Cart)}
}

func (r *fakeCartRepo) FindByOwner(ctx context.Context, ownerID objectid.ID) (*cart.Cart, error) {
	c, ok := r.carts[ownerID]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	return c, nil
}

func (r *fakeCartRepo) Create(ctx context.Context, c *cart.Cart) error {
	r.carts[c.OwnerID] = c
	return nil
}

func (r *fakeCartRepo) Update(ctx context.Context, c *cart.Cart) error {
	if _, ok := r.carts[c.OwnerID]; !ok {
		return cart.ErrCartNotFound
	}
	r.carts[c.OwnerID] = c
	return nil
}

func (r *fakeCartRepo) Delete(ctx context.Context, id objectid.ID) error {
	for owner, c := range r.carts {
		if c.ID == id {
			delete(r.carts, owner)
			return nil
		}
	}
	return cart.ErrCartNotFound
}

// fakeBookRepo 只实现购物车用例用到的查询
type fakeBookRepo struct {
	book.Repository
	books map[objectid.ID]*book.Book
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	m := make(map[objectid.ID]*book.Book, len(books))
	for _, b := range books {
		m[b.ID] = b
	}
	return &fakeBookRepo{books: m}
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id objectid.ID) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) FindByIDs(ctx context.Context, ids []objectid.ID) ([]*book.Book, error) {
	var result []*book.Book
	for _, id := range ids {
		if b, ok := r.books[id]; ok {
			result = append(result, b)
		}
	}
	return result, nil
}

func newTestBook(name string, price float64) *book.Book {
	return book.NewBook(name, nil, nil, 10, price, book.ConditionUsed,
		objectid.New(), nil, "", nil)
}

func TestCart_AddBookCreatesCart(t *testing.T) {
	metrics.InitMetrics()

	b := newTestBook("深入理解计算机系统", 8.0)
	uc := NewCartUseCase(newFakeCartRepo(), newFakeBookRepo(b))
	owner := string(objectid.New())

	resp, err := uc.AddBook(context.Background(), AddBookRequest{
		OwnerID:  owner,
		BookID:   string(b.ID),
		Quantity: 5,
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	// 行金额 = 数量 × 单价
	assert.Equal(t, 40.0, resp.Items[0].TotalAmount)
	assert.Equal(t, 40.0, resp.TotalAmount)
	assert.Equal(t, "深入理解计算机系统", resp.Items[0].BookName)
}

func TestCart_AddBookRejectsBadQuantity(t *testing.T) {
	metrics.InitMetrics()

	b := newTestBook("代码大全", 30.0)
	uc := NewCartUseCase(newFakeCartRepo(), newFakeBookRepo(b))
	owner := string(objectid.New())

	for _, qty := range []int{0, -1, 201} {
		_, err := uc.AddBook(context.Background(), AddBookRequest{
			OwnerID:  owner,
			BookID:   string(b.ID),
			Quantity: qty,
		})
		assert.ErrorIs(t, err, cart.ErrInvalidQuantity, "quantity=%d", qty)
	}
}

func TestCart_AddMissingBook(t *testing.T) {
	metrics.InitMetrics()

	uc := NewCartUseCase(newFakeCartRepo(), newFakeBookRepo())

	_, err := uc.AddBook(context.Background(), AddBookRequest{
		OwnerID:  string(objectid.New()),
		BookID:   string(objectid.New()),
		Quantity: 1,
	})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestCart_UpdateQuantityRecomputesAmount(t *testing.T) {
	metrics.InitMetrics()

	b := newTestBook("重构", 8.0)
	uc := NewCartUseCase(newFakeCartRepo(), newFakeBookRepo(b))
	owner := string(objectid.New())

	resp, err := uc.AddBook(context.Background(), AddBookRequest{
		OwnerID:  owner,
		BookID:   string(b.ID),
		Quantity: 2,
	})
	require.NoError(t, err)
	itemID := resp.Items[0].ID

	// 卖家改价不影响已锁定的条目单价
	b.UnitPrice = 25.0

	resp, err = uc.UpdateQuantity(context.Background(), UpdateQuantityRequest{
		OwnerID:  owner,
		ItemID:   itemID,
		Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.Equal(t, 8.0, resp.Items[0].UnitPrice)
	assert.Equal(t, 40.0, resp.Items[0].TotalAmount, "5本×加购价8元=40元")
}

func TestCart_RemoveIsPermissive(t *testing.T) {
	metrics.InitMetrics()

	b := newTestBook("程序员修炼之道", 12.0)
	uc := NewCartUseCase(newFakeCartRepo(), newFakeBookRepo(b))
	owner := string(objectid.New())

	resp, err := uc.AddBook(context.Background(), AddBookRequest{
		OwnerID:  owner,
		BookID:   string(b.ID),
		Quantity: 1,
	})
	require.NoError(t, err)
	itemID := resp.Items[0].ID

	// 第一次移除生效
	resp, err = uc.RemoveBook(context.Background(), owner, itemID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)

	// 重复移除同样成功
	_, err = uc.RemoveBook(context.Background(), owner, itemID)
	assert.NoError(t, err)

	// 从未加购的买家没有购物车可删
	_, err = uc.RemoveBook(context.Background(), string(objectid.New()), itemID)
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

func TestCart_GetWithoutCart(t *testing.T) {
	uc := NewCartUseCase(newFakeCartRepo(), newFakeBookRepo())

	resp, err := uc.Get(context.Background(), string(objectid.New()))
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Zero(t, resp.TotalAmount)
}
