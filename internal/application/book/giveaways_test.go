package book

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/pkg/metrics"
	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// fakeGiveawayCache 内存缓存，miss=true时模拟未命中/熔断
type fakeGiveawayCache struct {
	items []BookItem
	miss  bool
	sets  int
}

func (c *fakeGiveawayCache) GetGiveaways(ctx context.Context, v interface{}) error {
	if c.miss {
		return errors.New("cache miss")
	}
	*(v.(*[]BookItem)) = c.items
	return nil
}

func (c *fakeGiveawayCache) SetGiveaways(ctx context.Context, v interface{}) error {
	c.items = v.([]BookItem)
	c.sets++
	return nil
}

func makeGiveaways(n int) []*book.Book {
	seller := objectid.New()
	books := make([]*book.Book, n)
	for i := 0; i < n; i++ {
		books[i] = book.NewBook(
			fmt.Sprintf("公益赠书 %d", i+1),
			nil, nil,
			1, 0, book.ConditionUsed,
			seller, nil, "", nil,
		)
	}
	return books
}

func TestGiveaways_CacheMissFallsBackToDB(t *testing.T) {
	metrics.InitMetrics()

	repo := newFakeBookRepo(makeGiveaways(3)...)
	cache := &fakeGiveawayCache{miss: true}
	uc := NewGiveawaysUseCase(repo, cache)

	items, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 3)
	// 回源后应回填缓存
	assert.Equal(t, 1, cache.sets)
}

func TestGiveaways_CacheHitSkipsDB(t *testing.T) {
	metrics.InitMetrics()

	// 数据库里没有书，缓存命中时不应回源
	repo := newFakeBookRepo()
	cache := &fakeGiveawayCache{
		items: []BookItem{{ID: string(objectid.New()), Name: "缓存里的赠书", UnitPrice: 0}},
	}
	uc := NewGiveawaysUseCase(repo, cache)

	items, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "缓存里的赠书", items[0].Name)
	assert.Zero(t, cache.sets)
}

func TestGiveaways_LimitTen(t *testing.T) {
	metrics.InitMetrics()

	repo := newFakeBookRepo(makeGiveaways(15)...)
	uc := NewGiveawaysUseCase(repo, &fakeGiveawayCache{miss: true})

	items, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, GiveawayLimit)
}

func TestSortByField_TopTen(t *testing.T) {
	repo := newFakeBookRepo(makeBooks(13)...)
	uc := NewSortBooksUseCase(repo)

	items, err := uc.SortByField(context.Background(), "name", "ascending")
	require.NoError(t, err)
	assert.Len(t, items, SortLimit)

	// 非法字段
	_, err = uc.SortByField(context.Background(), "rating", "ascending")
	assert.ErrorIs(t, err, book.ErrInvalidSortField)
}
