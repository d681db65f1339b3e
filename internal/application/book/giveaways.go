package book

import (
	"context"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/pkg/metrics"
)

// GiveawayLimit 赠书列表最多返回10条
const GiveawayLimit = 10

// GiveawayCache 赠书列表缓存抽象（由redis.CatalogCache实现）
type GiveawayCache interface {
	GetGiveaways(ctx context.Context, v interface{}) error
	SetGiveaways(ctx context.Context, v interface{}) error
}

// GiveawaysUseCase 免费赠书列表用例
// 设计说明：
// 1. 赠书列表是首页高频读，先查Redis缓存
// 2. 缓存访问经过熔断器：Redis持续故障时直接走数据库，不拖慢请求
// 3. 缓存未命中或不可用时回源数据库并尝试回填
type GiveawaysUseCase struct {
	bookRepo book.Repository
	cache    GiveawayCache
}

// NewGiveawaysUseCase 创建赠书列表用例
func NewGiveawaysUseCase(bookRepo book.Repository, cache GiveawayCache) *GiveawaysUseCase {
	return &GiveawaysUseCase{
		bookRepo: bookRepo,
		cache:    cache,
	}
}

// Execute 执行赠书列表查询
func (uc *GiveawaysUseCase) Execute(ctx context.Context) ([]BookItem, error) {
	// 1. 先查缓存（熔断器打开或未命中时err非nil）
	var cached []BookItem
	if err := uc.cache.GetGiveaways(ctx, &cached); err == nil {
		metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"result": "hit"})
		return cached, nil
	}
	metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"result": "miss"})

	// 2. 回源数据库
	books, err := uc.bookRepo.ListGiveaways(ctx, GiveawayLimit)
	if err != nil {
		return nil, err
	}
	items := toBookItems(books)

	// 3. 回填缓存（失败只影响下次命中率，不影响本次请求）
	_ = uc.cache.SetGiveaways(ctx, items)

	return items, nil
}
