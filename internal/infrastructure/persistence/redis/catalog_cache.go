package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookmarket/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
	"github.com/xiebiao/bookmarket/pkg/metrics"
)

// giveawaysKey 赠书列表缓存Key
const giveawaysKey = "catalog:giveaways"

// CatalogCache 目录缓存（赠书列表等首页高频读）
// 设计说明：
// 1. 值统一JSON序列化存String类型（列表整体读写，不需要结构化操作）
// 2. 所有访问都经过熔断器：Redis连续故障时快速失败，
//    调用方拿到错误后直接降级查库，不被缓存超时拖慢
// 3. 熔断器状态变化同步到Prometheus指标，便于告警
type CatalogCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *circuitbreaker.CircuitBreaker
}

// NewCatalogCache 创建目录缓存
// ttl<=0时使用默认5分钟
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	cb := circuitbreaker.NewCircuitBreaker("catalog-cache", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			// 连续5次失败即熔断
			return counts.ConsecutiveFailures >= 5
		},
	})
	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		metrics.SetGaugeVec(metrics.CircuitBreakerState,
			map[string]string{"name": name}, float64(to))
	})

	return &CatalogCache{
		client:  client,
		ttl:     ttl,
		breaker: cb,
	}
}

// GetGiveaways 读取赠书列表缓存
// 未命中、反序列化失败、熔断器打开都返回非nil错误，调用方据此回源。
// 注意：未命中是正常现象，不能计入熔断器的失败统计
func (c *CatalogCache) GetGiveaways(ctx context.Context, v interface{}) error {
	missed := false
	err := c.breaker.Execute(func() error {
		raw, err := c.client.Get(ctx, giveawaysKey).Bytes()
		if err != nil {
			if err == redis.Nil {
				missed = true
				return nil
			}
			return err
		}
		return json.Unmarshal(raw, v)
	})
	if err != nil {
		return err
	}
	if missed {
		return apperrors.ErrRedisError
	}
	return nil
}

// SetGiveaways 回填赠书列表缓存
func (c *CatalogCache) SetGiveaways(ctx context.Context, v interface{}) error {
	return c.breaker.Execute(func() error {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return c.client.Set(ctx, giveawaysKey, raw, c.ttl).Err()
	})
}

// InvalidateGiveaways 失效赠书列表缓存（上架/下架赠书后调用）
func (c *CatalogCache) InvalidateGiveaways(ctx context.Context) error {
	return c.breaker.Execute(func() error {
		return c.client.Del(ctx, giveawaysKey).Err()
	})
}
