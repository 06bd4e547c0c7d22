package middlewares

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"golang.org/x/time/rate"

	"tarott/pkg/app"
	"tarott/pkg/config"
	"tarott/pkg/limiter"
	"tarott/pkg/logger"
	"tarott/pkg/redis"
	"tarott/pkg/response"
)

const (
	// DefaultBurst 默认突发请求数量
	DefaultBurst = 100
	// limiterIdleTTL 内存限流器闲置多久后清理
	limiterIdleTTL = 24 * time.Hour
)

var (
	// 用于存储限流器的并发安全缓存
	limiters sync.Map
	// 每个限流器最近一次被使用的时间
	lastAccess  sync.Map
	cleanupOnce sync.Once
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Limit string
	Burst int
}

// LimitIP 全局限流中间件，针对 IP 进行限流
//
// 支持的限流格式:
// - 5 reqs/second:   "5-S"
// - 10 reqs/minute:  "10-M"
// - 1000 reqs/hour:  "1000-H"
// - 2000 reqs/day:   "2000-D"
func LimitIP(limit string) gin.HandlerFunc {
	return createLimiterHandler(limiter.GetKeyIP, newRateLimitConfig(limit))
}

// LimitPerRoute 针对单个路由的限流中间件，基于 IP + 路由路径
func LimitPerRoute(limit string) gin.HandlerFunc {
	return createLimiterHandler(limiter.GetKeyRouteWithIP, newRateLimitConfig(limit))
}

func newRateLimitConfig(limit string) RateLimitConfig {
	// 测试环境使用较大限制
	if app.IsTesting() {
		limit = "1000000-H"
	}
	return RateLimitConfig{Limit: limit, Burst: DefaultBurst}
}

// useRedisStore limiter.store 为 redis 且 Redis 已连接时，计数放在 Redis 中
func useRedisStore() bool {
	return config.GetString("limiter.store") == "redis" && redis.Redis != nil
}

// createLimiterHandler 创建限流处理器
// keyFunc: 用于生成限流键的函数
// config: 限流配置
func createLimiterHandler(keyFunc func(*gin.Context) string, cfg RateLimitConfig) gin.HandlerFunc {
	cleanupOnce.Do(func() {
		go cleanupLimiters()
	})

	return func(c *gin.Context) {
		key := keyFunc(c)

		if useRedisStore() {
			checkRedisRate(c, key, cfg)
			return
		}

		// 获取或创建限流器
		lim, err := getLimiter(cfg.Limit+":"+key, cfg)
		if err != nil {
			logger.ErrorString("限流器", "创建失败", err.Error())
			// 降级处理：允许请求通过
			c.Next()
			return
		}

		// 尝试获取令牌
		if !lim.Allow() {
			response.Abort429(c)
			return
		}

		// 设置 RateLimit 相关响应头
		setRateLimitHeaders(c, lim)

		c.Next()
	}
}

// checkRedisRate 使用 Redis 计数判断是否超额
func checkRedisRate(c *gin.Context, key string, cfg RateLimitConfig) {
	result, err := limiter.CheckRate(c, key, cfg.Limit)
	if err != nil {
		logger.ErrorString("限流器", "Redis 计数失败", err.Error())
		// 降级处理：允许请求通过
		c.Next()
		return
	}

	c.Header("X-RateLimit-Limit", cast.ToString(result.Limit))
	c.Header("X-RateLimit-Remaining", cast.ToString(result.Remaining))
	c.Header("X-RateLimit-Reset", cast.ToString(result.Reset))

	if result.Reached {
		response.Abort429(c)
		return
	}

	c.Next()
}

// getLimiter 获取或创建限流器
func getLimiter(key string, cfg RateLimitConfig) (*rate.Limiter, error) {
	defer lastAccess.Store(key, time.Now())

	// 尝试从缓存获取限流器
	if lim, exists := limiters.Load(key); exists {
		return lim.(*rate.Limiter), nil
	}

	// 解析限流配置
	r, err := limiter.ParseLimit(cfg.Limit)
	if err != nil {
		return nil, err
	}

	// 创建新的限流器
	lim := rate.NewLimiter(rate.Limit(r.Rate), cfg.Burst)

	// 并发安全地存储限流器
	actual, _ := limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter), nil
}

// setRateLimitHeaders 设置限流相关的响应头
func setRateLimitHeaders(c *gin.Context, lim *rate.Limiter) {
	c.Header("X-RateLimit-Limit", cast.ToString(float64(lim.Limit())))
	c.Header("X-RateLimit-Remaining", cast.ToString(int(lim.Tokens())))
	c.Header("X-RateLimit-Reset", cast.ToString(time.Now().Add(time.Second).Unix()))
}

// cleanupLimiters 定期清理过期的限流器
func cleanupLimiters() {
	ticker := time.NewTicker(1 * time.Hour)
	for range ticker.C {
		sweepLimiters(time.Now())
	}
}

// sweepLimiters 清理超过 limiterIdleTTL 未使用的限流器
func sweepLimiters(now time.Time) {
	limiters.Range(func(key, _ interface{}) bool {
		last, ok := lastAccess.Load(key)
		if !ok {
			lastAccess.Store(key, now)
			return true
		}
		if now.Sub(last.(time.Time)) > limiterIdleTTL {
			limiters.Delete(key)
			lastAccess.Delete(key)
		}
		return true
	})
}
