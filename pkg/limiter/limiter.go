// Package limiter 处理限流逻辑
package limiter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	limiterlib "github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"tarott/pkg/config"
	"tarott/pkg/logger"
	"tarott/pkg/redis"
)

// Rate 定义限流速率
type Rate struct {
	Rate float64 // 每秒请求数
}

// ParseLimit 解析限流配置字符串
// 支持的格式: "5-S"、"10-M"、"1000-H"、"2000-D"
func ParseLimit(limit string) (*Rate, error) {
	// 将 "5-S" 格式转换为 limiterlib 使用的 "5-S" 格式并校验
	if _, err := limiterlib.NewRateFromFormatted(limit); err != nil {
		return nil, fmt.Errorf("invalid limit format: %w", err)
	}

	// 获取数值部分
	parts := strings.Split(limit, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid limit format: %s", limit)
	}

	value, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid rate value: %s", parts[0])
	}

	// 根据时间单位转换为每秒的速率
	var ratePerSecond float64
	switch strings.ToUpper(parts[1]) {
	case "S":
		ratePerSecond = value
	case "M":
		ratePerSecond = value / 60.0
	case "H":
		ratePerSecond = value / 3600.0
	case "D":
		ratePerSecond = value / 86400.0
	default:
		return nil, fmt.Errorf("invalid time unit: %s", parts[1])
	}

	return &Rate{Rate: ratePerSecond}, nil
}

// GetKeyIP 获取 Limitor 的 Key，IP
func GetKeyIP(c *gin.Context) string {
	return c.ClientIP()
}

// GetKeyRouteWithIP Limitor 的 Key，路由+IP，针对单个路由做限流
func GetKeyRouteWithIP(c *gin.Context) string {
	return routeToKeyString(c.FullPath()) + c.ClientIP()
}

var (
	storeOnce sync.Once
	store     limiterlib.Store
	storeErr  error
)

// redisStore 使用程序共用的 redis.Redis 对象创建计数存储，只创建一次
func redisStore() (limiterlib.Store, error) {
	storeOnce.Do(func() {
		if redis.Redis == nil {
			storeErr = errors.New("limiter: redis is not connected")
			return
		}
		store, storeErr = sredis.NewStoreWithOptions(redis.Redis.Client, limiterlib.StoreOptions{
			// 为 limiter 设置前缀，保持 redis 里数据的整洁
			Prefix: config.GetString("app.name", "tarott") + ":limiter",
		})
	})
	return store, storeErr
}

// CheckRate 基于 Redis 检测请求是否超额，多实例部署时共享计数
func CheckRate(c *gin.Context, key string, formatted string) (limiterlib.Context, error) {
	var context limiterlib.Context

	rate, err := limiterlib.NewRateFromFormatted(formatted)
	if err != nil {
		logger.LogIf(err)
		return context, err
	}

	st, err := redisStore()
	if err != nil {
		logger.LogIf(err)
		return context, err
	}

	// Get() 取结果且增加访问次数
	return limiterlib.New(st, rate).Get(c, formatted+":"+key)
}

// routeToKeyString 辅助方法，将 URL 中的 / 格式为 -
func routeToKeyString(routeName string) string {
	routeName = strings.ReplaceAll(routeName, "/", "-")
	routeName = strings.ReplaceAll(routeName, ":", "_")
	return routeName
}
