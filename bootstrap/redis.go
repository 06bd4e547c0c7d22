package bootstrap

import (
	"fmt"

	"tarott/pkg/config"
	"tarott/pkg/logger"
	"tarott/pkg/redis"
)

// SetupRedis 初始化 Redis，仅在限流计数存放于 Redis 时连接
func SetupRedis() error {
	if config.GetString("limiter.store") != "redis" {
		return nil
	}

	err := redis.ConnectRedis(
		fmt.Sprintf("%v:%v", config.GetString("redis.host"), config.GetString("redis.port")),
		config.GetString("redis.username"),
		config.GetString("redis.password"),
		config.GetInt("redis.database"),
	)
	if err != nil {
		return err
	}

	logger.InfoString("Redis", "Setup", "限流计数使用 Redis 存储")
	return nil
}
