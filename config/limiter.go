package config

import "tarott/pkg/config"

func init() {
	config.Add("limiter", func() map[string]interface{} {
		return map[string]interface{}{
			// 限流存储：
			// "memory" 进程内令牌桶，单实例部署使用
			// "redis" 多实例共享计数，需要配置 redis
			"store": config.Env("LIMITER_STORE", "memory"),

			// 全局限流：每小时每 IP 请求数
			"global": config.Env("LIMIT_GLOBAL", "30000-H"),
			// 创建会话限流
			"create_session": config.Env("LIMIT_CREATE_SESSION", "300-H"),
			// 提交解读限流
			"submit": config.Env("LIMIT_SUBMIT", "100-H"),
		}
	})
}
