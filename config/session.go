package config

import "tarott/pkg/config"

func init() {
	config.Add("session", func() map[string]interface{} {
		return map[string]interface{}{
			// 会话空闲多久后回收，单位：分钟
			"ttl_minutes": config.Env("SESSION_TTL_MINUTES", 30),
			// 回收检查间隔，单位：秒
			"sweep_seconds": config.Env("SESSION_SWEEP_SECONDS", 60),
			// 同时存在的会话上限，0 为不限
			"max_sessions": config.Env("SESSION_MAX", 10000),
		}
	})
}
