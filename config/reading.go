package config

import (
	"tarott/pkg/config"
)

func init() {
	config.Add("reading", func() map[string]interface{} {
		baseURL := config.Env("READING_API_URL", "")
		if baseURL == "" {
			baseURL = config.Env("TAROT_BACKEND_URL", "https://tarott-backend.onrender.com")
		}

		return map[string]interface{}{
			"base_url": baseURL,
			"path":     config.Env("READING_API_PATH", "/api/tarot/reading"),
			// 单次请求超时，单位：秒。不做自动重试
			"timeout": config.Env("READING_TIMEOUT", 90),
		}
	})
}
