package bootstrap

import (
	"tarott/pkg/config"
	"tarott/pkg/logger"
	"tarott/pkg/reading"
)

// SetupReading 创建远端解读服务客户端
func SetupReading() (*reading.Client, error) {
	client, err := reading.NewClient(&reading.Config{
		BaseURL: config.GetString("reading.base_url"),
		Path:    config.GetString("reading.path", reading.DefaultPath),
		Timeout: config.GetSeconds("reading.timeout", 90),
	})
	if err != nil {
		return nil, err
	}

	logger.InfoString("Reading", "Setup", "解读服务地址: "+client.URL())
	return client, nil
}
