// Package routes 注册路由
package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tarott/app/http/controllers/api/v1/tarot"
	"tarott/app/http/middlewares"
	"tarott/pkg/catalog"
	"tarott/pkg/config"
	"tarott/pkg/reading"
	"tarott/pkg/session"
)

// 路由限流默认值，可通过 limiter 配置覆盖
const (
	// 🌍 全局限流：每小时每IP 30000 请求
	GlobalRateLimit = "30000-H"
	// 🎴 创建会话限流：每小时每IP 300 请求
	CreateSessionLimit = "300-H"
	// 🔮 提交解读限流：每小时每IP 100 请求
	SubmitReadingLimit = "100-H"
)

// Dependencies 路由依赖的服务
type Dependencies struct {
	// Context 服务关闭时取消，后台提交使用
	Context  context.Context
	Catalog  *catalog.Catalog
	Sessions *session.Manager
	// Reading 可选，用于健康检查展示远端调用统计
	Reading  *reading.Client
}

// RegisterAPIRoutes 注册所有 API 路由
func RegisterAPIRoutes(r *gin.Engine, deps Dependencies) {
	if deps.Context == nil {
		deps.Context = context.Background()
	}

	// 健康检查
	r.GET("/healthz", func(c *gin.Context) {
		body := gin.H{
			"status":   "ok",
			"sessions": deps.Sessions.Len(),
			"cards":    deps.Catalog.Len(),
		}
		if deps.Reading != nil {
			body["reading"] = deps.Reading.Stats()
		}
		c.JSON(http.StatusOK, body)
	})

	v1 := r.Group("/v1")

	v1.Use(
		middlewares.SecurityHeaders(),
		middlewares.Cors(),
		middlewares.LimitIP(config.GetString("limiter.global", GlobalRateLimit)),
	)

	// 📚 卡牌库
	cardRoutes := v1.Group("/cards")
	{
		cc := tarot.NewCardController(deps.Catalog)

		// GET /v1/cards?q=&suit=
		cardRoutes.GET("", cc.Index)
		// GET /v1/cards/:name
		cardRoutes.GET("/:name", cc.Show)
	}

	// 🎴 解读会话
	sessionRoutes := v1.Group("/sessions")
	{
		sc := tarot.NewSessionController(deps.Context, deps.Sessions)

		// 📝 创建会话
		// 请求频率：每小时每IP最多300次
		sessionRoutes.POST("",
			middlewares.LimitPerRoute(config.GetString("limiter.create_session", CreateSessionLimit)),
			sc.Store,
		)
		sessionRoutes.GET("/:id", sc.Show)
		sessionRoutes.DELETE("/:id", sc.Destroy)
		sessionRoutes.PUT("/:id/form", sc.UpdateForm)
		sessionRoutes.POST("/:id/select", sc.Select)
		sessionRoutes.POST("/:id/random", sc.Random)
		sessionRoutes.PUT("/:id/reversed", sc.SetReversed)

		// 🔮 提交解读
		// 请求频率：每小时每IP最多100次
		sessionRoutes.POST("/:id/submit",
			middlewares.LimitPerRoute(config.GetString("limiter.submit", SubmitReadingLimit)),
			sc.Submit,
		)
		sessionRoutes.POST("/:id/reset", sc.Reset)
	}
}
