package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tarott/bootstrap"
	btsConfig "tarott/config"
	"tarott/pkg/config"
	"tarott/pkg/database"
	"tarott/pkg/logger"
	"tarott/pkg/redis"
	"tarott/routes"
)

// 加载应用程序的基础配置
func init() {
	// 加载 config 目录下的配置信息
	btsConfig.Initialize()
}

// App 应用程序上下文，用于优雅关闭
type App struct {
	server *http.Server
	// 关闭时取消，停止会话回收和后台提交
	cancel context.CancelFunc
}

func main() {
	// 解析命令行参数
	env := parseFlags()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 初始化应用配置
	deps, err := setupApplication(ctx, env)
	if err != nil {
		log.Fatalf("初始化应用程序失败: %v", err)
	}

	// 创建并配置 Gin 服务器
	router := setupServer(deps)

	// 创建应用实例
	app := &App{
		server: &http.Server{
			Addr:    ":" + config.Get("app.port"),
			Handler: router,
		},
		cancel: cancel,
	}

	// 启动服务器（包含优雅关闭）
	app.start()
}

// parseFlags 解析命令行参数
// 返回环境配置参数
func parseFlags() string {
	var env string
	flag.StringVar(&env, "env", "", "加载 .env 文件，例如 --env=testing 将加载 .env.testing 文件")
	flag.Parse()
	return env
}

// setupApplication 初始化应用程序所需的各种组件
func setupApplication(ctx context.Context, env string) (routes.Dependencies, error) {
	// 先初始化配置
	config.InitConfig(env)

	// 然后初始化日志
	bootstrap.SetupLogger()

	// 初始化 Redis（限流存储为 redis 时）
	if err := bootstrap.SetupRedis(); err != nil {
		return routes.Dependencies{}, err
	}

	// 加载牌库，来源为 database 时同时初始化数据库
	cat, err := bootstrap.SetupCatalog(ctx)
	if err != nil {
		return routes.Dependencies{}, err
	}

	// 初始化远端解读服务客户端
	client, err := bootstrap.SetupReading()
	if err != nil {
		return routes.Dependencies{}, err
	}

	return routes.Dependencies{
		Context:  ctx,
		Catalog:  cat,
		Sessions: bootstrap.SetupSessions(ctx, cat, client),
		Reading:  client,
	}, nil
}

// setupServer 配置并返回 Gin 服务器实例
func setupServer(deps routes.Dependencies) *gin.Engine {
	// 设置 gin 为生产模式
	// 这样可以减少不必要的日志输出，提高性能
	gin.SetMode(gin.ReleaseMode)

	// 创建一个新的 Gin 引擎实例
	router := gin.New()

	// 设置路由
	bootstrap.SetupRoute(router, deps)

	return router
}

// start 启动服务器并处理优雅关闭
func (a *App) start() {
	// 创建系统信号监听器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("服务器正在启动，监听端口 %s\n", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号
	<-quit
	log.Println("正在关闭服务器...")

	// 创建一个带超时的上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := a.server.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭异常: %v", err)
	}

	// 停止会话回收和未完成的后台提交
	a.cancel()
	a.closeResources()
	_ = logger.Logger.Sync()

	log.Println("服务器已成功关闭")
}

// closeResources 关闭外部连接
func (a *App) closeResources() {
	if redis.Redis != nil {
		logger.LogIf(redis.Redis.Close())
	}
	if database.SQLDB != nil {
		logger.LogIf(database.SQLDB.Close())
	}
}
