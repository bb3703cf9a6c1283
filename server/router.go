package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"

	"douyin-downloader-go/backend"
	"douyin-downloader-go/logger"
)

// VideoInfoSource 提供 fetch_one_video 原始 JSON
type VideoInfoSource interface {
	FetchOneVideoRaw(ctx context.Context, awemeID string) ([]byte, error)
}

// Handlers 两个代理接口共用的依赖
type Handlers struct {
	fileClient *resty.Client
	videoInfo  VideoInfoSource
}

// NewHandlers proxyTimeout 为 0 表示下载代理不设超时
func NewHandlers(videoInfo VideoInfoSource, proxyTimeout time.Duration) *Handlers {
	return &Handlers{
		fileClient: resty.New().
			SetHeader("User-Agent", backend.UserAgent).
			SetTimeout(proxyTimeout),
		videoInfo: videoInfo,
	}
}

// NewRouter 创建 gin 路由
func NewRouter(h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	api := router.Group("/api")
	api.Use(corsMiddleware(), methodGuard())
	{
		api.Any("/download", h.download)
		api.Any("/fetch_one_video", h.fetchOneVideo)
	}

	router.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return router
}

// corsMiddleware 完全开放跨域，带 Origin 的预检请求直接返回 200
func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:              []string{"Content-Type"},
		OptionsResponseStatusCode: http.StatusOK,
	})
}

// methodGuard 处理不带 Origin 的 OPTIONS 和 GET 以外的方法，并补全 CORS 响应头
func methodGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		switch c.Request.Method {
		case http.MethodOptions:
			c.AbortWithStatus(http.StatusOK)
		case http.MethodGet:
			c.Next()
		default:
			abortWithError(c, backend.NewAppError(backend.ErrorTypeMethodNotAllowed, "Method not allowed", nil))
		}
	}
}

func abortWithError(c *gin.Context, err *backend.AppError) {
	c.AbortWithStatusJSON(backend.HTTPStatus(err.Type), gin.H{"error": err.Message})
}

// requestLogger 用 logrus 记录每个请求
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithComponent("http").WithFields(map[string]interface{}{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}
