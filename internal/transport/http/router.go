package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/order_queue/pkg/httpx"
)

// RouterOptions - параметры сборки роутера.
type RouterOptions struct {
	// ServiceName - имя сервиса для otelgin; пусто - без трейсинга HTTP.
	ServiceName string
	// Health - готовый набор проверок; nil - postgres + queue по сервису хендлера.
	Health *Health
	// Version - версия сборки в /health (если Health не задан).
	Version string
}

func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	if opts.ServiceName != "" {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	health := opts.Health
	if health == nil {
		health = NewHealth(opts.Version)
		health.Register("postgres", PingCheck(h.service.Ping))
		health.Register("queue", QueueCheck(h.service))
	}

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/health", health.handle)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		orders := api.Group("/orders")
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:id", h.getOrderByID)

		queue := api.Group("/queue")
		queue.POST("/process", h.processNext)
		queue.GET("/next", h.peekNext)
		queue.GET("/status", h.queueStatus)
		queue.GET("/messages", h.queueMessages)
	}

	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		writeError(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
