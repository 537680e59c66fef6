package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zoo_management/pkg/logger"
	"zoo_management/pkg/resources"
)

type RouterConfig struct {
	CORSAllowOrigins []string
}

func NewRouter(h *Handler, cfg RouterConfig, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		CORS(DefaultCORSConfig(cfg.CORSAllowOrigins)),
	)

	api := r.Group("/api")
	api.GET("/health", h.healthCheck)
	api.POST("/auth/register", h.register)
	api.POST("/auth/login", h.login)
	api.GET("/zoo-info", h.getZooInfo)
	api.GET("/dashboard/stats", h.getDashboardStats)
	api.POST("/events/:id/register", h.registerForEvent)

	for _, res := range resources.Registry {
		group := api.Group("/" + res.Path)
		group.GET("", h.listResource(res))
		if res.Path == "ticket-sales" {
			group.POST("", h.createTicketSale(res))
		} else {
			group.POST("", h.createResource(res))
		}
		if res.Updatable {
			group.PUT("/:id", h.updateResource(res))
		}
		if res.Deletable {
			group.DELETE("/:id", h.deleteResource(res))
		}
	}

	return r
}
