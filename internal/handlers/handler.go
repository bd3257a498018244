package handlers

import (
	"net/http"

	_ "cnc_simulator/docs"
	"cnc_simulator/internal/logger"
	"cnc_simulator/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  http.Handler
}

// NewHandler constructs the HTTP handler. metrics may be nil, in which case
// /metrics is not served.
func NewHandler(services *service.Service, log *logger.Logger, metrics http.Handler) *Handler {
	return &Handler{services: services, log: log, metrics: metrics}
}

// InitRoutes builds the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// snapshot stream on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

// Reads are public; anything that changes the machine or exposes the event
// log needs a bearer token.
func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	machine := api.Group("/machine")
	{
		machine.GET("/snapshot", h.getSnapshot)
		machine.GET("/info", h.getInfo)
		machine.GET("/units", h.getUnits)
	}

	commands := api.Group("/machine", h.userIdMiddleware)
	{
		commands.POST("/emergency-stop", h.emergencyStop)
		commands.POST("/tool-change", h.changeTool)
		commands.POST("/production/reset", h.resetProduction)
		commands.POST("/feed-override", h.setFeedOverride)
		commands.POST("/state", h.setState)
	}

	logs := api.Group("/logs", h.userIdMiddleware)
	{
		logs.GET("", h.getLogs)
	}
}
