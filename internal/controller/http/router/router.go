package router

import (
	"github.com/Freeeeeet/slot_swapper/internal/controller/http/handler"
	"github.com/Freeeeeet/slot_swapper/internal/controller/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Deps struct {
	Slots    handler.SlotService
	Exchange handler.ExchangeService
	DB       handler.Pinger
	Tokens   middleware.TokenParser
	Logger   *zap.Logger
}

// New собирает gin.Engine со всеми маршрутами API
func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
	)
	SetupRoutes(r, deps)
	return r
}

func SetupRoutes(r *gin.Engine, deps Deps) {
	health := handler.NewHealthHandler(deps.DB, deps.Logger)
	r.GET("/", health.Root)
	r.GET("/api/health", health.Health)
	r.GET("/api/health/db", health.Database)

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(deps.Tokens))
	{
		slots := handler.NewSlotHandler(deps.Slots, deps.Logger)
		EventRouter(api.Group("/events"), slots)
		api.GET("/events.ics", slots.Calendar)
		api.GET("/swappable-slots", slots.Swappable)

		swaps := handler.NewSwapHandler(deps.Exchange, deps.Logger)
		SwapRouter(api, swaps)
	}
}

func EventRouter(rg *gin.RouterGroup, h *handler.SlotHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

func SwapRouter(rg *gin.RouterGroup, h *handler.SwapHandler) {
	rg.POST("/swap-request", h.Request)
	rg.POST("/swap-response/:requestId", h.Respond)
	rg.GET("/swap-requests/incoming", h.Incoming)
	rg.GET("/swap-requests/outgoing", h.Outgoing)
}
