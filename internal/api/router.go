package api

import (
	"github.com/AgentTarik/pizzeria-api/internal/auth"
	"github.com/AgentTarik/pizzeria-api/internal/config"
	"github.com/AgentTarik/pizzeria-api/telemetry"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes mounts the public and staff routes. Staff routes are skipped
// when ah is nil, i.e. when no JWT secret is configured.
func SetupRoutes(r *gin.Engine, h *Handlers, ah *AuthHandlers, jwtCfg config.JWT) {
	v1 := r.Group("/v1")
	{
		v1.POST("/orders/:id/pix", h.GeneratePix)

		v1.GET("/store/status", h.StoreStatus)
		v1.GET("/store/hours", h.StoreHours)
	}

	if ah != nil {
		v1.POST("/auth/login", ah.Login)

		admin := v1.Group("/admin", auth.RequireRole(jwtCfg, auth.RoleAdmin))
		{
			admin.PUT("/hours/:day", h.UpdateHour)
			admin.POST("/closures", h.AddClosure)
			admin.DELETE("/closures/:date", h.RemoveClosure)
			admin.GET("/settings", h.GetSettings)
			admin.PUT("/settings", h.UpdateSettings)
			admin.GET("/payment-events", h.PaymentEvents)
		}
	}

	r.GET("/health", h.Health)
	r.GET("/metrics", telemetry.MetricsHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
