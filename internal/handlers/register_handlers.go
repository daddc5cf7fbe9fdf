package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/MaxTecnology/rede-trade-back/internal/core/ports/services"
	"github.com/MaxTecnology/rede-trade-back/internal/middleware"
	"github.com/MaxTecnology/rede-trade-back/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, services.User)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Every v1 route requires a valid token and a non-blocked user
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.BlockedUserMiddleware(services.User),
	)

	registerUserRoutes(v1, services.User)
	registerAccountRoutes(v1, services.Account, services.User)
	RegisterTransactionRoutes(v1, services.Transaction)
	registerCreditRequestRoutes(v1, services.CreditRequest)
	registerBillingRoutes(v1, services.Billing)
	registerVoucherRoutes(v1, services.Voucher)
	registerReportingRoutes(v1, services.Reporting, services.User)
}
