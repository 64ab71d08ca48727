package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/handlers"
)

// SetupRoutes wires the transaction API, the mock payment endpoints and the
// static file fallback. Static-segment routes (/api/..., /health, /metrics)
// take priority over the :id parameter route in Echo's router.
func SetupRoutes(e *echo.Echo, h *handlers.TransactionHandler, static *handlers.StaticHandler) {
	// Transaction API
	e.POST("/", h.CreateTransaction)
	e.PUT("/:id/status", h.UpdateTransactionStatus)
	e.GET("/:id", h.GetTransaction)

	// Mock payment outcome endpoints
	e.GET("/api/success", handlers.PaymentSuccess)
	e.GET("/api/failure", handlers.PaymentFailure)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Everything else is a demo UI asset.
	e.GET("/", static.Serve)
	e.GET("/*", static.Serve)
}
