package api

import (
	"log"
	stdhttp "net/http"

	intconfig "backoffice/internal/config"
	h "backoffice/internal/http/handlers"
	"backoffice/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login(env.JWTSecret))

		bookings := api.Group("/bookings")
		bookings.Use(middleware.RequireAuth(env.JWTSecret))
		{
			// Draft lifecycle
			bookings.GET("", h.ListBookings)
			bookings.POST("", h.CreateBooking)
			bookings.PUT("/:id", h.UpdateBooking)
			bookings.POST("/:id/approve", h.ApproveBooking)
			bookings.DELETE("/:id/reject", h.RejectBooking)

			// Live bookings and ledger
			bookings.GET("/approved", h.ListApprovedBookings)
			bookings.GET("/approved/:id", h.GetApprovedBooking)
			bookings.PUT("/approved/:id", h.UpdateApprovedBooking)
			bookings.GET("/approved/:id/statement", h.GetFolderStatementPDF)
			bookings.POST("/:id/transaction", h.RecordTransaction)
			bookings.POST("/:id/supplier-payment", h.RecordSupplierPayment)
			bookings.POST("/:id/settle", h.SettleBooking)
		}
	}

	return r
}
