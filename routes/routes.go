package routes

import (
	"net/http"
	"time"

	"lumora/handlers"
	"lumora/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the booking wizard.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.GET("/services", bh.GetServices)
		bookingGroup.GET("/availability", bh.GetAvailability)

		bookingGroup.POST("/session", bh.StartSession)
		bookingGroup.GET("/session/:sessionID", bh.GetSession)
		bookingGroup.PUT("/session/:sessionID/service", bh.SelectService)
		bookingGroup.PUT("/session/:sessionID/slot", bh.SelectSlot)
		bookingGroup.PUT("/session/:sessionID/back", bh.GoBack)
		bookingGroup.POST("/session/:sessionID/submit", bh.Submit)
		bookingGroup.DELETE("/session/:sessionID", bh.CancelSession)
	}
}

// RegisterInquiryRoutes sets up the maintenance-inquiry intake endpoint.
func RegisterInquiryRoutes(r *gin.Engine, ih *handlers.InquiryHandler) {
	r.POST("/api/inquiries", ih.Submit)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, ih *handlers.InquiryHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, bh)
	RegisterInquiryRoutes(r, ih)
}
