// File: lumora/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lumora/clients/calendar"
	"lumora/clients/email"
	"lumora/clients/video"
	"lumora/config"
	"lumora/database"
	inquiryRepo "lumora/database/repository/inquiry"
	"lumora/handlers"
	"lumora/middleware"
	"lumora/routes"
	"lumora/services/booking"
	"lumora/services/inquiry"
	"lumora/services/notification"
	"lumora/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.FirebaseInit()

	loc := config.BusinessLocation()
	grid := booking.NewGridFromConfig()

	// External collaborators. A missing or rejected credential disables the
	// collaborator; the affected flows degrade with typed errors instead of
	// crashing the server.
	ctx := context.Background()

	var calendarClient calendar.Client
	if c, err := calendar.NewGoogleClient(ctx,
		config.AppConfig.GoogleCredentialsFile,
		config.AppConfig.GoogleCalendarID,
		loc, logger,
	); err != nil {
		logger.Warn("calendar store unavailable, availability will be degraded", zap.Error(err))
	} else {
		calendarClient = c
	}

	var videoClient video.Client
	if v, err := video.NewZoomClient(ctx, video.Config{
		ClientID:     config.AppConfig.VideoClientID,
		ClientSecret: config.AppConfig.VideoClientSecret,
		AccountID:    config.AppConfig.VideoAccountID,
		TokenURL:     config.AppConfig.VideoTokenURL,
		APIBaseURL:   config.AppConfig.VideoAPIBaseURL,
	}); err != nil {
		logger.Warn("video provider unavailable, bookings will fail until configured", zap.Error(err))
	} else {
		videoClient = v
	}

	var emailClient email.Client
	if e, err := email.NewHTTPClient(
		config.AppConfig.EmailEndpoint,
		config.AppConfig.EmailAPIKey,
		config.AppConfig.EmailSender,
	); err != nil {
		logger.Warn("email endpoint unavailable, confirmations will not be sent", zap.Error(err))
	} else {
		emailClient = e
	}

	// Services.
	availabilityService := &booking.DefaultAvailabilityService{
		Calendar: calendarClient,
		Grid:     grid,
		Logger:   logger,
	}

	orchestrator := &booking.DefaultMeetingOrchestrator{
		Calendar:       calendarClient,
		Video:          videoClient,
		Location:       loc,
		DefaultMinutes: config.AppConfig.MeetingMinutes,
		Logger:         logger,
	}

	dispatcher := &notification.DefaultDispatcher{
		Email:         emailClient,
		Push:          utils.FCMClient,
		OperatorEmail: config.AppConfig.OperatorEmail,
		OperatorName:  config.AppConfig.OperatorName,
		OperatorTopic: config.AppConfig.OperatorFCMTopic,
		Location:      loc,
		Logger:        logger,
	}

	catalog := booking.NewStaticCatalog()
	sessionService := &booking.DefaultWizardSessionService{
		Cache:        utils.GetSessionCacheClient(),
		Catalog:      catalog,
		Grid:         grid,
		Orchestrator: orchestrator,
		Notifier:     dispatcher,
		Logger:       logger,
	}

	inquiryService := &inquiry.DefaultInquiryService{
		Repo:   inquiryRepo.NewMongoInquiryRepo(),
		Logger: logger,
	}

	// Handlers.
	bookingHandler := handlers.NewBookingHandler(sessionService, availabilityService, catalog, logger)
	inquiryHandler := handlers.NewInquiryHandler(inquiryService, logger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, bookingHandler, inquiryHandler)

	utils.StartHealthMonitor(utils.GetSessionCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
