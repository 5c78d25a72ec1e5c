// File: skillbridge/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillbridge/config"
	"skillbridge/database"
	businessRepoPkg "skillbridge/database/repository/business"
	jobseekerRepoPkg "skillbridge/database/repository/jobseeker"
	"skillbridge/handlers"
	"skillbridge/middleware"
	"skillbridge/routes"
	"skillbridge/services/business"
	"skillbridge/services/gateway"
	"skillbridge/services/jobseeker"
	"skillbridge/services/notification"
	"skillbridge/services/storage"
	"skillbridge/services/wizard"
	"skillbridge/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	cfg := config.AppConfig

	var storageService storage.Service
	if cfg.CloudinaryCloudName != "" {
		svc, err := storage.NewCloudinaryService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
		}
		storageService = svc
	} else {
		logger.Sugar().Warn("main: cloudinary not configured, using in-memory storage")
		storageService = storage.NewMemoryService()
	}

	var mailer notification.Mailer
	if cfg.AWSRegion != "" && cfg.EmailSender != "" {
		m, err := notification.NewSESMailer(context.Background(), cfg.AWSRegion, cfg.EmailSender)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize SES mailer: %v", err)
		}
		mailer = m
	} else {
		logger.Sugar().Warn("main: SES not configured, OTP codes will only be logged")
		mailer = notification.LogMailer{}
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	jsRepo := jobseekerRepoPkg.NewMongoJobSeekerRepo()
	bizRepo := businessRepoPkg.NewMongoBusinessRepo()

	// shared stores.
	otpStore := utils.NewOTPStore(utils.GetOTPCacheClient(), utils.OTPTTL)
	tokenStore := utils.NewTokenStore(utils.GetAuthCacheClient(), utils.AuthTokenTTL)
	sessionStore := wizard.NewRedisSessionStore(utils.GetWizardCacheClient(), utils.WizardSessionTTL)

	// services.
	jobSeekerService := &jobseeker.DefaultJobSeekerService{
		Repo:    jsRepo,
		OTP:     otpStore,
		Tokens:  tokenStore,
		Mailer:  mailer,
		Storage: storageService,
	}
	businessService := &business.DefaultBusinessService{
		Repo:    bizRepo,
		OTP:     otpStore,
		Tokens:  tokenStore,
		Mailer:  mailer,
		Storage: storageService,
	}

	authGateway := gateway.NewAuthGateway(jobSeekerService, businessService)
	wizardEngine := wizard.NewEngine(sessionStore, authGateway, storageService)

	wizardHandler := handlers.NewWizardHandler(wizardEngine)
	jobSeekerHandler := handlers.NewJobSeekerHandler(jobSeekerService)
	businessHandler := handlers.NewBusinessHandler(businessService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Tokens: tokenStore,

		// Signup wizard endpoints.
		StartSessionHandler:        wizardHandler.StartSessionHandler,
		GetSessionHandler:          wizardHandler.GetSessionHandler,
		AdvanceHandler:             wizardHandler.AdvanceHandler,
		RetreatHandler:             wizardHandler.RetreatHandler,
		SubmitHandler:              wizardHandler.SubmitHandler,
		AttachHandler:              wizardHandler.AttachHandler,
		DetachHandler:              wizardHandler.DetachHandler,
		AddEducationRowHandler:     wizardHandler.AddEducationRowHandler,
		UpdateEducationRowHandler:  wizardHandler.UpdateEducationRowHandler,
		RemoveEducationRowHandler:  wizardHandler.RemoveEducationRowHandler,
		AddExperienceRowHandler:    wizardHandler.AddExperienceRowHandler,
		UpdateExperienceRowHandler: wizardHandler.UpdateExperienceRowHandler,
		RemoveExperienceRowHandler: wizardHandler.RemoveExperienceRowHandler,
		SetFresherHandler:          wizardHandler.SetFresherHandler,

		// Job-seeker endpoints.
		JobSeekerSendEmailOTPHandler:  jobSeekerHandler.SendEmailOTPHandler,
		JobSeekerVerifyEmailHandler:   jobSeekerHandler.VerifyEmailOTPHandler,
		JobSeekerRegisterHandler:      jobSeekerHandler.RegisterHandler,
		JobSeekerLoginHandler:         jobSeekerHandler.LoginHandler,
		JobSeekerResetPasswordHandler: jobSeekerHandler.ResetPasswordHandler,
		JobSeekerGetProfileHandler:    jobSeekerHandler.GetProfileHandler,
		JobSeekerUpdateProfileHandler: jobSeekerHandler.UpdateProfileHandler,
		JobSeekerDeleteHandler:        jobSeekerHandler.DeleteAccountHandler,
		JobSeekerLogoutHandler:        jobSeekerHandler.LogoutHandler,

		// Business endpoints.
		BusinessSendEmailOTPHandler:  businessHandler.SendEmailOTPHandler,
		BusinessVerifyEmailHandler:   businessHandler.VerifyEmailOTPHandler,
		BusinessRegisterHandler:      businessHandler.RegisterHandler,
		BusinessLoginHandler:         businessHandler.LoginHandler,
		BusinessResetPasswordHandler: businessHandler.ResetPasswordHandler,
		BusinessGetProfileHandler:    businessHandler.GetProfileHandler,
		BusinessUpdateProfileHandler: businessHandler.UpdateProfileHandler,
		BusinessDeleteHandler:        businessHandler.DeleteAccountHandler,
		BusinessLogoutHandler:        businessHandler.LogoutHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background health monitoring of Mongo and the logical Redis DBs.
	utils.StartHealthMonitor(map[string]*redis.Client{
		"cache":  utils.GetCacheClient(),
		"auth":   utils.GetAuthCacheClient(),
		"otp":    utils.GetOTPCacheClient(),
		"wizard": utils.GetWizardCacheClient(),
	}, database.MongoClient, time.Duration(cfg.HealthCheckIntervalSec)*time.Second)

	// Start the HTTP server.
	port := cfg.AppPort
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
