package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"smatching/config"
	"smatching/cron"
	"smatching/database"
	condRepoPkg "smatching/database/repository/condition"
	noticeRepoPkg "smatching/database/repository/notice"
	notifRepoPkg "smatching/database/repository/notification"
	scrapRepoPkg "smatching/database/repository/scrap"
	userRepoPkg "smatching/database/repository/user"
	"smatching/handlers"
	"smatching/routes"
	"smatching/services/alert"
	"smatching/services/condition"
	"smatching/services/matching"
	"smatching/services/notice"
	"smatching/services/notification"
	"smatching/services/storage"
	"smatching/services/user"
	"smatching/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.FirebaseInit()

	storageService, err := storage.NewCloudinaryStorageService(config.AppConfig.CloudinaryURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Repositories.
	condRepo := condRepoPkg.NewMongoConditionRepo()
	noticeRepo := noticeRepoPkg.NewMongoNoticeRepo()
	scrapRepo := scrapRepoPkg.NewMongoScrapRepo()
	notifRepo := notifRepoPkg.NewMongoNotificationRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// Services.
	pushQueue := cron.NewPushQueueClient()
	defer pushQueue.Close()

	notificationService := notification.NewDefaultNotificationService(notifRepo, userRepo, pushQueue)
	alertService := alert.NewDefaultAlertService(condRepo, userRepo)
	matchService := &matching.DefaultMatchService{
		CondRepo:   condRepo,
		NoticeRepo: noticeRepo,
	}
	conditionService := &condition.DefaultConditionService{
		CondRepo: condRepo,
		UserRepo: userRepo,
		Matcher:  matchService,
		Alerts:   alertService,
	}
	noticeService := &notice.DefaultNoticeService{
		NoticeRepo: noticeRepo,
		ScrapRepo:  scrapRepo,
		Matcher:    matchService,
	}
	adminNoticeService := &notice.DefaultAdminNoticeService{
		NoticeRepo: noticeRepo,
		CondRepo:   condRepo,
		Sink:       notificationService,
	}
	scanService := &notice.DefaultScanService{
		NoticeRepo: noticeRepo,
		ScrapRepo:  scrapRepo,
		Sink:       notificationService,
	}
	userService := &user.DefaultUserService{
		Repo:      userRepo,
		CondRepo:  condRepo,
		NotifRepo: notifRepo,
		Storage:   storageService,
	}

	// Background workers.
	pushWorker := cron.NewPushWorker(notificationService)
	pushWorker.Start()
	defer pushWorker.Stop()

	scheduler, err := cron.NewScheduler(scanService)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize scan scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Handlers and routes.
	handlerBundle := &routes.HandlerBundle{
		Users:      handlers.NewUserHandler(userService, alertService),
		Conditions: handlers.NewConditionHandler(conditionService, alertService, matchService, noticeService),
		Notices:    handlers.NewNoticeHandler(noticeService),
		Admin:      handlers.NewAdminHandler(adminNoticeService, scanService),
	}
	routes.RegisterRoutes(router, handlerBundle)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
