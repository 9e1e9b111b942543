package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calmwave/config"
	"calmwave/cron"
	"calmwave/database"
	articleRepo "calmwave/database/repository/article"
	bookingRepo "calmwave/database/repository/booking"
	chatRepo "calmwave/database/repository/chat"
	checkinRepo "calmwave/database/repository/checkin"
	userRepoPkg "calmwave/database/repository/user"
	"calmwave/handlers"
	"calmwave/middleware"
	"calmwave/routes"
	"calmwave/services/analytics"
	"calmwave/services/article"
	"calmwave/services/booking"
	"calmwave/services/chat"
	"calmwave/services/checkin"
	"calmwave/services/notification"
	"calmwave/services/realtime"
	"calmwave/services/storage"
	"calmwave/services/tasks"
	"calmwave/services/user"
	"calmwave/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer utils.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := utils.RegisterValidations(); err != nil {
		logger.Fatal("main: failed to register validators", zap.Error(err))
	}

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	mongoClient, db, err := database.InitDB(rootCtx)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	redisClients, err := utils.InitRedis()
	if err != nil {
		logger.Fatal("main: failed to connect to Redis", zap.Error(err))
	}
	fb, err := utils.FirebaseInit(rootCtx)
	if err != nil {
		logger.Fatal("main: failed to initialize Firebase", zap.Error(err))
	}
	storageService, err := storage.NewFirebaseStorageService(rootCtx, config.AppConfig.FirebaseCredentials, config.AppConfig.FirebaseBucket)
	if err != nil {
		logger.Fatal("main: failed to initialize Firebase storage", zap.Error(err))
	}

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo(db)
	checkins := checkinRepo.NewMongoCheckInRepo(db)
	bookings := bookingRepo.NewMongoBookingRepo(db)
	chats := chatRepo.NewMongoChatRepo(db)
	articles := articleRepo.NewMongoArticleRepo(db)

	// realtime and background delivery.
	hub := realtime.NewHub()
	queueClient := asynq.NewClient(cron.RedisOpt())
	dispatcher := tasks.NewDispatcher(queueClient)

	notificationService, err := notification.NewDefaultNotificationService(userRepo, fb.Messaging)
	if err != nil {
		logger.Fatal("main: failed to build notification service", zap.Error(err))
	}
	worker, err := cron.InitNotificationWorker(notificationService)
	if err != nil {
		logger.Fatal("main: failed to start notification worker", zap.Error(err))
	}

	// services.
	userService := &user.DefaultUserService{
		Repo:    userRepo,
		Auth:    fb.Auth,
		Storage: storageService,
	}

	streakMode := analytics.StreakSinceTrigger
	if config.AppConfig.StreakCountLeading {
		streakMode = analytics.StreakIncludeLeading
	}
	checkInService := &checkin.DefaultCheckInService{
		Repo:       checkins,
		Publisher:  hub,
		Window:     config.AppConfig.DashboardWindow,
		StreakMode: streakMode,
	}

	bookingService := &booking.DefaultBookingSessionService{
		Repo:         bookings,
		Users:        userRepo,
		Policy:       booking.PolicyFor(config.AppConfig.BookingStrictTransitions),
		Notifier:     dispatcher,
		Publisher:    hub,
		RatingCache:  &utils.RedisCache{Client: redisClients.Cache, Prefix: utils.RatingCachePrefix},
		RatingTTL:    config.AppConfig.RatingCacheTTL,
		ReminderLead: config.AppConfig.ReminderLead,
	}

	chatService := &chat.DefaultChatService{Repo: chats, Publisher: hub}
	articleService := &article.DefaultArticleService{Repo: articles, Storage: storageService, Publisher: hub}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AuthMiddleware: middleware.FirebaseAuthMiddleware(
			fb.Auth,
			userRepo,
			&utils.RedisCache{Client: redisClients.Auth, Prefix: utils.AuthCachePrefix},
		),
		Auth:     handlers.NewAuthHandler(userService),
		Users:    handlers.NewUserHandler(userService),
		CheckIns: handlers.NewCheckInHandler(checkInService),
		Bookings: handlers.NewBookingHandler(bookingService),
		Chat:     handlers.NewChatHandler(chatService),
		Articles: handlers.NewArticleHandler(articleService),
		Storage:  handlers.NewStorageHandler(storageService),
		Stream:   handlers.NewStreamHandler(hub, utils.NewTicketIssuer(config.AppConfig.JWTSecret, utils.StreamTicketTTL)),
	}

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(config.AppConfig.TrustedProxies); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.MaxRequestsPerMin)

	utils.StartHealthMonitor(rootCtx, []*redis.Client{redisClients.Cache, redisClients.Auth}, mongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
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
	// Closing the hub ends open websocket streams.
	hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	stopBackground()
	worker.Shutdown()
	if err := queueClient.Close(); err != nil {
		logger.Warn("main: failed to close task client", zap.Error(err))
	}
	if err := storageService.Close(); err != nil {
		logger.Warn("main: failed to close storage client", zap.Error(err))
	}
	for _, c := range []*redis.Client{redisClients.Cache, redisClients.Auth} {
		_ = c.Close()
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
