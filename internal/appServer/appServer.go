package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KadakWNL/crowd-connect/config"
	repository "github.com/KadakWNL/crowd-connect/internal/database/postgres"
	rediscache "github.com/KadakWNL/crowd-connect/internal/database/redis"
	"github.com/KadakWNL/crowd-connect/internal/service"
	"github.com/KadakWNL/crowd-connect/internal/transport"
	"github.com/KadakWNL/crowd-connect/internal/worker"

	"github.com/KadakWNL/crowd-connect/pkg/postgres"
	"github.com/KadakWNL/crowd-connect/pkg/redis"
	"github.com/KadakWNL/crowd-connect/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	// Initialize listing cache
	var listingCache service.ListingCache
	if cfg.Redis.Host != "" {
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()
		listingCache = rediscache.NewCacheRepository(redisClient, cfg.App.ListingCacheTTL)
		logrus.Info("Event listing cache initialized")
	} else {
		logrus.Warn("Redis host not provided, listing cache disabled")
	}

	// Initialize token manager
	tokens, err := token.NewManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		logrus.Fatalf("Failed to initialize token manager: %v", err)
	}

	// Initialize services
	eventService := service.NewEventService(eventRepo, userRepo, attendanceRepo, listingCache)
	attendanceService := service.NewAttendanceService(attendanceRepo, eventRepo, userRepo, listingCache)
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, tokens, cfg.App.BcryptCost)

	// Initialize purge worker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	purgeInterval := cfg.Worker.PurgeInterval
	if purgeInterval <= 0 {
		purgeInterval = time.Minute
	}
	purgeWorker := worker.NewEventPurgeWorker(eventService, purgeInterval)
	go purgeWorker.Start(ctx)
	logrus.Info("Purge worker started")

	// Initialize handlers
	eventHandler := transport.NewEventHandler(eventService, attendanceService)
	userHandler := transport.NewUserHandler(userService, attendanceService)
	authHandler := transport.NewAuthHandler(authService)

	// Setup HTTP server
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(eventHandler, userHandler, authHandler, tokens)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
