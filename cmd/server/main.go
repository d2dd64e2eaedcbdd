package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/database"
	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/logging"
	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/router"
	"github.com/iliyamo/hotel-booking/internal/service"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

func main() {
	_ = godotenv.Load(".env") // optional; real deployments set the environment directly

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	db, err := database.Open(ctx, database.Settings{
		User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	// Redis only backs the rate limiter; without it requests are not limited.
	rdb, err := config.NewRedisClient(ctx)
	if err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	var events service.EventPublisher = queue.NopPublisher{}
	if cfg.RabbitURL != "" {
		pub := queue.NewPublisher(cfg.RabbitURL, logger)
		defer pub.Close()
		events = pub

		consumer := queue.NewConsumer(cfg.RabbitURL, cfg.BookingLogDir, logger)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("booking event consumer stopped", zap.Error(err))
			}
		}()
	} else {
		logger.Info("RABBITMQ_URL not set, booking events disabled")
	}

	// Stores
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	hotelRepo := repository.NewHotelRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	// Services
	hasher := utils.NewBcryptHasher(cfg.BcryptCost)
	users := service.NewUserService(userRepo, hasher, logger.Named("users"))
	auth := service.NewAuthService(users, tokenRepo, hasher, service.AuthConfig{
		Secret:         cfg.JWTSecret,
		AccessTTLMin:   cfg.AccessTTLMin,
		RefreshTTLDays: cfg.RefreshTTLDays,
	})
	hotels := service.NewHotelService(hotelRepo)
	rooms := service.NewRoomService(roomRepo, hotels)
	bookings := service.NewBookingService(bookingRepo, roomRepo, events, logger)
	payments := service.NewPaymentService(paymentRepo, bookings, service.MockGateway{})
	search := service.NewSearchService(hotelRepo)

	// HTTP
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	hotelH := handler.NewHotelHandler(hotels, logger)
	roomH := handler.NewRoomHandler(rooms, logger)

	router.RegisterRoutes(e, db, logger)
	router.RegisterAuth(e, handler.NewAuthHandler(auth, users, logger), cfg.JWTSecret,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, logger))
	router.RegisterUsers(e, handler.NewUserHandler(users, logger), cfg.JWTSecret)
	router.RegisterPublic(e, hotelH, roomH, handler.NewSearchHandler(search, logger))
	router.RegisterOwner(e, hotelH, roomH, cfg.JWTSecret)
	router.RegisterCustomer(e,
		handler.NewBookingHandler(bookings, logger),
		handler.NewPaymentHandler(payments, logger),
		cfg.JWTSecret)

	addr := ":" + cfg.Port
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
