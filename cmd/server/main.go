package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"runway-tickets/config"
	"runway-tickets/internal/cache"
	"runway-tickets/internal/database"
	"runway-tickets/internal/handler"
	"runway-tickets/internal/identity"
	"runway-tickets/internal/metrics"
	"runway-tickets/internal/payment"
	"runway-tickets/internal/queue"
	"runway-tickets/internal/repository"
	"runway-tickets/internal/service"
	"runway-tickets/internal/worker"
	"runway-tickets/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		logger.WithComponent("main").Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}

func run() error {
	log := logger.WithComponent("main")

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		log.Warn("invalid LOG_LEVEL, keeping info", zap.String("level", cfg.Log.Level))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return fmt.Errorf("initialize redis: %w", err)
	}
	defer rdb.Close()

	notifications, closeQueue, err := newNotificationQueue(ctx, cfg.Notify, rdb)
	if err != nil {
		return fmt.Errorf("initialize notification queue: %w", err)
	}
	defer closeQueue.Close()

	showCache := cache.NewRedisShowCache(rdb, cache.DefaultPublishedShowsTTL)
	dedup := cache.NewRedisEventDeduplicator(rdb, cache.DefaultProcessedEventTTL)

	showRepository := repository.NewShowRepository(pool)
	ticketTypeRepository := repository.NewTicketTypeRepository(pool)
	ticketRepository := repository.NewTicketRepository(pool)
	userRepository := repository.NewUserRepository(pool)
	videoRepository := repository.NewVideoRepository(pool)
	statsRepository := repository.NewStatsRepository(pool)

	showService := service.NewShowService(pool, showRepository, ticketTypeRepository, showCache)
	ticketTypeService := service.NewTicketTypeService(ticketTypeRepository, showRepository, showCache)
	videoService := service.NewVideoService(videoRepository)
	statsService := service.NewStatsService(statsRepository, ticketRepository)
	userService := service.NewUserService(userRepository, identity.NewClient(cfg.Identity.URL, cfg.Identity.AnonKey))
	checkoutService := service.NewCheckoutService(
		payment.NewStripeCheckoutGateway(cfg.Stripe.SecretKey, cfg.Stripe.Currency),
		showRepository,
		ticketTypeRepository,
		cfg.Server.PublicURL,
	)
	fulfillmentService := service.NewFulfillmentService(pool, ticketRepository, ticketTypeRepository, showRepository, notifications, showCache)
	webhookService := service.NewWebhookService(payment.NewStripeEventVerifier(cfg.Stripe.WebhookSecret), fulfillmentService, dedup)

	var adminGuard gin.HandlerFunc
	if cfg.Server.AdminAuthRequired {
		verifier, err := identity.NewJWTVerifier(cfg.Identity.JWTPublicKey, cfg.Identity.JWTSecret)
		if err != nil {
			return fmt.Errorf("initialize token verifier: %w", err)
		}
		adminGuard = handler.RequireAdmin(verifier, userService)
	} else {
		log.Warn("admin routes are not protected, set ADMIN_AUTH_REQUIRED=true in production")
	}

	router := gin.New()
	router.Use(gin.Recovery(), handler.RequestLogger(), metrics.Middleware())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handler.NewHealthHandler(map[string]handler.HealthCheck{
		"postgres": pool.Ping,
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}).RegisterRoutes(router)
	handler.NewCatalogHandler(showService, videoService).RegisterRoutes(router)
	handler.NewCheckoutHandler(checkoutService, fulfillmentService).RegisterRoutes(router)
	handler.NewWebhookHandler(webhookService).RegisterRoutes(router)
	handler.NewAuthHandler(userService, cfg.Server.PublicURL, cfg.Identity.VerifierCookie).RegisterRoutes(router)
	handler.NewAdminHandler(showService, ticketTypeService, statsService).RegisterRoutes(router, adminGuard)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return worker.NewNotificationWorker(worker.LogSender{}, notifications).Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newNotificationQueue 依 NOTIFY_BACKEND 建立通知隊列，回傳的 io.Closer 於結束時釋放連線
func newNotificationQueue(ctx context.Context, cfg config.NotifyConfig, rdb *redis.Client) (queue.NotificationQueue, io.Closer, error) {
	switch cfg.Backend {
	case "redis":
		q, err := queue.NewRedisStreamNotificationQueue(ctx, rdb, "", nil)
		return q, nopCloser{}, err
	case "amqp":
		q, err := queue.NewAMQPNotificationQueue(cfg.AMQPURL)
		if err != nil {
			return nil, nil, err
		}
		return q, q, nil
	case "memory":
		return queue.NewMemoryNotificationQueue(100), nopCloser{}, nil
	default:
		return queue.NoopNotificationQueue{}, nopCloser{}, nil
	}
}
