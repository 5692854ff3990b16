package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/coffee_shop/internal/events"
	"github.com/Skotchmaster/coffee_shop/internal/httpserver"
	"github.com/Skotchmaster/coffee_shop/internal/repo"
	"github.com/Skotchmaster/coffee_shop/internal/search"
	"github.com/Skotchmaster/coffee_shop/internal/service"
	"github.com/Skotchmaster/coffee_shop/internal/storage"
	"github.com/Skotchmaster/coffee_shop/pkg/config"
	pkgdb "github.com/Skotchmaster/coffee_shop/pkg/db"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
	authmw "github.com/Skotchmaster/coffee_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/coffee_shop/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/coffee_shop/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	cfg.MustValid()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}
	if err := gormRepo.Migrate(ctx); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}

	authSvc := &service.AuthService{Repo: gormRepo, JWTSecret: cfg.JWTAccessSecret, AccessTTL: cfg.AccessTTL}
	if err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		cancel()
		log.Fatalf("bootstrap admin: %v", err)
	}

	var publisher service.EventPublisher
	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		if err := events.EnsureTopic(ctx, cfg.KafkaBrokers[0], cfg.KafkaTopic, 1); err != nil {
			logger.Warn("kafka_topic_error", "topic", cfg.KafkaTopic, "error", err)
		}
		producer, err = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			cancel()
			log.Fatalf("kafka producer: %v", err)
		}
		publisher = producer
	} else {
		logger.Info("kafka disabled, events are not published")
	}

	menuSvc := &service.MenuService{Repo: gormRepo}
	if cfg.ESURL != "" {
		es, err := search.NewClient(ctx, search.ClientConfig{URL: cfg.ESURL, Username: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			logger.Warn("elasticsearch_unavailable", "reason", "menu search falls back to database", "error", err)
		} else {
			menuSvc.Index = &search.MenuIndex{ES: es, Index: cfg.ESIndex}
		}
	}
	cancel()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit("10M"))
	if cfg.CSRFEnabled {
		csrfCfg := csrf.DefaultConfig()
		csrfCfg.SessionCookie = authmw.AccessCookie
		csrfCfg.Secure = cfg.CookieSecure
		e.Use(csrf.Middleware(csrfCfg))
	}

	httpserver.Register(e, &httpserver.Deps{
		DB:         db,
		JWTSecret:  cfg.JWTAccessSecret,
		UploadsDir: cfg.UploadsDir,
		Orders:     &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: gormRepo, Events: publisher}},
		Payments:   &httpserver.PaymentHTTP{Svc: &service.PaymentService{Repo: gormRepo, Events: publisher}},
		Menu:       &httpserver.MenuHTTP{Svc: menuSvc},
		Vouchers:   &httpserver.VoucherHTTP{Svc: &service.VoucherService{Repo: gormRepo}},
		Auth:       &httpserver.AuthHTTP{Svc: authSvc},
		Uploads:    &httpserver.UploadHTTP{Store: storage.NewFSStore(cfg.UploadsDir, cfg.PublicBaseURL)},
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka_close_error", "error", err)
		}
	}
	_ = pkgdb.Close(db)

	logger.Info("server stopped")
}
