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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/gallery/internal/config"
	"github.com/Skotchmaster/gallery/internal/db"
	"github.com/Skotchmaster/gallery/internal/httpserver"
	"github.com/Skotchmaster/gallery/internal/logging"
	loggingmw "github.com/Skotchmaster/gallery/internal/middleware/logging"
	"github.com/Skotchmaster/gallery/internal/mykafka"
	"github.com/Skotchmaster/gallery/internal/repo"
	"github.com/Skotchmaster/gallery/internal/service"
	"github.com/Skotchmaster/gallery/internal/session"
	"github.com/Skotchmaster/gallery/internal/uploads"
)

func main() {
	cfg := config.LoadConfig()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}

	store := &repo.GormRepo{DB: gdb}
	err = store.Initialize(ctx)
	cancel()
	if err != nil {
		log.Fatalf("db initialize: %v", err)
	}

	files, err := uploads.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("uploads: %v", err)
	}

	svc := &service.GalleryService{Repo: store}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		svc.Events = producer
	} else {
		logger.Info("kafka disabled, domain events are not published")
	}

	gate := session.NewManager(store, cfg.SessionSecret, cfg.SessionTTL)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go sweepSessions(sweepCtx, gate, time.Minute)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		GalleryHandler: &httpserver.GalleryHTTP{Svc: svc, Uploads: files},
		AuthHandler:    &httpserver.AuthHTTP{Gate: gate, SecureCookies: cfg.SecureCookies},
		DB:             gdb,
		UploadDir:      cfg.UploadDir,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("gallery listening", "addr", srv.Addr)
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
	stopSweep()

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka producer close failed", "error", err)
		}
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("gallery stopped")
}

func sweepSessions(ctx context.Context, gate *session.Manager, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := gate.Sweep(); n > 0 {
				slog.Debug("expired sessions dropped", "count", n)
			}
		}
	}
}
