package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"pieceJobBack/internal/config"
	"pieceJobBack/internal/geo"
	"pieceJobBack/internal/handlers"
	"pieceJobBack/internal/notify"
	"pieceJobBack/internal/repositories"
	"pieceJobBack/internal/safety"
	"pieceJobBack/internal/services"
	"pieceJobBack/internal/ws"
	"pieceJobBack/utils"
)

const safetyEventBuffer = 256

// deps are the optional external clients. Any of them may be nil.
type deps struct {
	db       *sql.DB
	rdb      *redis.Client
	fcm      *messaging.Client
	uploader *utils.Uploader
}

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config

	registry  *repositories.Registry
	monitor   *safety.Monitor
	events    *notify.Async
	hub       *ws.Hub
	tokens    *utils.Manager
	retention *services.RetentionService

	jobHandler          *handlers.JobHandler
	bidHandler          *handlers.BidHandler
	providerHandler     *handlers.ProviderHandler
	reviewHandler       *handlers.ReviewHandler
	messageHandler      *handlers.MessageHandler
	notificationHandler *handlers.NotificationHandler
	safetyHandler       *handlers.SafetyHandler
	historyHandler      *handlers.HistoryHandler
}

// appLogger adapts the two std loggers to the Infof/Errorf interface the
// packages expect.
type appLogger struct {
	info *log.Logger
	err  *log.Logger
}

func (l appLogger) Infof(format string, args ...interface{}) {
	l.info.Output(2, fmt.Sprintf(format, args...))
}

func (l appLogger) Errorf(format string, args ...interface{}) {
	l.err.Output(2, fmt.Sprintf(format, args...))
}

func initializeApp(ctx context.Context, cfg config.Config, d deps, errorLog, infoLog *log.Logger) (*application, error) {
	logger := appLogger{info: infoLog, err: errorLog}
	now := time.Now

	// Registry
	registry := repositories.NewRegistry()
	if cfg.SeedDemoData {
		if err := repositories.Seed(registry, now()); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		infoLog.Printf("Seeded demo providers and jobs")
	}

	// Realtime + safety event fan-out
	hub := ws.NewHub("safety", logger)
	sinks := notify.Multi{
		notify.InboxSink{Store: registry},
		notify.WSSink{Hub: hub},
		notify.MetricsSink{},
	}
	if d.fcm != nil {
		sinks = append(sinks, notify.FCMSink{Client: d.fcm, Logger: logger, Timeout: 10 * time.Second})
	}
	events := notify.NewAsync(sinks, safetyEventBuffer, logger)

	monitor := safety.NewMonitor(safety.Config{
		Tick:                cfg.SafetyTick(),
		EmergencyCheckAfter: cfg.EmergencyCheckAfter(),
		CriticalGrace:       cfg.CriticalGrace(),
	}, events, logger)
	monitor.SetStatusLookup(registry.JobStatus)

	// Services
	notificationService := &services.NotificationService{Registry: registry, Realtime: hub, Now: now}
	jobService := &services.JobService{
		Registry:        registry,
		Monitor:         monitor,
		Notifications:   notificationService,
		DefaultRadiusKm: cfg.Proximity.DefaultRadiusKm,
		Now:             now,
	}
	if d.uploader != nil {
		jobService.Images = d.uploader
	}
	bidService := &services.BidService{Registry: registry, Notifications: notificationService, Now: now}
	providerService := &services.ProviderService{
		Registry:        registry,
		Logger:          logger,
		DefaultRadiusKm: cfg.Proximity.DefaultRadiusKm,
	}
	if d.rdb != nil {
		providerService.Locator = geo.NewProviderLocator(d.rdb, cfg.Redis.City)
	}
	reviewService := &services.ReviewService{Registry: registry, Now: now}
	messageService := &services.MessageService{Registry: registry, Notifications: notificationService, Now: now}
	safetyService := &services.SafetyService{Registry: registry, Monitor: monitor, Now: now}

	retention := &services.RetentionService{Registry: registry, RetainFor: cfg.RetainFor()}
	if d.db != nil {
		archive := &repositories.ArchiveRepository{DB: d.db, Driver: cfg.Database.Driver}
		if err := archive.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("archive schema: %w", err)
		}
		retention.Archive = archive
	}

	var tokens *utils.Manager
	if cfg.Auth.JWTSecret != "" {
		m, err := utils.NewManager(cfg.Auth.JWTSecret)
		if err != nil {
			return nil, err
		}
		tokens = m
	}

	return &application{
		errorLog:  errorLog,
		infoLog:   infoLog,
		cfg:       cfg,
		registry:  registry,
		monitor:   monitor,
		events:    events,
		hub:       hub,
		tokens:    tokens,
		retention: retention,

		jobHandler:          &handlers.JobHandler{Service: jobService, Bids: bidService, Messages: messageService, ErrorLog: errorLog},
		bidHandler:          &handlers.BidHandler{Service: bidService, ErrorLog: errorLog},
		providerHandler:     &handlers.ProviderHandler{Service: providerService, Reviews: reviewService, ErrorLog: errorLog},
		reviewHandler:       &handlers.ReviewHandler{Service: reviewService, ErrorLog: errorLog},
		messageHandler:      &handlers.MessageHandler{Service: messageService, ErrorLog: errorLog},
		notificationHandler: &handlers.NotificationHandler{Service: notificationService, ErrorLog: errorLog},
		safetyHandler:       &handlers.SafetyHandler{Service: safetyService, Hub: hub, ErrorLog: errorLog},
		historyHandler:      &handlers.HistoryHandler{Service: retention, ErrorLog: errorLog},
	}, nil
}

func (app *application) close() {
	app.events.Close()
}
