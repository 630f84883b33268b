package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saferide-app/saferide-go/config"
	"github.com/saferide-app/saferide-go/internal/adapter/broadcast"
	httpserver "github.com/saferide-app/saferide-go/internal/adapter/http/server"
	"github.com/saferide-app/saferide-go/internal/adapter/postgres"
	rabbitadapter "github.com/saferide-app/saferide-go/internal/adapter/rabbit"
	"github.com/saferide-app/saferide-go/internal/service/auth"
	"github.com/saferide-app/saferide-go/internal/service/chat"
	"github.com/saferide-app/saferide-go/internal/service/emergency"
	"github.com/saferide-app/saferide-go/internal/service/profile"
	"github.com/saferide-app/saferide-go/pkg/logger"
	postgresclient "github.com/saferide-app/saferide-go/pkg/postgres"
	rabbitclient "github.com/saferide-app/saferide-go/pkg/rabbit"
	"github.com/saferide-app/saferide-go/pkg/trm"
	"github.com/saferide-app/saferide-go/pkg/uuid"
	ws "github.com/saferide-app/saferide-go/pkg/wsHub"
)

type App struct {
	postgresDB *postgresclient.PostgreDB
	rabbitMQ   *rabbitclient.RabbitMQ
	consumer   *rabbitadapter.EventConsumer
	httpServer *httpserver.API

	cfg config.Config
	log logger.Logger
}

// New wires the whole application: storage, broadcast, services, transport.
func New(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	db, err := postgresclient.New(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	// repositories
	userRepo := postgres.NewUserRepo(db.Pool)
	resetRepo := postgres.NewPasswordResetRepo(db.Pool)
	emergencyRepo := postgres.NewEmergencyRepo(db.Pool)
	chatRepo := postgres.NewChatRepo(db.Pool)
	settingsRepo := postgres.NewSettingsRepo(db.Pool)
	locationRepo := postgres.NewLocationRepo(db.Pool)
	deviceRepo := postgres.NewDeviceRepo(db.Pool)

	txManager := trm.New(db.Pool)

	// broadcast
	hub := ws.NewConnHub(cfg.ServiceName, log)

	origin := cfg.Broadcast.InstanceID
	if origin == "" {
		id, err := uuid.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate broadcast instance id: %w", err)
		}
		origin = id.String()
	}

	var (
		rabbitMQ *rabbitclient.RabbitMQ
		relay    broadcast.Relay
	)
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err = rabbitclient.New(ctx, cfg.RabbitMQ.GetDSN(), log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}

		producer, err := rabbitadapter.NewEventProducer(rabbitMQ, cfg.ServiceName)
		if err != nil {
			return nil, err
		}
		relay = producer
	}

	bus := broadcast.New(cfg.ServiceName, origin, hub, relay, log)

	var consumer *rabbitadapter.EventConsumer
	if rabbitMQ != nil {
		consumer = rabbitadapter.NewEventConsumer(rabbitMQ, bus, cfg.ServiceName, log)
	}

	// services
	tokenSvc := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	authSvc := auth.NewAuthService(userRepo, resetRepo, tokenSvc, txManager, cfg.Auth.PasswordResetTTL, log)
	emergencySvc := emergency.NewService(emergencyRepo, settingsRepo, bus, txManager, cfg.ServiceName, log)
	chatSvc := chat.NewService(chatRepo, settingsRepo, bus, txManager, cfg.ServiceName, log)
	profileSvc := profile.NewService(settingsRepo, locationRepo, deviceRepo, txManager, log)

	server, err := httpserver.New(cfg, authSvc, emergencySvc, chatSvc, profileSvc, hub, log)
	if err != nil {
		return nil, err
	}

	return &App{
		postgresDB: db,
		rabbitMQ:   rabbitMQ,
		consumer:   consumer,
		httpServer: server,
		cfg:        cfg,
		log:        log,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "application closed")
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.consumer != nil {
		if err := a.consumer.Start(ctx); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	a.httpServer.Run(ctx, errCh)

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "application started")
	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error(ctx, "failed to shutdown HTTP server", err)
	}

	if a.rabbitMQ != nil {
		if err := a.rabbitMQ.Close(ctx); err != nil {
			a.log.Error(ctx, "failed to close RabbitMQ connection", err)
		}
	}

	a.postgresDB.Pool.Close()
}
