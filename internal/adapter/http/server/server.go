package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/saferide-app/saferide-go/config"
	"github.com/saferide-app/saferide-go/internal/adapter/http/handler"
	"github.com/saferide-app/saferide-go/internal/adapter/http/middleware"
	"github.com/saferide-app/saferide-go/pkg/logger"
	wrap "github.com/saferide-app/saferide-go/pkg/logger/wrapper"
	ws "github.com/saferide-app/saferide-go/pkg/wsHub"
)

const serverIPAddress = "%s:%s"

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	auth      *handler.Auth
	emergency *handler.Emergency
	chat      *handler.Chat
	profile   *handler.Profile
	ws        *handler.WS
	health    *handler.Health
}

func New(
	cfg config.Config,
	authService handler.AuthService,
	emergencyService handler.EmergencyService,
	chatService handler.ChatService,
	profileService handler.ProfileService,
	hub *ws.ConnectionHub,
	logger logger.Logger,
) (*API, error) {
	if authService == nil {
		return nil, errors.New("auth service is required")
	}

	routes := &handlers{
		auth:      handler.NewAuth(authService, logger),
		emergency: handler.NewEmergency(emergencyService, logger),
		chat:      handler.NewChat(chatService, logger),
		profile:   handler.NewProfile(profileService, logger),
		ws:        handler.NewWS(hub, logger),
		health:    handler.NewHealth(cfg.ServiceName, logger),
	}

	mid := middleware.NewMiddleware(authService, logger)

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      mid,
		addr:   fmt.Sprintf(serverIPAddress, cfg.Server.Host, cfg.Server.Port),
		cfg:    cfg,
		log:    logger,
	}

	api.setupRoutes()

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: api.withMiddleware(),
	}

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware applies middlewares to the mux
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(
		a.m.RequestID(
			a.m.Logging(
				a.m.Metrics(a.cfg.ServiceName)(
					a.m.Auth(a.mux),
				),
			),
		),
	)
}
