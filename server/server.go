package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MusicHub/config"
	"MusicHub/core/auth"
	"MusicHub/core/identity"
	"MusicHub/core/live"
	"MusicHub/core/playcount"
	"MusicHub/core/relay"
	"MusicHub/logger"
	"MusicHub/metrics"

	"github.com/gorilla/mux"
)

// NewRouter wires the HTTP routes.
func NewRouter(h *APIHandler, hub *live.Hub, m *metrics.Metrics) *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(accessLogMiddleware)
	if m != nil {
		router.Use(m.Middleware)
	}

	// 用户认证相关的API端点
	router.HandleFunc("/register", h.RegisterHandler).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/login", h.LoginHandler).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/me", h.AuthMiddleware(h.ProfileHandler)).Methods(http.MethodGet, http.MethodOptions)

	// 播放次数
	router.HandleFunc("/api/update-stream", h.UpdateStreamHandler).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/get-streams", h.GetStreamsHandler).Methods(http.MethodGet, http.MethodOptions)

	// token 中转
	router.HandleFunc("/store-token", h.StoreTokenHandler).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/get-token", h.GetTokenHandler).Methods(http.MethodGet, http.MethodOptions)

	if hub != nil {
		router.HandleFunc("/ws/streams", hub.ServeWS).Methods(http.MethodGet)
	}
	if m != nil {
		router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}
	return router
}

// App is a fully wired server ready to Run.
type App struct {
	cfg      *config.Config
	backends *Backends
	hub      *live.Hub
	server   *http.Server
}

// NewApp builds the services on top of the given backends.
func NewApp(cfg *config.Config, backends *Backends) *App {
	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	m := metrics.New()
	hub := live.NewHub()

	playcountSvc := playcount.NewService(backends.Streams)
	playcountSvc.OnIncrement(m.ObserveIncrement)
	playcountSvc.OnIncrement(hub.Publish)

	apiHandler := NewAPIHandler(
		identity.NewService(backends.Users, codec),
		codec,
		playcountSvc,
		relay.NewService(backends.Relay),
	)

	return &App{
		cfg:      cfg,
		backends: backends,
		hub:      hub,
		server: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      NewRouter(apiHandler, hub, m),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go a.hub.Run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[Server] 服务启动", logger.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("[Server] Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("[Server] Server stopped")
	return nil
}

// Start loads configuration, connects storage and serves until SIGINT/SIGTERM.
func Start() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logger.InitLogger(logger.Config{Level: cfg.LogLevel, OutputPath: cfg.LogFile, MaxBackups: 5, MaxAge: 30}); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backends, err := OpenBackends(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer backends.Close()

	return NewApp(cfg, backends).Run(ctx)
}
