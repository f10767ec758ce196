// Package web is the HTTP surface of the dashboard: JSON endpoints for
// each screen plus a WebSocket stream of store change events. It is the
// only caller of the store.
package web

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/VipinKumar1310/autotrade/internal/auth"
	"github.com/VipinKumar1310/autotrade/internal/connect"
	"github.com/VipinKumar1310/autotrade/internal/store"
)

type Server struct {
	router    *http.ServeMux
	server    *http.Server
	store     *store.Store
	connector *connect.Connector
	jwt       *auth.JWTManager
	hub       *Hub
	logger    *zap.Logger
}

func NewServer(
	port int,
	st *store.Store,
	connector *connect.Connector,
	jwtManager *auth.JWTManager,
	logger *zap.Logger,
) *Server {
	s := &Server{
		router:    http.NewServeMux(),
		store:     st,
		connector: connector,
		jwt:       jwtManager,
		hub:       NewHub(logger),
		logger:    logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}

	// Every committed store mutation reaches connected clients.
	st.Subscribe(s.hub.Publish)
	go s.hub.Run()

	return s
}

func (s *Server) routes() {
	// Session
	s.router.HandleFunc("POST /api/login", s.handleLogin)

	api := http.NewServeMux()

	api.HandleFunc("POST /api/logout", s.handleLogout)

	// Dashboard
	api.HandleFunc("GET /api/dashboard", s.handleDashboard)

	// Automations
	api.HandleFunc("GET /api/automations", s.handleListAutomations)
	api.HandleFunc("POST /api/automations", s.handleCreateAutomation)
	api.HandleFunc("GET /api/automations/{id}", s.handleGetAutomation)
	api.HandleFunc("PATCH /api/automations/{id}", s.handleUpdateAutomation)
	api.HandleFunc("DELETE /api/automations/{id}", s.handleDeleteAutomation)
	api.HandleFunc("POST /api/automations/{id}/status", s.handleAutomationStatus)

	// Chats
	api.HandleFunc("GET /api/providers", s.handleListProviders)
	api.HandleFunc("GET /api/providers/{id}/messages", s.handleProviderMessages)
	api.HandleFunc("POST /api/providers/{id}/connect", s.handleConnectProvider)
	api.HandleFunc("POST /api/providers/{id}/disconnect", s.handleDisconnectProvider)

	// Signals
	api.HandleFunc("GET /api/signals", s.handleListSignals)

	// Settings
	api.HandleFunc("GET /api/settings", s.handleSettings)
	api.HandleFunc("POST /api/settings/theme", s.handleToggleTheme)
	api.HandleFunc("GET /api/brokers", s.handleListBrokers)
	api.HandleFunc("POST /api/brokers/{id}/connect", s.handleConnectBroker)
	api.HandleFunc("POST /api/brokers/{id}/disconnect", s.handleDisconnectBroker)

	// Notifications
	api.HandleFunc("GET /api/notifications", s.handleListNotifications)
	api.HandleFunc("POST /api/notifications/{id}/read", s.handleMarkNotificationRead)
	api.HandleFunc("POST /api/notifications/read-all", s.handleMarkAllNotificationsRead)

	s.router.Handle("/api/", auth.Middleware(s.jwt)(api))

	// Event stream; token arrives as a query parameter because browser
	// WebSocket clients cannot set headers.
	s.router.HandleFunc("GET /ws", s.handleWS)
}

func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	s.hub.Stop()
	return err
}

// Handler exposes the router for httptest-based tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
