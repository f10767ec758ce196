package web

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/VipinKumar1310/autotrade/internal/domain"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		s.writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	user, err := s.connector.Login(r.Context(), req.Email)
	if err != nil {
		s.writeError(w, http.StatusRequestTimeout, "login cancelled")
		return
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to issue session token", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
		"theme": s.store.Theme(),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.store.Logout(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListProviders(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Providers())
}

// messageView is a chat row: the raw message joined with its parsed
// signal and the trade that signal produced, when they exist. Dangling
// references render as absent rather than failing.
type messageView struct {
	domain.TelegramMessage
	Signal *domain.ParsedSignal `json:"signal,omitempty"`
	Trade  *domain.Trade        `json:"trade,omitempty"`
}

func (s *Server) handleProviderMessages(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	provider, ok := s.store.ProviderByID(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "provider not found")
		return
	}

	messages := s.store.MessagesByProvider(id)
	views := make([]messageView, 0, len(messages))
	for _, m := range messages {
		v := messageView{TelegramMessage: m}
		if sig, ok := s.store.SignalByMessageID(m.ID); ok {
			v.Signal = &sig
			if tr, ok := s.store.TradeBySignalID(sig.ID); ok {
				v.Trade = &tr
			}
		}
		views = append(views, v)
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"provider": provider,
		"messages": views,
	})
}

func (s *Server) handleConnectProvider(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.connector.ConnectProvider(r.Context(), id); err != nil {
		s.writeMutationError(w, err, "provider not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "connected"})
}

func (s *Server) handleDisconnectProvider(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.connector.DisconnectProvider(r.Context(), id); err != nil {
		s.writeMutationError(w, err, "provider not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}

func (s *Server) handleListSignals(w http.ResponseWriter, r *http.Request) {
	signals := s.store.Signals()

	if status := r.URL.Query().Get("status"); status != "" {
		filtered := signals[:0]
		for _, sig := range signals {
			if string(sig.ExecutionStatus) == status {
				filtered = append(filtered, sig)
			}
		}
		signals = filtered
	}

	sort.Slice(signals, func(i, j int) bool {
		ti, _ := time.Parse(time.RFC3339, signals[i].ParsedAt)
		tj, _ := time.Parse(time.RFC3339, signals[j].ParsedAt)
		return ti.After(tj)
	})

	s.writeJSON(w, http.StatusOK, signals)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	user, _ := s.store.User()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":      user,
		"theme":     s.store.Theme(),
		"providers": s.store.Providers(),
		"brokers":   s.store.Brokers(),
	})
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme := s.store.ToggleTheme(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]string{"theme": string(theme)})
}

func (s *Server) handleListBrokers(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Brokers())
}

func (s *Server) handleConnectBroker(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.connector.ConnectBroker(r.Context(), id); err != nil {
		s.writeMutationError(w, err, "broker not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "connected"})
}

func (s *Server) handleDisconnectBroker(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.connector.DisconnectBroker(r.Context(), id); err != nil {
		s.writeMutationError(w, err, "broker not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications := s.store.Notifications()
	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"unread":        unread,
	})
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.MarkNotificationRead(r.Context(), id); err != nil {
		s.writeMutationError(w, err, "notification not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	s.store.MarkAllNotificationsRead(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeMutationError maps ErrNotFound to 404, cancellation to 408 and
// anything else to 500.
func (s *Server) writeMutationError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		s.writeError(w, http.StatusRequestTimeout, "request cancelled")
	default:
		s.logger.Error("Mutation failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Local single-user dashboard.
		return true
	},
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if _, err := s.jwt.ValidateToken(strings.TrimSpace(token)); err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WS upgrade failed", zap.Error(err))
		return
	}

	client := newWSClient(conn)
	select {
	case s.hub.register <- client:
	case <-s.hub.done:
		conn.Close()
		return
	}
	// First frame acknowledges the subscription; clients wait for it
	// before trusting the stream.
	client.send <- connectedFrame()
	go client.writePump()
	go client.readPump(s.hub)
}
