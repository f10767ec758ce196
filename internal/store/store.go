// Package store is the single source of truth for session and
// fixture-derived state. All reads and writes used by the web layer go
// through it: one writer, many synchronous readers, no torn reads.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/VipinKumar1310/autotrade/internal/domain"
	"github.com/VipinKumar1310/autotrade/internal/fixtures"
)

// Event names a committed state change, delivered to subscribers after
// the mutation and its persistence write have completed.
type Event string

const (
	EventSession       Event = "session"
	EventTheme         Event = "theme"
	EventAutomations   Event = "automations"
	EventNotifications Event = "notifications"
	EventProviders     Event = "providers"
	EventBrokers       Event = "brokers"
)

type Store struct {
	mu      sync.RWMutex
	repo    domain.SessionRepository
	logger  *zap.Logger
	timeNow func() time.Time // for testing

	fixtureUser domain.User

	authenticated bool
	user          *domain.User
	theme         domain.Theme

	providers     []domain.TelegramProvider
	messages      []domain.TelegramMessage
	brokers       []domain.Broker
	automations   []domain.Automation
	signals       []domain.ParsedSignal
	trades        []domain.Trade
	notifications []domain.Notification

	subMu       sync.Mutex
	subscribers []func(Event)
}

// New seeds every collection from fixtures, then overlays the persisted
// snapshot on top of the allow-listed fields. Collections outside the
// allow-list always start from fixture values.
func New(ctx context.Context, fx *fixtures.Data, repo domain.SessionRepository, logger *zap.Logger) (*Store, error) {
	s := &Store{
		repo:          repo,
		logger:        logger,
		timeNow:       time.Now,
		fixtureUser:   fx.User,
		theme:         domain.ThemeDark,
		providers:     append([]domain.TelegramProvider(nil), fx.Providers...),
		messages:      append([]domain.TelegramMessage(nil), fx.Messages...),
		brokers:       append([]domain.Broker(nil), fx.Brokers...),
		automations:   append([]domain.Automation(nil), fx.Automations...),
		signals:       append([]domain.ParsedSignal(nil), fx.Signals...),
		trades:        append([]domain.Trade(nil), fx.Trades...),
		notifications: append([]domain.Notification(nil), fx.Notifications...),
	}

	snap, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session snapshot: %w", err)
	}
	if snap != nil {
		s.authenticated = snap.Authenticated
		s.user = snap.User
		s.theme = snap.Theme
		s.automations = append([]domain.Automation(nil), snap.Automations...)
		s.notifications = append([]domain.Notification(nil), snap.Notifications...)
	}
	return s, nil
}

// SetClock overrides the time source. For testing.
func (s *Store) SetClock(now func() time.Time) {
	s.timeNow = now
}

// Subscribe registers an observer invoked after every committed mutation.
// Callbacks run outside the store lock and may read the store.
func (s *Store) Subscribe(fn func(Event)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify(ev Event) {
	s.subMu.Lock()
	subs := append([]func(Event){}, s.subscribers...)
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

// persistLocked writes the current allow-listed state through the
// repository. Caller must hold the write lock. The write is detached
// from the caller's cancellation: once a mutation has committed in
// memory, the snapshot must reach disk even if the request that
// triggered it has gone away.
func (s *Store) persistLocked(ctx context.Context) {
	snap := &domain.Snapshot{
		Authenticated: s.authenticated,
		User:          s.user,
		Theme:         s.theme,
		Automations:   append([]domain.Automation(nil), s.automations...),
		Notifications: append([]domain.Notification(nil), s.notifications...),
	}
	if err := s.repo.Save(context.WithoutCancel(ctx), snap); err != nil {
		s.logger.Error("Failed to persist session snapshot", zap.Error(err))
	}
}

// Login sets the authenticated flag and synthesizes the user profile from
// fixture data plus the supplied email. Always succeeds.
func (s *Store) Login(ctx context.Context, email string) domain.User {
	s.mu.Lock()
	user := s.fixtureUser
	user.Email = email
	s.user = &user
	s.authenticated = true
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(EventSession)
	return user
}

// Logout clears the session. Idempotent.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.authenticated = false
	s.user = nil
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(EventSession)
}

func (s *Store) ToggleTheme(ctx context.Context) domain.Theme {
	s.mu.Lock()
	s.theme = s.theme.Toggle()
	theme := s.theme
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(EventTheme)
	return theme
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *Store) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *Store) Theme() domain.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// CreateAutomation assigns a time-based id and creation timestamp,
// attaches a zeroed stats block and appends the record.
func (s *Store) CreateAutomation(ctx context.Context, draft domain.AutomationDraft) domain.Automation {
	s.mu.Lock()
	auto := domain.Automation{
		Name:                draft.Name,
		SignalSource:        draft.SignalSource,
		TelegramProviderID:  draft.TelegramProviderID,
		BrokerID:            draft.BrokerID,
		ExecutionMode:       draft.ExecutionMode,
		Status:              draft.Status,
		LastSignalAt:        draft.LastSignalAt,
		TradesToday:         draft.TradesToday,
		TotalTrades:         draft.TotalTrades,
		Rules:               draft.Rules,
		MarketStrategyRules: draft.MarketStrategyRules,
		Options:             draft.Options,
		CreatedAt:           s.timeNow().UTC().Format(time.RFC3339),
		Stats:               domain.AutomationStats{},
	}
	auto.ID = s.nextAutomationIDLocked()
	s.automations = append(s.automations, auto)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(EventAutomations)
	return auto
}

// nextAutomationIDLocked derives the id from the clock and bumps it until
// unique, so rapid successive creates never collide.
func (s *Store) nextAutomationIDLocked() string {
	ms := s.timeNow().UnixMilli()
	for {
		id := fmt.Sprintf("auto_%d", ms)
		if !s.automationExistsLocked(id) {
			return id
		}
		ms++
	}
}

func (s *Store) automationExistsLocked(id string) bool {
	for _, a := range s.automations {
		if a.ID == id {
			return true
		}
	}
	return false
}

// UpdateAutomationStatus replaces the status of the matching automation
// and clears any error message.
func (s *Store) UpdateAutomationStatus(ctx context.Context, id string, status domain.AutomationStatus) error {
	s.mu.Lock()
	idx := s.automationIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	s.automations[idx].Status = status
	s.automations[idx].ErrorMessage = ""
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(EventAutomations)
	return nil
}

// UpdateAutomation shallow-merges top-level fields and deep-merges the
// Rules and Options sub-objects when present in the update.
func (s *Store) UpdateAutomation(ctx context.Context, id string, upd domain.AutomationUpdate) error {
	s.mu.Lock()
	idx := s.automationIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	applyUpdate(&s.automations[idx], upd)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(EventAutomations)
	return nil
}

func applyUpdate(a *domain.Automation, upd domain.AutomationUpdate) {
	if upd.Name != nil {
		a.Name = *upd.Name
	}
	if upd.SignalSource != nil {
		a.SignalSource = *upd.SignalSource
	}
	if upd.TelegramProviderID != nil {
		a.TelegramProviderID = *upd.TelegramProviderID
	}
	if upd.BrokerID != nil {
		a.BrokerID = *upd.BrokerID
	}
	if upd.ExecutionMode != nil {
		a.ExecutionMode = *upd.ExecutionMode
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	if upd.LastSignalAt != nil {
		a.LastSignalAt = *upd.LastSignalAt
	}
	if upd.TradesToday != nil {
		a.TradesToday = *upd.TradesToday
	}
	if upd.TotalTrades != nil {
		a.TotalTrades = *upd.TotalTrades
	}
	if upd.ErrorMessage != nil {
		a.ErrorMessage = *upd.ErrorMessage
	}
	if upd.MarketStrategyRules != nil {
		a.MarketStrategyRules = upd.MarketStrategyRules
	}
	if upd.Rules != nil {
		r := upd.Rules
		if r.Quantity != nil {
			a.Rules.Quantity = *r.Quantity
		}
		if r.MaxQuantity != nil {
			a.Rules.MaxQuantity = *r.MaxQuantity
		}
		if r.StopLossPercent != nil {
			a.Rules.StopLossPercent = *r.StopLossPercent
		}
		if r.MaxTradesPerDay != nil {
			a.Rules.MaxTradesPerDay = *r.MaxTradesPerDay
		}
		if r.AllowedInstruments != nil {
			a.Rules.AllowedInstruments = r.AllowedInstruments
		}
		if r.AllowedDirections != nil {
			a.Rules.AllowedDirections = r.AllowedDirections
		}
	}
	if upd.Options != nil {
		o := upd.Options
		if o.AIValidation != nil {
			a.Options.AIValidation = *o.AIValidation
		}
		if o.DelayExecutionSeconds != nil {
			a.Options.DelayExecutionSeconds = *o.DelayExecutionSeconds
		}
		if o.RequireConfirmation != nil {
			a.Options.RequireConfirmation = *o.RequireConfirmation
		}
	}
}

// DeleteAutomation removes the matching record. Automations are the only
// entity the system ever physically deletes.
func (s *Store) DeleteAutomation(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.automationIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	s.automations = append(s.automations[:idx], s.automations[idx+1:]...)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(EventAutomations)
	return nil
}

func (s *Store) automationIndexLocked(id string) int {
	for i, a := range s.automations {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := -1
	for i, n := range s.notifications {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	s.notifications[idx].Read = true
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(EventNotifications)
	return nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context) {
	s.mu.Lock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify(EventNotifications)
}

// SetProviderConnected toggles the connection flag of a channel and
// stamps connected_at. Providers are outside the persistence allow-list,
// so the flag resets to fixture values on restart.
func (s *Store) SetProviderConnected(id string, connected bool) error {
	s.mu.Lock()
	idx := -1
	for i, p := range s.providers {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	if connected {
		at := s.timeNow().UTC().Format(time.RFC3339)
		s.providers[idx].Connected = true
		s.providers[idx].ConnectedAt = &at
	} else {
		s.providers[idx].Connected = false
		s.providers[idx].ConnectedAt = nil
	}
	s.mu.Unlock()

	s.notify(EventProviders)
	return nil
}

func (s *Store) SetBrokerConnected(id string, connected bool) error {
	s.mu.Lock()
	idx := -1
	for i, b := range s.brokers {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	if connected {
		at := s.timeNow().UTC().Format(time.RFC3339)
		s.brokers[idx].Connected = true
		s.brokers[idx].ConnectedAt = &at
		s.brokers[idx].Status = domain.BrokerActive
	} else {
		s.brokers[idx].Connected = false
		s.brokers[idx].ConnectedAt = nil
		s.brokers[idx].Status = domain.BrokerDisconnected
	}
	s.mu.Unlock()

	s.notify(EventBrokers)
	return nil
}

// Collection snapshots. Callers get copies and may not mutate store state
// through them.

func (s *Store) Providers() []domain.TelegramProvider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.TelegramProvider(nil), s.providers...)
}

func (s *Store) Brokers() []domain.Broker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Broker(nil), s.brokers...)
}

func (s *Store) Automations() []domain.Automation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Automation(nil), s.automations...)
}

func (s *Store) Signals() []domain.ParsedSignal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ParsedSignal(nil), s.signals...)
}

func (s *Store) Trades() []domain.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Trade(nil), s.trades...)
}

func (s *Store) Notifications() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Notification(nil), s.notifications...)
}

func (s *Store) ProviderByID(id string) (domain.TelegramProvider, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.providers {
		if p.ID == id {
			return p, true
		}
	}
	return domain.TelegramProvider{}, false
}

func (s *Store) BrokerByID(id string) (domain.Broker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.brokers {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Broker{}, false
}

func (s *Store) AutomationByID(id string) (domain.Automation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.automations {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Automation{}, false
}

// MessagesByProvider returns the provider's messages newest first.
func (s *Store) MessagesByProvider(providerID string) []domain.TelegramMessage {
	s.mu.RLock()
	var out []domain.TelegramMessage
	for _, m := range s.messages {
		if m.ProviderID == providerID {
			out = append(out, m)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ti, _ := time.Parse(time.RFC3339, out[i].Timestamp)
		tj, _ := time.Parse(time.RFC3339, out[j].Timestamp)
		return ti.After(tj)
	})
	return out
}

func (s *Store) SignalByMessageID(messageID string) (domain.ParsedSignal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sig := range s.signals {
		if sig.MessageID == messageID {
			return sig, true
		}
	}
	return domain.ParsedSignal{}, false
}

func (s *Store) TradeBySignalID(signalID string) (domain.Trade, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tr := range s.trades {
		if tr.SignalID != nil && *tr.SignalID == signalID {
			return tr, true
		}
	}
	return domain.Trade{}, false
}
