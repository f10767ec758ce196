// Package connect models the simulated "network" operations: a connect or
// submit action waits an artificial delay before committing to the local
// store. The delay exists to drive loading affordances in the UI; it is
// injectable so tests run without real timers.
package connect

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/VipinKumar1310/autotrade/internal/domain"
	"github.com/VipinKumar1310/autotrade/internal/store"
)

// Delays configures the artificial wait per operation kind.
type Delays struct {
	Login   time.Duration
	Connect time.Duration
	Submit  time.Duration
}

// DefaultDelays mirrors the spinner timings of the reference UI.
func DefaultDelays() Delays {
	return Delays{
		Login:   800 * time.Millisecond,
		Connect: 500 * time.Millisecond,
		Submit:  400 * time.Millisecond,
	}
}

type Connector struct {
	store  *store.Store
	delays Delays
	logger *zap.Logger
}

func New(st *store.Store, delays Delays, logger *zap.Logger) *Connector {
	return &Connector{store: st, delays: delays, logger: logger}
}

// wait blocks for d or until ctx is cancelled. Unlike the reference UI,
// a cancelled request aborts before the commit.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Connector) Login(ctx context.Context, email string) (domain.User, error) {
	if err := wait(ctx, c.delays.Login); err != nil {
		return domain.User{}, err
	}
	user := c.store.Login(ctx, email)
	c.logger.Info("Session started", zap.String("email", email))
	return user, nil
}

func (c *Connector) ConnectProvider(ctx context.Context, id string) error {
	if err := wait(ctx, c.delays.Connect); err != nil {
		return err
	}
	if err := c.store.SetProviderConnected(id, true); err != nil {
		return err
	}
	c.logger.Info("Provider connected", zap.String("provider_id", id))
	return nil
}

// DisconnectProvider commits immediately; only connecting simulates a
// handshake.
func (c *Connector) DisconnectProvider(ctx context.Context, id string) error {
	return c.store.SetProviderConnected(id, false)
}

func (c *Connector) ConnectBroker(ctx context.Context, id string) error {
	if err := wait(ctx, c.delays.Connect); err != nil {
		return err
	}
	if err := c.store.SetBrokerConnected(id, true); err != nil {
		return err
	}
	c.logger.Info("Broker connected", zap.String("broker_id", id))
	return nil
}

func (c *Connector) DisconnectBroker(ctx context.Context, id string) error {
	return c.store.SetBrokerConnected(id, false)
}

func (c *Connector) SubmitAutomation(ctx context.Context, draft domain.AutomationDraft) (domain.Automation, error) {
	if err := wait(ctx, c.delays.Submit); err != nil {
		return domain.Automation{}, err
	}
	auto := c.store.CreateAutomation(ctx, draft)
	c.logger.Info("Automation created",
		zap.String("automation_id", auto.ID),
		zap.String("name", auto.Name))
	return auto, nil
}
