package fixtures_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VipinKumar1310/autotrade/internal/domain"
	"github.com/VipinKumar1310/autotrade/internal/fixtures"
)

func TestLoad(t *testing.T) {
	d, err := fixtures.Load()
	require.NoError(t, err)

	assert.NotEmpty(t, d.User.ID)
	assert.NotEmpty(t, d.Providers)
	assert.NotEmpty(t, d.Messages)
	assert.NotEmpty(t, d.Brokers)
	assert.NotEmpty(t, d.Automations)
	assert.NotEmpty(t, d.Signals)
	assert.NotEmpty(t, d.Trades)
	assert.NotEmpty(t, d.Notifications)
}

// The UI tolerates dangling ids, but the shipped seed data should not
// contain any.
func TestLoad_References(t *testing.T) {
	d, err := fixtures.Load()
	require.NoError(t, err)

	providers := make(map[string]bool)
	for _, p := range d.Providers {
		providers[p.ID] = true
	}
	brokers := make(map[string]bool)
	for _, b := range d.Brokers {
		brokers[b.ID] = true
	}
	automations := make(map[string]bool)
	for _, a := range d.Automations {
		automations[a.ID] = true
	}
	signals := make(map[string]bool)
	for _, s := range d.Signals {
		signals[s.ID] = true
	}
	trades := make(map[string]bool)
	for _, tr := range d.Trades {
		trades[tr.ID] = true
	}

	for _, a := range d.Automations {
		assert.True(t, brokers[a.BrokerID], "automation %s broker %s", a.ID, a.BrokerID)
		if a.SignalSource == domain.SourceTelegram {
			assert.True(t, providers[a.TelegramProviderID], "automation %s provider %s", a.ID, a.TelegramProviderID)
		}
	}

	for _, m := range d.Messages {
		assert.True(t, providers[m.ProviderID], "message %s provider %s", m.ID, m.ProviderID)
		if m.ParsedSignalID != nil {
			assert.True(t, signals[*m.ParsedSignalID], "message %s signal %s", m.ID, *m.ParsedSignalID)
		}
	}

	for _, s := range d.Signals {
		assert.True(t, providers[s.ProviderID], "signal %s provider %s", s.ID, s.ProviderID)
		assert.True(t, automations[s.AutomationID], "signal %s automation %s", s.ID, s.AutomationID)
		if s.TradeID != nil {
			assert.True(t, trades[*s.TradeID], "signal %s trade %s", s.ID, *s.TradeID)
		}
	}

	for _, tr := range d.Trades {
		assert.True(t, automations[tr.AutomationID], "trade %s automation %s", tr.ID, tr.AutomationID)
		assert.True(t, brokers[tr.BrokerID], "trade %s broker %s", tr.ID, tr.BrokerID)
		if tr.SignalID != nil {
			assert.True(t, signals[*tr.SignalID], "trade %s signal %s", tr.ID, *tr.SignalID)
		}
	}
}
