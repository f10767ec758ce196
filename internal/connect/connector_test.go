package connect_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/VipinKumar1310/autotrade/internal/connect"
	"github.com/VipinKumar1310/autotrade/internal/domain"
	"github.com/VipinKumar1310/autotrade/internal/fixtures"
	"github.com/VipinKumar1310/autotrade/internal/store"
)

type memRepo struct {
	snap *domain.Snapshot
}

func (m *memRepo) Load(ctx context.Context) (*domain.Snapshot, error) { return m.snap, nil }
func (m *memRepo) Save(ctx context.Context, snap *domain.Snapshot) error {
	m.snap = snap
	return nil
}

func newConnector(t *testing.T, delays connect.Delays) (*connect.Connector, *store.Store) {
	t.Helper()
	fx, err := fixtures.Load()
	require.NoError(t, err)
	st, err := store.New(context.Background(), fx, &memRepo{}, zap.NewNop())
	require.NoError(t, err)
	return connect.New(st, delays, zap.NewNop()), st
}

func TestConnector_ZeroDelayCommits(t *testing.T) {
	c, st := newConnector(t, connect.Delays{})
	ctx := context.Background()

	user, err := c.Login(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", user.Email)
	assert.True(t, st.IsAuthenticated())

	require.NoError(t, c.ConnectProvider(ctx, "tg_003"))
	p, _ := st.ProviderByID("tg_003")
	assert.True(t, p.Connected)
	require.NotNil(t, p.ConnectedAt)

	require.NoError(t, c.ConnectBroker(ctx, "brk_002"))
	b, _ := st.BrokerByID("brk_002")
	assert.True(t, b.Connected)
	assert.Equal(t, domain.BrokerActive, b.Status)

	require.NoError(t, c.DisconnectBroker(ctx, "brk_002"))
	b, _ = st.BrokerByID("brk_002")
	assert.False(t, b.Connected)
	assert.Equal(t, domain.BrokerDisconnected, b.Status)

	auto, err := c.SubmitAutomation(ctx, domain.AutomationDraft{
		Name:     "via connector",
		BrokerID: "brk_001",
	})
	require.NoError(t, err)
	_, ok := st.AutomationByID(auto.ID)
	assert.True(t, ok)
}

func TestConnector_UnknownID(t *testing.T) {
	c, _ := newConnector(t, connect.Delays{})
	ctx := context.Background()

	assert.ErrorIs(t, c.ConnectProvider(ctx, "tg_missing"), domain.ErrNotFound)
	assert.ErrorIs(t, c.ConnectBroker(ctx, "brk_missing"), domain.ErrNotFound)
}

// A cancelled context aborts the simulated handshake before any commit.
func TestConnector_CancelledBeforeCommit(t *testing.T) {
	c, st := newConnector(t, connect.Delays{Connect: time.Hour, Login: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Login(ctx, "a@b.c")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, st.IsAuthenticated())

	err = c.ConnectProvider(ctx, "tg_003")
	assert.ErrorIs(t, err, context.Canceled)
	p, _ := st.ProviderByID("tg_003")
	assert.False(t, p.Connected)
}
