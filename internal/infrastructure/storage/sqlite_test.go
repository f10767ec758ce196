package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VipinKumar1310/autotrade/internal/domain"
	"github.com/VipinKumar1310/autotrade/internal/infrastructure/storage"
)

func tempStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	s, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoad_EmptyDatabase(t *testing.T) {
	s := tempStore(t)
	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := tempStore(t)
	ctx := context.Background()

	user := domain.User{ID: "user_001", Email: "x@y.z", Name: "X"}
	in := &domain.Snapshot{
		Authenticated: true,
		User:          &user,
		Theme:         domain.ThemeLight,
		Automations: []domain.Automation{
			{ID: "auto_1", Name: "first", Status: domain.StatusRunning},
			{ID: "auto_2", Name: "second", Status: domain.StatusPaused,
				Rules: domain.AutomationRules{Quantity: 10, AllowedInstruments: []string{"NIFTY"}}},
		},
		Notifications: []domain.Notification{
			{ID: "ntf_1", Type: domain.NotifyError, Title: "t", Read: true},
		},
	}
	require.NoError(t, s.Save(ctx, in))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in.Authenticated, out.Authenticated)
	assert.Equal(t, in.User, out.User)
	assert.Equal(t, in.Theme, out.Theme)
	assert.Equal(t, in.Automations, out.Automations)
	assert.Equal(t, in.Notifications, out.Notifications)
}

// Each Save replaces the previous snapshot wholesale, including removals.
func TestSave_Replaces(t *testing.T) {
	s := tempStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &domain.Snapshot{
		Theme: domain.ThemeDark,
		Automations: []domain.Automation{
			{ID: "auto_1"}, {ID: "auto_2"},
		},
	}))
	require.NoError(t, s.Save(ctx, &domain.Snapshot{
		Theme:       domain.ThemeDark,
		Automations: []domain.Automation{{ID: "auto_2"}},
	}))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out.Automations, 1)
	assert.Equal(t, "auto_2", out.Automations[0].ID)
	assert.Nil(t, out.User)
	assert.False(t, out.Authenticated)
}

// A logged-out snapshot still counts as persisted state: authenticated
// stays false after reload instead of falling back to fixtures.
func TestSave_LoggedOutSnapshotPersists(t *testing.T) {
	s := tempStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &domain.Snapshot{Theme: domain.ThemeLight}))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.False(t, out.Authenticated)
	assert.Equal(t, domain.ThemeLight, out.Theme)
	assert.Empty(t, out.Automations)
}
