package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VipinKumar1310/autotrade/internal/analytics"
	"github.com/VipinKumar1310/autotrade/internal/domain"
)

func closedTrade(id, automationID string, entry string, pnl float64) domain.Trade {
	return domain.Trade{
		ID:           id,
		AutomationID: automationID,
		EntryTime:    entry,
		PnL:          pnl,
		Status:       domain.TradeClosed,
	}
}

func openTrade(id, automationID string, entry string, pnl float64) domain.Trade {
	tr := closedTrade(id, automationID, entry, pnl)
	tr.Status = domain.TradeOpen
	return tr
}

func TestResolveRange_Today(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	r := analytics.ResolveRange(analytics.PeriodToday, nil, now)

	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, now, r.End)

	// A trade from just before midnight is excluded.
	trades := []domain.Trade{
		closedTrade("t1", "a1", "2024-06-14T23:59:59Z", 10),
		closedTrade("t2", "a1", "2024-06-15T10:00:00Z", 10),
	}
	got := analytics.FilterTrades(trades, nil, analytics.Filter{Range: r})
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].ID)
}

func TestResolveRange_RollingAndAll(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)

	week := analytics.ResolveRange(analytics.PeriodWeek, nil, now)
	assert.Equal(t, now.AddDate(0, 0, -7), week.Start)

	month := analytics.ResolveRange(analytics.PeriodMonth, nil, now)
	assert.Equal(t, now.AddDate(0, -1, 0), month.Start)

	all := analytics.ResolveRange(analytics.PeriodAll, nil, now)
	assert.Equal(t, time.Unix(0, 0), all.Start)
	assert.Equal(t, now, all.End)
}

func TestResolveRange_CustomInclusiveDays(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	r := analytics.ResolveRange(analytics.PeriodCustom, &analytics.CustomRange{
		Start: "2024-06-10",
		End:   "2024-06-12",
	}, now)

	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), r.Start)

	trades := []domain.Trade{
		closedTrade("start", "a1", "2024-06-10T00:00:00Z", 1),
		closedTrade("lastday", "a1", "2024-06-12T23:59:59Z", 1),
		closedTrade("after", "a1", "2024-06-13T00:00:01Z", 1),
	}
	got := analytics.FilterTrades(trades, nil, analytics.Filter{Range: r})
	require.Len(t, got, 2)
	assert.Equal(t, "start", got[0].ID)
	assert.Equal(t, "lastday", got[1].ID)
}

func TestSummarize_WinRate(t *testing.T) {
	trades := []domain.Trade{
		closedTrade("t1", "a1", "2024-06-14T10:00:00Z", 100),
		closedTrade("t2", "a1", "2024-06-14T11:00:00Z", -50),
		closedTrade("t3", "a1", "2024-06-14T12:00:00Z", 25),
		openTrade("t4", "a1", "2024-06-15T09:00:00Z", 12),
	}

	sum := analytics.Summarize(trades, nil)
	assert.Equal(t, 3, sum.TotalTrades)
	assert.Equal(t, 2, sum.WinningTrades)
	assert.Equal(t, 1, sum.LosingTrades)
	assert.Equal(t, 1, sum.OpenTrades)
	assert.InDelta(t, 66.67, sum.WinRate, 0.01)
	// Open-trade P&L is excluded from the realized total.
	assert.Equal(t, 75.0, sum.TotalPnL)
}

func TestSummarize_NoClosedTrades(t *testing.T) {
	sum := analytics.Summarize([]domain.Trade{
		openTrade("t1", "a1", "2024-06-15T09:00:00Z", 40),
	}, nil)
	assert.Zero(t, sum.WinRate)
	assert.Zero(t, sum.TotalPnL)
	assert.Equal(t, 1, sum.OpenTrades)
}

func TestSummarize_SignalCounts(t *testing.T) {
	signals := []domain.ParsedSignal{
		{ID: "s1", ExecutionStatus: domain.ExecutionExecuted},
		{ID: "s2", ExecutionStatus: domain.ExecutionExecuted},
		{ID: "s3", ExecutionStatus: domain.ExecutionSkipped},
		{ID: "s4", ExecutionStatus: domain.ExecutionPending},
		{ID: "s5", ExecutionStatus: domain.ExecutionPendingManual},
	}
	sum := analytics.Summarize(nil, signals)
	assert.Equal(t, 5, sum.TotalSignals)
	assert.Equal(t, 2, sum.ExecutedSignals)
	assert.Equal(t, 1, sum.SkippedSignals)
	assert.Equal(t, 2, sum.PendingSignals)
}

func TestFilters_Conjunctive(t *testing.T) {
	automations := []domain.Automation{
		{ID: "a1", TelegramProviderID: "p1"},
		{ID: "a2", TelegramProviderID: "p2"},
		{ID: "a3"}, // market strategy, no channel
	}
	all := analytics.Range{Start: time.Unix(0, 0), End: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	trades := []domain.Trade{
		closedTrade("t1", "a1", "2024-06-14T10:00:00Z", 10),
		closedTrade("t2", "a2", "2024-06-14T10:00:00Z", 10),
		closedTrade("t3", "a3", "2024-06-14T10:00:00Z", 10),
		closedTrade("t4", "a1", "2020-01-01T10:00:00Z", 10),
	}

	// Empty selections mean no constraint, not exclude-all.
	got := analytics.FilterTrades(trades, automations, analytics.Filter{Range: all})
	assert.Len(t, got, 4)

	// Automation membership.
	got = analytics.FilterTrades(trades, automations, analytics.Filter{
		Range:         all,
		AutomationIDs: []string{"a1"},
	})
	require.Len(t, got, 2)

	// Channel membership is derived through the trade's automation; an
	// automation without a channel never matches a channel selection.
	got = analytics.FilterTrades(trades, automations, analytics.Filter{
		Range:       all,
		ProviderIDs: []string{"p1"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].ID)
	assert.Equal(t, "t4", got[1].ID)

	// All three conditions at once.
	today := analytics.ResolveRange(analytics.PeriodToday, nil, time.Date(2024, 6, 14, 18, 0, 0, 0, time.UTC))
	got = analytics.FilterTrades(trades, automations, analytics.Filter{
		Range:         today,
		AutomationIDs: []string{"a1", "a2"},
		ProviderIDs:   []string{"p1"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
}

func TestFilterSignals(t *testing.T) {
	all := analytics.Range{Start: time.Unix(0, 0), End: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	signals := []domain.ParsedSignal{
		{ID: "s1", AutomationID: "a1", ProviderID: "p1", ParsedAt: "2024-06-14T10:00:00Z"},
		{ID: "s2", AutomationID: "a2", ProviderID: "p2", ParsedAt: "2024-06-14T10:00:00Z"},
	}

	got := analytics.FilterSignals(signals, analytics.Filter{Range: all, ProviderIDs: []string{"p2"}})
	require.Len(t, got, 1)
	assert.Equal(t, "s2", got[0].ID)

	got = analytics.FilterSignals(signals, analytics.Filter{
		Range:         all,
		AutomationIDs: []string{"a1"},
		ProviderIDs:   []string{"p2"},
	})
	assert.Empty(t, got)
}

// Records with unparseable timestamps fall outside every range.
func TestFilterTrades_BadTimestampExcluded(t *testing.T) {
	all := analytics.Range{Start: time.Unix(0, 0), End: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	trades := []domain.Trade{closedTrade("bad", "a1", "not-a-time", 10)}
	assert.Empty(t, analytics.FilterTrades(trades, nil, analytics.Filter{Range: all}))
}
