// Package analytics computes the dashboard's aggregate figures from the
// trade and signal collections. Everything here is pure: filters and
// summaries are recomputed from snapshots on every request and nothing is
// cached or persisted.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/VipinKumar1310/autotrade/internal/domain"
)

type Period string

const (
	PeriodToday  Period = "today"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodAll    Period = "all"
	PeriodCustom Period = "custom"
)

type Range struct {
	Start time.Time
	End   time.Time
}

// CustomRange is a user-chosen inclusive day range, dates in YYYY-MM-DD.
type CustomRange struct {
	Start string
	End   string
}

// ResolveRange maps a named period to concrete instants: "today" is local
// midnight to now, "week" and "month" roll back from now, "custom" spans
// whole days inclusive, "all" starts at the epoch. An unknown period
// behaves like "all".
func ResolveRange(period Period, custom *CustomRange, now time.Time) Range {
	switch period {
	case PeriodToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: now}
	case PeriodWeek:
		return Range{Start: now.AddDate(0, 0, -7), End: now}
	case PeriodMonth:
		return Range{Start: now.AddDate(0, -1, 0), End: now}
	case PeriodCustom:
		if custom != nil {
			start, serr := time.ParseInLocation("2006-01-02", custom.Start, now.Location())
			end, eerr := time.ParseInLocation("2006-01-02", custom.End, now.Location())
			if serr == nil && eerr == nil {
				// End-of-day ceiling so the end date is inclusive.
				end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
				return Range{Start: start, End: end}
			}
		}
		return Range{Start: now, End: now}
	}
	return Range{Start: time.Unix(0, 0), End: now}
}

func (r Range) contains(ts string) bool {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return false
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

// Filter is conjunctive. An empty id selection means no constraint for
// that category, not "exclude all".
type Filter struct {
	Range         Range
	AutomationIDs []string
	ProviderIDs   []string
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// FilterTrades keeps trades inside the range whose automation is selected
// and whose channel, derived through the automation's provider id, is
// selected.
func FilterTrades(trades []domain.Trade, automations []domain.Automation, f Filter) []domain.Trade {
	providerOf := make(map[string]string, len(automations))
	for _, a := range automations {
		providerOf[a.ID] = a.TelegramProviderID
	}

	var out []domain.Trade
	for _, tr := range trades {
		if !f.Range.contains(tr.EntryTime) {
			continue
		}
		if len(f.AutomationIDs) > 0 && !contains(f.AutomationIDs, tr.AutomationID) {
			continue
		}
		if len(f.ProviderIDs) > 0 {
			provider, ok := providerOf[tr.AutomationID]
			if !ok || provider == "" || !contains(f.ProviderIDs, provider) {
				continue
			}
		}
		out = append(out, tr)
	}
	return out
}

// FilterSignals keeps signals inside the range matching the selected
// automations and channels. Signals carry their provider id directly.
func FilterSignals(signals []domain.ParsedSignal, f Filter) []domain.ParsedSignal {
	var out []domain.ParsedSignal
	for _, sig := range signals {
		if !f.Range.contains(sig.ParsedAt) {
			continue
		}
		if len(f.AutomationIDs) > 0 && !contains(f.AutomationIDs, sig.AutomationID) {
			continue
		}
		if len(f.ProviderIDs) > 0 && !contains(f.ProviderIDs, sig.ProviderID) {
			continue
		}
		out = append(out, sig)
	}
	return out
}

// Summary holds the dashboard headline figures over a filtered set.
// TotalTrades counts closed trades only; open positions are reported
// separately.
type Summary struct {
	TotalPnL        float64 `json:"total_pnl"`
	WinRate         float64 `json:"win_rate"`
	TotalTrades     int     `json:"total_trades"`
	OpenTrades      int     `json:"open_trades"`
	WinningTrades   int     `json:"winning_trades"`
	LosingTrades    int     `json:"losing_trades"`
	TotalSignals    int     `json:"total_signals"`
	ExecutedSignals int     `json:"executed_signals"`
	SkippedSignals  int     `json:"skipped_signals"`
	PendingSignals  int     `json:"pending_signals"`
}

// Summarize computes realized P&L over closed trades with exact decimal
// sums, win rate as a percentage of closed trades (zero when none) and
// signal counts by execution status.
func Summarize(trades []domain.Trade, signals []domain.ParsedSignal) Summary {
	var sum Summary
	totalPnL := decimal.Zero

	for _, tr := range trades {
		if tr.Status == domain.TradeOpen {
			sum.OpenTrades++
			continue
		}
		sum.TotalTrades++
		totalPnL = totalPnL.Add(decimal.NewFromFloat(tr.PnL))
		switch {
		case tr.PnL > 0:
			sum.WinningTrades++
		case tr.PnL < 0:
			sum.LosingTrades++
		}
	}
	sum.TotalPnL = totalPnL.InexactFloat64()
	if sum.TotalTrades > 0 {
		sum.WinRate = float64(sum.WinningTrades) / float64(sum.TotalTrades) * 100
	}

	sum.TotalSignals = len(signals)
	for _, sig := range signals {
		switch sig.ExecutionStatus {
		case domain.ExecutionExecuted:
			sum.ExecutedSignals++
		case domain.ExecutionSkipped:
			sum.SkippedSignals++
		case domain.ExecutionPending, domain.ExecutionPendingManual:
			sum.PendingSignals++
		}
	}
	return sum
}
