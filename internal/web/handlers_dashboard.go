package web

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/VipinKumar1310/autotrade/internal/analytics"
	"github.com/VipinKumar1310/autotrade/internal/domain"
)

// handleDashboard resolves the query filters, narrows the trade and
// signal collections and returns the headline summary alongside the
// filtered records, newest first.
//
// Query: period=today|week|month|all|custom, start/end=YYYY-MM-DD for
// custom, automations/channels=comma-separated id lists.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	period := analytics.Period(q.Get("period"))
	if period == "" {
		period = analytics.PeriodAll
	}
	var custom *analytics.CustomRange
	if period == analytics.PeriodCustom {
		custom = &analytics.CustomRange{Start: q.Get("start"), End: q.Get("end")}
	}

	filter := analytics.Filter{
		Range:         analytics.ResolveRange(period, custom, time.Now()),
		AutomationIDs: splitIDs(q.Get("automations")),
		ProviderIDs:   splitIDs(q.Get("channels")),
	}

	automations := s.store.Automations()
	trades := analytics.FilterTrades(s.store.Trades(), automations, filter)
	signals := analytics.FilterSignals(s.store.Signals(), filter)

	sort.Slice(trades, func(i, j int) bool {
		ti, _ := time.Parse(time.RFC3339, trades[i].EntryTime)
		tj, _ := time.Parse(time.RFC3339, trades[j].EntryTime)
		return ti.After(tj)
	})
	sort.Slice(signals, func(i, j int) bool {
		ti, _ := time.Parse(time.RFC3339, signals[i].ParsedAt)
		tj, _ := time.Parse(time.RFC3339, signals[j].ParsedAt)
		return ti.After(tj)
	})

	s.writeJSON(w, http.StatusOK, dashboardResponse{
		Summary: analytics.Summarize(trades, signals),
		Trades:  trades,
		Signals: signals,
	})
}

type dashboardResponse struct {
	Summary analytics.Summary     `json:"summary"`
	Trades  []domain.Trade        `json:"trades"`
	Signals []domain.ParsedSignal `json:"signals"`
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
