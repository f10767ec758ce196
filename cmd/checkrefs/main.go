// checkrefs lints the embedded fixture set for dangling references. The
// UI tolerates them at runtime, so this is the only place they surface.
package main

import (
	"fmt"
	"os"

	"github.com/VipinKumar1310/autotrade/internal/domain"
	"github.com/VipinKumar1310/autotrade/internal/fixtures"
)

func main() {
	fx, err := fixtures.Load()
	if err != nil {
		fmt.Printf("Failed to load fixtures: %v\n", err)
		os.Exit(1)
	}

	ids := func() map[string]map[string]bool {
		m := map[string]map[string]bool{
			"provider":   {},
			"broker":     {},
			"automation": {},
			"signal":     {},
			"trade":      {},
			"message":    {},
		}
		for _, p := range fx.Providers {
			m["provider"][p.ID] = true
		}
		for _, b := range fx.Brokers {
			m["broker"][b.ID] = true
		}
		for _, a := range fx.Automations {
			m["automation"][a.ID] = true
		}
		for _, s := range fx.Signals {
			m["signal"][s.ID] = true
		}
		for _, t := range fx.Trades {
			m["trade"][t.ID] = true
		}
		for _, msg := range fx.Messages {
			m["message"][msg.ID] = true
		}
		return m
	}()

	problems := 0
	check := func(kind, id, owner string) {
		if id != "" && !ids[kind][id] {
			fmt.Printf("dangling %s reference %q in %s\n", kind, id, owner)
			problems++
		}
	}

	for _, a := range fx.Automations {
		check("broker", a.BrokerID, "automation "+a.ID)
		if a.SignalSource == domain.SourceTelegram {
			check("provider", a.TelegramProviderID, "automation "+a.ID)
		}
	}
	for _, m := range fx.Messages {
		check("provider", m.ProviderID, "message "+m.ID)
		if m.ParsedSignalID != nil {
			check("signal", *m.ParsedSignalID, "message "+m.ID)
		}
	}
	for _, s := range fx.Signals {
		check("message", s.MessageID, "signal "+s.ID)
		check("provider", s.ProviderID, "signal "+s.ID)
		check("automation", s.AutomationID, "signal "+s.ID)
		if s.TradeID != nil {
			check("trade", *s.TradeID, "signal "+s.ID)
		}
	}
	for _, t := range fx.Trades {
		check("automation", t.AutomationID, "trade "+t.ID)
		check("broker", t.BrokerID, "trade "+t.ID)
		if t.SignalID != nil {
			check("signal", *t.SignalID, "trade "+t.ID)
		}
	}

	if problems > 0 {
		fmt.Printf("%d dangling reference(s)\n", problems)
		os.Exit(1)
	}
	fmt.Println("fixtures OK")
}
