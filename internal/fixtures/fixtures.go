// Package fixtures holds the static seed data that stands in for a real
// backend. The JSON files are embedded at build time and loaded once at
// startup; they are the reset point for every collection outside the
// persistence allow-list.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/VipinKumar1310/autotrade/internal/domain"
)

//go:embed data/*.json
var files embed.FS

// Data is the full fixture set, one slice per collection plus the user
// profile template.
type Data struct {
	User          domain.User
	Providers     []domain.TelegramProvider
	Messages      []domain.TelegramMessage
	Brokers       []domain.Broker
	Automations   []domain.Automation
	Signals       []domain.ParsedSignal
	Trades        []domain.Trade
	Notifications []domain.Notification
}

// Load parses every embedded fixture file. An error here means the build
// shipped broken seed data and the process should not start.
func Load() (*Data, error) {
	var d Data
	if err := readJSON("data/user.json", &d.User); err != nil {
		return nil, err
	}
	if err := readJSON("data/telegram_providers.json", &d.Providers); err != nil {
		return nil, err
	}
	if err := readJSON("data/telegram_messages.json", &d.Messages); err != nil {
		return nil, err
	}
	if err := readJSON("data/brokers.json", &d.Brokers); err != nil {
		return nil, err
	}
	if err := readJSON("data/automations.json", &d.Automations); err != nil {
		return nil, err
	}
	if err := readJSON("data/parsed_signals.json", &d.Signals); err != nil {
		return nil, err
	}
	if err := readJSON("data/trades.json", &d.Trades); err != nil {
		return nil, err
	}
	if err := readJSON("data/notifications.json", &d.Notifications); err != nil {
		return nil, err
	}
	return &d, nil
}

func readJSON(name string, v interface{}) error {
	raw, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse fixture %s: %w", name, err)
	}
	return nil
}
