package domain

type BrokerStatus string

const (
	BrokerActive       BrokerStatus = "active"
	BrokerDisconnected BrokerStatus = "disconnected"
	BrokerError        BrokerStatus = "error"
)

// Broker is an execution venue.
type Broker struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Code            string       `json:"code"`
	Connected       bool         `json:"connected"`
	ConnectedAt     *string      `json:"connected_at"`
	AccountID       *string      `json:"account_id"`
	MarginAvailable *float64     `json:"margin_available"`
	MarginUsed      *float64     `json:"margin_used"`
	Status          BrokerStatus `json:"status"`
	Supports        []string     `json:"supports"`
	LogoColor       string       `json:"logo_color"`
}
