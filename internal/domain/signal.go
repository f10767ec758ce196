package domain

type ExecutionStatus string

const (
	ExecutionExecuted      ExecutionStatus = "executed"
	ExecutionSkipped       ExecutionStatus = "skipped"
	ExecutionPendingManual ExecutionStatus = "pending_manual"
	ExecutionPending       ExecutionStatus = "pending"
)

type EntryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ParsedSignal is a trade idea extracted from a channel message.
type ParsedSignal struct {
	ID              string          `json:"id"`
	MessageID       string          `json:"message_id"`
	ProviderID      string          `json:"provider_id"`
	AutomationID    string          `json:"automation_id"`
	Instrument      string          `json:"instrument"`
	Direction       Direction       `json:"direction"`
	EntryPrice      float64         `json:"entry_price"`
	EntryRange      EntryRange      `json:"entry_range"`
	StopLoss        float64         `json:"stop_loss"`
	Targets         []float64       `json:"targets"`
	ParsedAt        string          `json:"parsed_at"`
	Confidence      float64         `json:"confidence"`
	ExecutionStatus ExecutionStatus `json:"execution_status"`
	SkipReason      string          `json:"skip_reason,omitempty"`
	TradeID         *string         `json:"trade_id"`
}
