package domain

type TradeStatus string

const (
	TradeOpen   TradeStatus = "open"
	TradeClosed TradeStatus = "closed"
)

type ExitReason string

const (
	ExitTarget1  ExitReason = "target_1"
	ExitTarget2  ExitReason = "target_2"
	ExitTarget3  ExitReason = "target_3"
	ExitStopLoss ExitReason = "stop_loss"
	ExitManual   ExitReason = "manual"
)

// Trade is a realized or open position. CurrentPrice stands in for a live
// quote on open positions; PnL on open trades is unrealized.
type Trade struct {
	ID            string      `json:"id"`
	SignalID      *string     `json:"signal_id"`
	AutomationID  string      `json:"automation_id"`
	Instrument    string      `json:"instrument"`
	Direction     Direction   `json:"direction"`
	Quantity      float64     `json:"quantity"`
	EntryPrice    float64     `json:"entry_price"`
	EntryTime     string      `json:"entry_time"`
	CurrentPrice  *float64    `json:"current_price,omitempty"`
	ExitPrice     *float64    `json:"exit_price"`
	ExitTime      *string     `json:"exit_time"`
	ExitReason    *ExitReason `json:"exit_reason"`
	StopLoss      float64     `json:"stop_loss"`
	Targets       []float64   `json:"targets,omitempty"`
	TargetHit     int         `json:"target_hit"`
	PnL           float64     `json:"pnl"`
	PnLPercent    float64     `json:"pnl_percent"`
	Status        TradeStatus `json:"status"`
	BrokerOrderID string      `json:"broker_order_id"`
	BrokerID      string      `json:"broker_id"`
	Note          string      `json:"note,omitempty"`
}
