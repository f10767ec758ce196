package domain

type ExecutionMode string

const (
	ModeManual   ExecutionMode = "manual"
	ModeOneClick ExecutionMode = "one-click"
	ModeAuto     ExecutionMode = "auto"
)

type AutomationStatus string

const (
	StatusRunning AutomationStatus = "running"
	StatusPaused  AutomationStatus = "paused"
	StatusError   AutomationStatus = "error"
)

type SignalSource string

const (
	SourceTelegram       SignalSource = "telegram"
	SourceMarketStrategy SignalSource = "market_strategy"
)

type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

type AutomationRules struct {
	Quantity           float64     `json:"quantity"`
	MaxQuantity        float64     `json:"max_quantity"`
	StopLossPercent    float64     `json:"stop_loss_percent"`
	MaxTradesPerDay    int         `json:"max_trades_per_day"`
	AllowedInstruments []string    `json:"allowed_instruments"`
	AllowedDirections  []Direction `json:"allowed_directions"`
}

type MarketStrategyRule struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`      // price, volume, rsi, macd, moving_average, time
	Condition  string  `json:"condition"` // above, below, crosses_above, crosses_below, equals
	Value      float64 `json:"value"`
	Instrument string  `json:"instrument,omitempty"`
	Timeframe  string  `json:"timeframe,omitempty"`
	Enabled    bool    `json:"enabled"`
}

type MarketStrategyRules struct {
	Rules            []MarketStrategyRule `json:"rules"`
	Instruments      []string             `json:"instruments"`
	Direction        string               `json:"direction"` // BUY, SELL or BOTH
	WebsocketEnabled bool                 `json:"websocket_enabled"`
}

type AutomationOptions struct {
	AIValidation          bool `json:"ai_validation"`
	DelayExecutionSeconds int  `json:"delay_execution_seconds"`
	RequireConfirmation   bool `json:"require_confirmation"`
}

type AutomationStats struct {
	WinRate   float64 `json:"win_rate"`
	TotalPnL  float64 `json:"total_pnl"`
	AvgProfit float64 `json:"avg_profit"`
	AvgLoss   float64 `json:"avg_loss"`
}

// Automation binds a signal source to a broker with execution rules.
// TelegramProviderID and BrokerID are soft references; a dangling id is
// tolerated and renders as unknown on read.
type Automation struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	SignalSource        SignalSource         `json:"signal_source"`
	TelegramProviderID  string               `json:"telegram_provider_id,omitempty"`
	BrokerID            string               `json:"broker_id"`
	ExecutionMode       ExecutionMode        `json:"execution_mode"`
	Status              AutomationStatus     `json:"status"`
	CreatedAt           string               `json:"created_at"`
	LastSignalAt        string               `json:"last_signal_at"`
	TradesToday         int                  `json:"trades_today"`
	TotalTrades         int                  `json:"total_trades"`
	ErrorMessage        string               `json:"error_message,omitempty"`
	Rules               AutomationRules      `json:"rules"`
	MarketStrategyRules *MarketStrategyRules `json:"market_strategy_rules,omitempty"`
	Options             AutomationOptions    `json:"options"`
	Stats               AutomationStats      `json:"stats"`
}

// AutomationDraft is the user-supplied part of a new automation. ID,
// CreatedAt and Stats are assigned by the store on create.
type AutomationDraft struct {
	Name                string               `json:"name"`
	SignalSource        SignalSource         `json:"signal_source"`
	TelegramProviderID  string               `json:"telegram_provider_id,omitempty"`
	BrokerID            string               `json:"broker_id"`
	ExecutionMode       ExecutionMode        `json:"execution_mode"`
	Status              AutomationStatus     `json:"status"`
	LastSignalAt        string               `json:"last_signal_at"`
	TradesToday         int                  `json:"trades_today"`
	TotalTrades         int                  `json:"total_trades"`
	Rules               AutomationRules      `json:"rules"`
	MarketStrategyRules *MarketStrategyRules `json:"market_strategy_rules,omitempty"`
	Options             AutomationOptions    `json:"options"`
}

// AutomationUpdate carries a partial edit. Nil fields are left untouched;
// Rules and Options merge field-wise into the existing sub-objects.
type AutomationUpdate struct {
	Name                *string              `json:"name,omitempty"`
	SignalSource        *SignalSource        `json:"signal_source,omitempty"`
	TelegramProviderID  *string              `json:"telegram_provider_id,omitempty"`
	BrokerID            *string              `json:"broker_id,omitempty"`
	ExecutionMode       *ExecutionMode       `json:"execution_mode,omitempty"`
	Status              *AutomationStatus    `json:"status,omitempty"`
	LastSignalAt        *string              `json:"last_signal_at,omitempty"`
	TradesToday         *int                 `json:"trades_today,omitempty"`
	TotalTrades         *int                 `json:"total_trades,omitempty"`
	ErrorMessage        *string              `json:"error_message,omitempty"`
	Rules               *RulesUpdate         `json:"rules,omitempty"`
	MarketStrategyRules *MarketStrategyRules `json:"market_strategy_rules,omitempty"`
	Options             *OptionsUpdate       `json:"options,omitempty"`
}

type RulesUpdate struct {
	Quantity           *float64    `json:"quantity,omitempty"`
	MaxQuantity        *float64    `json:"max_quantity,omitempty"`
	StopLossPercent    *float64    `json:"stop_loss_percent,omitempty"`
	MaxTradesPerDay    *int        `json:"max_trades_per_day,omitempty"`
	AllowedInstruments []string    `json:"allowed_instruments,omitempty"`
	AllowedDirections  []Direction `json:"allowed_directions,omitempty"`
}

type OptionsUpdate struct {
	AIValidation          *bool `json:"ai_validation,omitempty"`
	DelayExecutionSeconds *int  `json:"delay_execution_seconds,omitempty"`
	RequireConfirmation   *bool `json:"require_confirmation,omitempty"`
}
