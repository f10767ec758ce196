package domain

// TelegramProvider is a signal source channel.
type TelegramProvider struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Username    string   `json:"username"`
	Description string   `json:"description"`
	Subscribers int      `json:"subscribers"`
	Connected   bool     `json:"connected"`
	ConnectedAt *string  `json:"connected_at"`
	SignalCount int      `json:"signal_count"`
	Accuracy    *float64 `json:"accuracy"`
	AvatarColor string   `json:"avatar_color"`
}

type MessageTag string

const (
	TagSignalDetected MessageTag = "SIGNAL_DETECTED"
	TagParsed         MessageTag = "PARSED"
	TagTradeExecuted  MessageTag = "TRADE_EXECUTED"
	TagTradeSkipped   MessageTag = "TRADE_SKIPPED"
	TagMessageEdited  MessageTag = "MESSAGE_EDITED"
	TagMessageDeleted MessageTag = "MESSAGE_DELETED"
)

// TelegramMessage is a raw channel message. Immutable once loaded;
// ParsedSignalID links to the signal extracted from it, if any.
type TelegramMessage struct {
	ID             string       `json:"id"`
	ProviderID     string       `json:"provider_id"`
	Text           string       `json:"text"`
	Timestamp      string       `json:"timestamp"`
	EditedAt       *string      `json:"edited_at"`
	DeletedAt      *string      `json:"deleted_at"`
	ParsedSignalID *string      `json:"parsed_signal_id"`
	Tags           []MessageTag `json:"tags"`
}
