package domain

type NotificationType string

const (
	NotifySignalDetected   NotificationType = "signal_detected"
	NotifyTradeExecuted    NotificationType = "trade_executed"
	NotifyTradeClosed      NotificationType = "trade_closed"
	NotifySignalSkipped    NotificationType = "signal_skipped"
	NotifyManualRequired   NotificationType = "manual_required"
	NotifyError            NotificationType = "error"
	NotifyMessageEdited    NotificationType = "message_edited"
	NotifyMessageDeleted   NotificationType = "message_deleted"
	NotifyAutomationPaused NotificationType = "automation_paused"
)

// Notification is a user-facing event record. Only the Read flag is
// mutable after load.
type Notification struct {
	ID             string           `json:"id"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	Timestamp      string           `json:"timestamp"`
	Read           bool             `json:"read"`
	AutomationID   string           `json:"automation_id,omitempty"`
	SignalID       string           `json:"signal_id,omitempty"`
	TradeID        string           `json:"trade_id,omitempty"`
	ActionRequired bool             `json:"action_required"`
}
