package domain

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle flips between the two themes.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type Subscription struct {
	Plan      string `json:"plan"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at"`
}

type NotificationPrefs struct {
	Signals bool `json:"signals"`
	Trades  bool `json:"trades"`
	Errors  bool `json:"errors"`
}

type Preferences struct {
	Theme                Theme             `json:"theme"`
	Notifications        NotificationPrefs `json:"notifications"`
	DefaultExecutionMode ExecutionMode     `json:"default_execution_mode"`
}

// User is the account profile. There is no real auth backend; the profile
// is synthesized from fixture data at login with the supplied email.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Name         string       `json:"name"`
	Avatar       *string      `json:"avatar"`
	CreatedAt    string       `json:"created_at"`
	Subscription Subscription `json:"subscription"`
	Preferences  Preferences  `json:"preferences"`
}
