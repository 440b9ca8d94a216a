package domain

// SessionState is the lifecycle position of one account's connection to the
// Steam network. Exactly one live value exists per account and all
// transitions are driven by transport events.
type SessionState int

const (
	StateDisconnected SessionState = iota
	StateConnected
	StateAuthPending
	StateLoggedOn
	StatePlayingBlocked
	StateLoggedOff
)

func (s SessionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateAuthPending:
		return "auth-pending"
	case StateLoggedOn:
		return "logged-on"
	case StatePlayingBlocked:
		return "playing-blocked"
	case StateLoggedOff:
		return "logged-off"
	default:
		return "unknown"
	}
}
