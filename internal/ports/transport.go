package ports

// Transport is the narrow contract the controller holds against the Steam
// session library. Calls are fire-and-forget; outcomes arrive as events on
// the single-consumer channel returned by Events.
type Transport interface {
	// Connect starts establishing a connection to the Steam network.
	Connect()
	// Disconnect tears the connection down; a DisconnectedEvent follows.
	Disconnect()
	// LogOn authenticates the session. When authToken is non-empty it is
	// used instead of the password.
	LogOn(username, password, deviceName, authToken string)
	// SetGamesPlayed announces the played app set; an empty list stops play.
	SetGamesPlayed(appIDs []uint32)
	// Events returns the transport's event stream. The channel is closed
	// when the transport shuts down for good.
	Events() <-chan Event
}

// Event is one of the *Event types below.
type Event any

type ConnectedEvent struct{}

type DisconnectedEvent struct{}

type LoggedOnEvent struct {
	SteamID64 uint64
}

type LogOnFailedEvent struct {
	Result string
}

type LoggedOffEvent struct {
	Result string
	// Replaced is set when the logoff was caused by a login elsewhere or a
	// replaced logon session.
	Replaced bool
}

// AuthTokenEvent delivers a reusable credential issued by the network after
// a successful password logon. Cached for the process lifetime and used for
// subsequent logons.
type AuthTokenEvent struct {
	Token string
}

// WebSessionEvent delivers the access token for the community web session,
// used to authenticate badge page scraping.
type WebSessionEvent struct {
	Token string
}

// PlayingSessionEvent reports whether another active session currently
// blocks this account from playing.
type PlayingSessionEvent struct {
	Blocked bool
}
