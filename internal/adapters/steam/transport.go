// Package steam adapts github.com/Philipp15b/go-steam/v3 to the transport
// contract the session controller consumes. The wire protocol, encryption,
// and CM server discovery all live in the library; this adapter only maps
// library events onto the port's event taxonomy and owns the one protobuf
// message the core needs to send itself.
package steam

import (
	steamclient "github.com/Philipp15b/go-steam/v3"
	"github.com/Philipp15b/go-steam/v3/protocol"
	"github.com/Philipp15b/go-steam/v3/protocol/protobuf"
	"github.com/Philipp15b/go-steam/v3/protocol/steamlang"
	"google.golang.org/protobuf/proto"

	"github.com/bnema/steambooster/internal/ports"
)

const eventBuffer = 32

type Transport struct {
	client *steamclient.Client
	log    ports.Logger
	events chan ports.Event
}

var _ ports.Transport = (*Transport)(nil)

// InitDirectory seeds the CM server list from the Steam directory service.
// Called once per process before any transport connects; a failure only
// means the library falls back to its built-in server list.
func InitDirectory() error {
	return steamclient.InitializeSteamDirectory()
}

func NewTransport(log ports.Logger) *Transport {
	client := steamclient.NewClient()

	t := &Transport{
		client: client,
		log:    log,
		events: make(chan ports.Event, eventBuffer),
	}

	client.RegisterPacketHandler(playingSessionHandler{transport: t})
	go t.forward()

	return t
}

func (t *Transport) Connect() {
	t.client.Connect()
}

func (t *Transport) Disconnect() {
	t.client.Disconnect()
}

// LogOn authenticates with either a password or a previously issued login
// key. The device name has no slot in the logon message, so it is only used
// for local bookkeeping.
func (t *Transport) LogOn(username, password, _, authToken string) {
	details := &steamclient.LogOnDetails{
		Username:               username,
		ShouldRememberPassword: true,
	}

	if authToken != "" {
		details.LoginKey = authToken
	} else {
		details.Password = password
	}

	t.client.Auth.LogOn(details)
}

func (t *Transport) SetGamesPlayed(appIDs []uint32) {
	games := make([]*protobuf.CMsgClientGamesPlayed_GamePlayed, 0, len(appIDs))
	for _, appID := range appIDs {
		games = append(games, &protobuf.CMsgClientGamesPlayed_GamePlayed{
			GameId: proto.Uint64(uint64(appID)),
		})
	}

	t.client.Write(protocol.NewClientMsgProtobuf(steamlang.EMsg_ClientGamesPlayed, &protobuf.CMsgClientGamesPlayed{
		GamesPlayed: games,
	}))
}

func (t *Transport) Events() <-chan ports.Event {
	return t.events
}

// forward translates library events into port events. It is the only writer
// of the outbound channel and closes it when the library stream ends.
func (t *Transport) forward() {
	defer close(t.events)

	for event := range t.client.Events() {
		switch ev := event.(type) {
		case *steamclient.ConnectedEvent:
			t.events <- ports.ConnectedEvent{}
		case *steamclient.LoggedOnEvent:
			// Kick off the community web session so badge scraping can use
			// the owner view; the token arrives as a WebLoggedOnEvent.
			t.client.Web.LogOn()
			t.events <- ports.LoggedOnEvent{SteamID64: uint64(t.client.SteamId())}
		case *steamclient.LogOnFailedEvent:
			t.events <- ports.LogOnFailedEvent{Result: ev.Result.String()}
		case *steamclient.LoginKeyEvent:
			t.events <- ports.AuthTokenEvent{Token: ev.LoginKey}
		case *steamclient.WebLoggedOnEvent:
			t.events <- ports.WebSessionEvent{Token: t.client.Web.SteamLoginSecure}
		case *steamclient.LoggedOffEvent:
			t.events <- ports.LoggedOffEvent{
				Result: ev.Result.String(),
				Replaced: ev.Result == steamlang.EResult_LogonSessionReplaced ||
					ev.Result == steamlang.EResult_LoggedInElsewhere,
			}
		case *steamclient.DisconnectedEvent:
			t.events <- ports.DisconnectedEvent{}
		case steamclient.FatalErrorEvent:
			// The library disconnects after fatal errors; the
			// DisconnectedEvent that follows drives recovery.
			t.log.Error("steam client fatal error: %v", ev)
		case error:
			t.log.Debug("steam client error: %v", ev)
		}
	}
}
