package steam

import (
	"github.com/Philipp15b/go-steam/v3/protocol"
	"github.com/Philipp15b/go-steam/v3/protocol/protobuf"
	"github.com/Philipp15b/go-steam/v3/protocol/steamlang"

	"github.com/bnema/steambooster/internal/ports"
)

// playingSessionHandler surfaces ClientPlayingSessionState packets, which
// the library does not expose as events. They tell us whether another
// active session elsewhere blocks this account from playing.
type playingSessionHandler struct {
	transport *Transport
}

func (h playingSessionHandler) HandlePacket(packet *protocol.Packet) {
	if packet.EMsg != steamlang.EMsg_ClientPlayingSessionState {
		return
	}

	body := new(protobuf.CMsgClientPlayingSessionState)
	packet.ReadProtoMsg(body)

	h.transport.events <- ports.PlayingSessionEvent{Blocked: body.GetPlayingBlocked()}
}
