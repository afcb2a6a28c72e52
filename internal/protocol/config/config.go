// Package config implements the configuration-state packets of protocol
// 765 that the core server needs: only the clientbound disconnect, since
// serverbound configuration packets are not implemented in the core
// (spec §4.6 - config's own acknowledgement/plugin-message exchange is an
// out-of-scope concern for this implementation).
package config

import (
	"fmt"
	"io"

	"emberd/internal/protocol"
	"emberd/internal/wire"
)

// PacketIDDisconnect is the configuration-state clientbound disconnect id.
const PacketIDDisconnect int32 = 0x01

// Disconnect carries a JSON chat-component reason, sent in config state.
type Disconnect struct {
	ReasonJSON []byte
}

func (p *Disconnect) PacketID() int32 { return PacketIDDisconnect }

func (p *Disconnect) Encode(w io.Writer) error {
	return wire.WriteString(w, p.ReasonJSON)
}

// ReadServerbound always fails: no configuration-state serverbound packet
// is implemented in the core, so any incoming frame is unknown.
func ReadServerbound(fr *wire.Frame) (any, error) {
	return nil, fmt.Errorf("%w: 0x%02x", protocol.ErrUnknownPacket, fr.ID)
}
