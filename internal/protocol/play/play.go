// Package play implements the play-state packet dispatch table of
// protocol 765. The core spec leaves play state unimplemented (world
// simulation, entities, and chunk streaming are external collaborators,
// per §1); both the serverbound and clientbound tables are empty, so every
// packet id is unknown.
package play

import (
	"fmt"

	"emberd/internal/protocol"
	"emberd/internal/wire"
)

// ReadServerbound always fails with ErrUnknownPacket: play state has no
// implemented serverbound packets in the core.
func ReadServerbound(fr *wire.Frame) (any, error) {
	return nil, fmt.Errorf("%w: 0x%02x", protocol.ErrUnknownPacket, fr.ID)
}
