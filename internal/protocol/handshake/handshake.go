// Package handshake implements the handshake-state packets of protocol 765:
// serverbound only, the single packet that selects the next state.
package handshake

import (
	"fmt"

	"emberd/internal/arena"
	"emberd/internal/protocol"
	"emberd/internal/wire"
)

// Packet ids, handshake state, serverbound.
const (
	PacketIDHandshake int32 = 0x00
)

// NextState is the state a handshake packet asks to transition into.
type NextState int32

const (
	NextStateStatus NextState = 1
	NextStateLogin  NextState = 2
)

// Handshake is the sole serverbound handshake-state packet.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   []byte
	ServerPort      uint16
	NextState       NextState
}

// Read decodes a Handshake packet from fr, whose ID must already be
// PacketIDHandshake. The server-address string is carved out of a, since
// it is never retained past the handshake tick.
func Read(fr *wire.Frame, a *arena.Arena) (*Handshake, error) {
	if fr.ID != PacketIDHandshake {
		return nil, fmt.Errorf("%w: 0x%02x", protocol.ErrUnknownPacket, fr.ID)
	}
	version, err := wire.ReadVarInt(fr.Body)
	if err != nil {
		return nil, err
	}
	addr, err := wire.ReadStringArena(fr.Body, protocol.MaxStringLen, a)
	if err != nil {
		return nil, err
	}
	port, err := wire.ReadUint16(fr.Body)
	if err != nil {
		return nil, err
	}
	next, err := wire.ReadVarInt(fr.Body)
	if err != nil {
		return nil, err
	}
	return &Handshake{
		ProtocolVersion: version,
		ServerAddress:   addr,
		ServerPort:      port,
		NextState:       NextState(next),
	}, nil
}
