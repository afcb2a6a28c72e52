// Package protocol implements the typed packet layer of Minecraft
// protocol 765 (game version 1.20.4): for each of the five connection
// states, sum types of serverbound and clientbound packets with
// length-framed read/write, per spec §4.6.
package protocol

import (
	"bytes"
	"errors"
	"io"

	"emberd/internal/wire"
)

// Version is the wire protocol version this server implements. No other
// protocol version is supported (spec Non-goals).
const Version = 765

// GameVersion is the human-readable game version string matching Version.
const GameVersion = "1.20.4"

// LegacySentinel is the pre-Netty "legacy" server list ping marker: when
// the very first byte of a handshake-state connection is this value rather
// than a VarInt frame length, the connection is a legacy client and must
// be closed without a reply.
const LegacySentinel byte = 0xFE

// State is one of the five protocol states governing which packet
// identifiers are valid and how they decode.
type State int

const (
	StateHandshake State = iota
	StateStatus
	StateLogin
	StateConfig
	StatePlay
)

func (s State) String() string {
	switch s {
	case StateHandshake:
		return "handshake"
	case StateStatus:
		return "status"
	case StateLogin:
		return "login"
	case StateConfig:
		return "config"
	case StatePlay:
		return "play"
	default:
		return "unknown"
	}
}

// ErrUnknownPacket is returned when a frame's packet id has no decoder
// registered for the current state.
var ErrUnknownPacket = errors.New("protocol: unknown packet id for state")

// MaxStringLen bounds incoming length-prefixed strings: 32767 UTF-16 code
// units can take up to 3 UTF-8 bytes each, plus a trailing null-terminator
// allowance vanilla itself reserves (32767*3 + 3), matching the vanilla
// server's own cap.
const MaxStringLen = 32767*3 + 3

// ClientboundPacket is implemented by every clientbound packet type across
// all states: a fixed packet id and a payload encoder.
type ClientboundPacket interface {
	PacketID() int32
	Encode(w io.Writer) error
}

// WriteClientbound frames and writes a single clientbound packet: the
// packet's payload is encoded once to compute its size, then the whole
// frame (length, id, payload) is written as one call, never coalesced
// with any other packet.
func WriteClientbound(w io.Writer, p ClientboundPacket) error {
	var payload bytes.Buffer
	if err := p.Encode(&payload); err != nil {
		return err
	}
	return wire.WriteFrame(w, p.PacketID(), payload.Bytes())
}
