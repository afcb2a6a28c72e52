// Package status implements the status-state packets of protocol 765: the
// server-list ping exchange.
package status

import (
	"fmt"
	"io"

	"emberd/internal/protocol"
	"emberd/internal/wire"
)

// Packet ids, status state.
const (
	PacketIDStatusRequest int32 = 0x00 // serverbound
	PacketIDPingRequest   int32 = 0x01 // serverbound

	PacketIDStatusResponse int32 = 0x00 // clientbound
	PacketIDPingResponse   int32 = 0x01 // clientbound
)

// StatusRequest carries no fields.
type StatusRequest struct{}

// PingRequest echoes an opaque payload back in a PingResponse.
type PingRequest struct {
	Payload int64
}

// ReadServerbound decodes whichever status-state serverbound packet fr
// names.
func ReadServerbound(fr *wire.Frame) (any, error) {
	switch fr.ID {
	case PacketIDStatusRequest:
		return &StatusRequest{}, nil
	case PacketIDPingRequest:
		payload, err := wire.ReadInt64(fr.Body)
		if err != nil {
			return nil, err
		}
		return &PingRequest{Payload: payload}, nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", protocol.ErrUnknownPacket, fr.ID)
	}
}

// StatusResponse carries the JSON status document vanilla clients render
// in the multiplayer server list.
type StatusResponse struct {
	JSON []byte
}

func (p *StatusResponse) PacketID() int32 { return PacketIDStatusResponse }

func (p *StatusResponse) Encode(w io.Writer) error {
	return wire.WriteString(w, p.JSON)
}

// PingResponse echoes the PingRequest payload verbatim.
type PingResponse struct {
	Payload int64
}

func (p *PingResponse) PacketID() int32 { return PacketIDPingResponse }

func (p *PingResponse) Encode(w io.Writer) error {
	return wire.WriteInt64(w, p.Payload)
}

// Document is the JSON shape of a StatusResponse's payload:
// { version:{name,protocol}, players:{max,online}, description:{text}, favicon }
type Document struct {
	Version     VersionInfo `json:"version"`
	Players     PlayersInfo `json:"players"`
	Description Description `json:"description"`
	Favicon     string      `json:"favicon,omitempty"`
}

type VersionInfo struct {
	Name     string `json:"name"`
	Protocol int    `json:"protocol"`
}

type PlayersInfo struct {
	Max    int `json:"max"`
	Online int `json:"online"`
}

type Description struct {
	Text string `json:"text"`
}
