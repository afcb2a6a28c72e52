// Package login implements the login-state packets of protocol 765:
// authentication handshake and the login-success/disconnect exchange.
package login

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"emberd/internal/arena"
	"emberd/internal/protocol"
	"emberd/internal/wire"
)

// Packet ids, login state.
const (
	PacketIDLoginStart          int32 = 0x00 // serverbound
	PacketIDEncryptionResponse  int32 = 0x01 // serverbound
	PacketIDLoginPluginResponse int32 = 0x02 // serverbound
	PacketIDLoginAcknowledged   int32 = 0x03 // serverbound

	PacketIDDisconnect         int32 = 0x00 // clientbound
	PacketIDEncryptionRequest  int32 = 0x01 // clientbound
	PacketIDLoginSuccess       int32 = 0x02 // clientbound
	PacketIDSetCompression     int32 = 0x03 // clientbound
	PacketIDLoginPluginRequest int32 = 0x04 // clientbound
)

// LoginStart is the client's initial identity claim.
type LoginStart struct {
	Name []byte
	UUID uuid.UUID
}

// EncryptionResponse carries the client's AES-encrypted shared secret and
// verify token. The core spec has no authentication-server collaborator,
// so these bytes are read and otherwise unused.
type EncryptionResponse struct {
	SharedSecret []byte
	VerifyToken  []byte
}

// LoginPluginResponse answers a LoginPluginRequest; Data is nil when the
// client declined (the presence bool was false).
type LoginPluginResponse struct {
	MessageID int32
	Data      []byte
}

// LoginAcknowledged carries no fields; receiving it transitions the
// session from login to config.
type LoginAcknowledged struct{}

// ReadServerbound decodes whichever login-state serverbound packet fr
// names. Scratch byte strings (the claimed name, the encryption secret and
// verify token) are carved out of a rather than the heap; a caller that
// needs LoginStart.Name to outlive the current tick must copy it out
// before the next Reset.
func ReadServerbound(fr *wire.Frame, a *arena.Arena) (any, error) {
	switch fr.ID {
	case PacketIDLoginStart:
		name, err := wire.ReadStringArena(fr.Body, 16, a)
		if err != nil {
			return nil, err
		}
		id, err := wire.ReadUUID(fr.Body)
		if err != nil {
			return nil, err
		}
		return &LoginStart{Name: name, UUID: id}, nil
	case PacketIDEncryptionResponse:
		secret, err := wire.ReadStringArena(fr.Body, protocol.MaxStringLen, a)
		if err != nil {
			return nil, err
		}
		token, err := wire.ReadStringArena(fr.Body, protocol.MaxStringLen, a)
		if err != nil {
			return nil, err
		}
		return &EncryptionResponse{SharedSecret: secret, VerifyToken: token}, nil
	case PacketIDLoginPluginResponse:
		msgID, err := wire.ReadVarInt(fr.Body)
		if err != nil {
			return nil, err
		}
		present, err := wire.ReadBool(fr.Body)
		if err != nil {
			return nil, err
		}
		var data []byte
		if present {
			rest := make([]byte, fr.Body.Len())
			if _, err := io.ReadFull(fr.Body, rest); err != nil {
				return nil, err
			}
			data = rest
		}
		return &LoginPluginResponse{MessageID: msgID, Data: data}, nil
	case PacketIDLoginAcknowledged:
		return &LoginAcknowledged{}, nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", protocol.ErrUnknownPacket, fr.ID)
	}
}

// Disconnect carries a JSON chat-component reason, sent in login state
// before a LoginSuccess has been issued.
type Disconnect struct {
	ReasonJSON []byte
}

func (p *Disconnect) PacketID() int32 { return PacketIDDisconnect }

func (p *Disconnect) Encode(w io.Writer) error {
	return wire.WriteString(w, p.ReasonJSON)
}

// EncryptionRequest begins the vanilla auth handshake. The core spec never
// actually performs the Diffie-Hellman/session-server round trip (that is
// an external collaborator, per §1); this type exists so the packet shape
// is available to a caller that wires up online-mode support.
type EncryptionRequest struct {
	ServerID    []byte
	PublicKey   []byte
	VerifyToken []byte
}

func (p *EncryptionRequest) PacketID() int32 { return PacketIDEncryptionRequest }

func (p *EncryptionRequest) Encode(w io.Writer) error {
	if err := wire.WriteString(w, p.ServerID); err != nil {
		return err
	}
	if err := wire.WriteString(w, p.PublicKey); err != nil {
		return err
	}
	return wire.WriteString(w, p.VerifyToken)
}

// LoginSuccess completes a successful login. Encode always writes a
// property count of 0 (no skin/cape property list).
type LoginSuccess struct {
	UUID     uuid.UUID
	Username []byte
}

func (p *LoginSuccess) PacketID() int32 { return PacketIDLoginSuccess }

func (p *LoginSuccess) Encode(w io.Writer) error {
	if err := wire.WriteUUID(w, p.UUID); err != nil {
		return err
	}
	if err := wire.WriteString(w, p.Username); err != nil {
		return err
	}
	return wire.WriteVarInt(w, 0)
}

// SetCompression switches the connection into compressed-packet mode once
// acknowledged; the core spec does not implement compression itself, only
// the packet shape (network-compression-threshold in server.properties
// governs whether/when a real implementation would send this).
type SetCompression struct {
	Threshold int32
}

func (p *SetCompression) PacketID() int32 { return PacketIDSetCompression }

func (p *SetCompression) Encode(w io.Writer) error {
	return wire.WriteVarInt(w, p.Threshold)
}

// LoginPluginRequest asks the client a custom-channel question during
// login (e.g. forwarding a proxy's real player IP).
type LoginPluginRequest struct {
	MessageID int32
	Channel   []byte
	Data      []byte
}

func (p *LoginPluginRequest) PacketID() int32 { return PacketIDLoginPluginRequest }

func (p *LoginPluginRequest) Encode(w io.Writer) error {
	if err := wire.WriteVarInt(w, p.MessageID); err != nil {
		return err
	}
	if err := wire.WriteString(w, p.Channel); err != nil {
		return err
	}
	_, err := w.Write(p.Data)
	return err
}
