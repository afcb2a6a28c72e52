// Package session implements the per-connection protocol state machine
// (§4.7): handshake -> status -> login -> config -> play, with an
// arena-scoped scratch allocator reset between packets.
package session

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/google/uuid"

	"emberd/internal/arena"
	"emberd/internal/protocol"
	"emberd/internal/protocol/config"
	"emberd/internal/protocol/handshake"
	"emberd/internal/protocol/login"
	"emberd/internal/protocol/play"
	"emberd/internal/protocol/status"
	"emberd/internal/wire"
)

// MaxFrameLen bounds any single incoming frame, guarding against a
// corrupt or hostile declared length causing an unbounded allocation.
const MaxFrameLen = 1 << 20

// MaxNameLen is the vanilla player-name cap.
const MaxNameLen = 16

// Sentinel errors distinguishing the "intent" taxonomy (§7) from genuine
// transport/framing/protocol failures. Callers use errors.Is to decide
// whether a Run/Tick failure should be logged as an error or treated as a
// quiet, expected termination.
var (
	// ErrDisconnected marks a session-initiated or peer-acknowledged
	// graceful close (e.g. after a status ping-response, or an explicit
	// disconnect write).
	ErrDisconnected = errors.New("session: disconnected")
	// ErrLegacyClient marks the pre-Netty legacy server-list-ping
	// sentinel: the connection is closed with no reply.
	ErrLegacyClient = errors.New("session: legacy client")
)

// Registrar is the subset of the server orchestrator's client registry a
// Session needs: registration on reaching config, removal on disconnect.
// Kept as an interface (rather than importing the orchestrator package
// directly) so session has no dependency on mcserver and cannot form an
// import cycle with it.
type Registrar interface {
	Register(id uuid.UUID, s *Session)
	Unregister(id uuid.UUID)
}

// StatusProvider builds the current status-response JSON document,
// reflecting whatever MOTD/player-count/favicon state the server
// currently holds.
type StatusProvider interface {
	StatusJSON() ([]byte, error)
}

// Session is one client connection's protocol state. Per spec, its
// scratch arena and socket are touched only by whichever single worker
// currently owns its tick; there is no internal locking.
type Session struct {
	conn   net.Conn
	r      *bufio.Reader
	arena  *arena.Arena
	logger *slog.Logger

	registrar Registrar
	status    StatusProvider

	state      protocol.State
	name       []byte
	id         uuid.UUID
	registered bool
}

// New wraps conn as a fresh session in the initial handshake state.
func New(conn net.Conn, registrar Registrar, status StatusProvider, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("remote", conn.RemoteAddr().String())
	logger.Debug("session connected")
	return &Session{
		conn:      conn,
		r:         bufio.NewReader(conn),
		arena:     arena.New(256),
		logger:    logger,
		registrar: registrar,
		status:    status,
		state:     protocol.StateHandshake,
	}
}

// State returns the session's current protocol state.
func (s *Session) State() protocol.State { return s.state }

// ID returns the session's identifier. Only meaningful once past login.
func (s *Session) ID() uuid.UUID { return s.id }

// Name returns the session's player name. Only meaningful once past
// login; the returned slice is an independent heap copy, not arena memory.
func (s *Session) Name() []byte { return s.name }

// RemoteAddr returns the underlying connection's remote address.
func (s *Session) RemoteAddr() net.Addr { return s.conn.RemoteAddr() }

// Close releases the session's socket. Safe to call more than once.
func (s *Session) Close() error { return s.conn.Close() }

// Run performs the synchronous accepting-path phase of the protocol:
// handshake, then status or login, looping Tick until the session either
// reaches config (registering itself in the client registry and
// returning nil) or terminates gracefully (legacy client, status
// ping-response, protocol-level disconnect - all absorbed as a nil
// return). A non-nil return is a transport, framing or protocol failure
// (such as an unknown packet id or an invalid next-state) the caller
// should log.
func (s *Session) Run() error {
	for {
		if s.state == protocol.StateConfig {
			s.registrar.Register(s.id, s)
			s.registered = true
			s.logger.Info("session registered", "id", s.id, "name", string(s.name))
			return nil
		}
		err := s.Tick()
		if err == nil {
			continue
		}
		if errors.Is(err, ErrDisconnected) || errors.Is(err, ErrLegacyClient) {
			return nil
		}
		return err
	}
}

// Tick reads and handles exactly one packet, resetting the scratch arena
// first so per-packet transient allocations from the previous tick don't
// accumulate across the session's lifetime.
func (s *Session) Tick() error {
	s.arena.Reset()
	switch s.state {
	case protocol.StateHandshake:
		return s.tickHandshake()
	case protocol.StateStatus:
		return s.tickStatus()
	case protocol.StateLogin:
		return s.tickLogin()
	case protocol.StateConfig, protocol.StatePlay:
		return s.tickUnimplemented()
	default:
		return fmt.Errorf("session: unhandled state %v", s.state)
	}
}

// legacyPingPrefix is the pre-Netty server-list-ping payload shape: the
// 0xFE sentinel followed by a plugin-message marker. Recognizing it is
// purely diagnostic (distinguishing an actual legacy client from a
// malformed modern handshake in logs); the connection is closed without
// a reply either way, per spec.
var legacyPingPrefix = []byte{protocol.LegacySentinel, 0x01, 0xFA}

func (s *Session) tickHandshake() error {
	peek, err := s.r.Peek(1)
	if err != nil {
		return err
	}
	if peek[0] == protocol.LegacySentinel {
		// Only inspect bytes already buffered: a legacy client's next
		// bytes may never arrive within this call, and Peek would
		// otherwise block waiting for them.
		if s.r.Buffered() >= len(legacyPingPrefix) {
			if more, err := s.r.Peek(len(legacyPingPrefix)); err == nil && bytes.Equal(more, legacyPingPrefix) {
				s.logger.Debug("legacy server-list ping")
			} else {
				s.logger.Debug("legacy sentinel byte, closing")
			}
		} else {
			s.logger.Debug("legacy sentinel byte, closing")
		}
		return ErrLegacyClient
	}

	fr, err := wire.ReadFrame(s.r, MaxFrameLen)
	if err != nil {
		return err
	}
	hs, err := handshake.Read(fr, s.arena)
	if err != nil {
		return err
	}
	switch hs.NextState {
	case handshake.NextStateStatus:
		s.state = protocol.StateStatus
	case handshake.NextStateLogin:
		s.state = protocol.StateLogin
	default:
		return fmt.Errorf("session: invalid next-state %d", hs.NextState)
	}
	return nil
}

func (s *Session) tickStatus() error {
	fr, err := wire.ReadFrame(s.r, MaxFrameLen)
	if err != nil {
		return err
	}
	pkt, err := status.ReadServerbound(fr)
	if err != nil {
		return err
	}
	switch p := pkt.(type) {
	case *status.StatusRequest:
		body, err := s.status.StatusJSON()
		if err != nil {
			return err
		}
		return protocol.WriteClientbound(s.conn, &status.StatusResponse{JSON: body})
	case *status.PingRequest:
		if err := protocol.WriteClientbound(s.conn, &status.PingResponse{Payload: p.Payload}); err != nil {
			return err
		}
		return ErrDisconnected
	default:
		return fmt.Errorf("session: unexpected status packet %T", pkt)
	}
}

func (s *Session) tickLogin() error {
	fr, err := wire.ReadFrame(s.r, MaxFrameLen)
	if err != nil {
		return err
	}
	pkt, err := login.ReadServerbound(fr, s.arena)
	if err != nil {
		return err
	}
	switch p := pkt.(type) {
	case *login.LoginStart:
		// p.Name is arena scratch (ReadServerbound carves it out of
		// s.arena) and only valid until the next Tick's Reset, so it's
		// copied onto the heap before being kept on the session.
		s.name = append([]byte(nil), p.Name...)
		s.id = wire.IdentifierV3(s.name)
		return protocol.WriteClientbound(s.conn, &login.LoginSuccess{
			UUID:     s.id,
			Username: s.name,
		})
	case *login.LoginAcknowledged:
		s.state = protocol.StateConfig
		return nil
	case *login.EncryptionResponse, *login.LoginPluginResponse:
		// Accepted silently; the core spec has no authentication-server
		// collaborator and no plugin-message consumer (§1, §4.7).
		return nil
	default:
		return fmt.Errorf("session: unexpected login packet %T", pkt)
	}
}

// tickUnimplemented handles config/play: per spec, every incoming packet
// in these states is answered with a config-state "Unimplemented"
// disconnect. The packet itself is read (and its id, if any, discarded)
// purely to stay frame-aligned; play has no decoders at all; play and
// config both dispatch through here uniformly since the core never
// implements either beyond this disconnect.
func (s *Session) tickUnimplemented() error {
	fr, err := wire.ReadFrame(s.r, MaxFrameLen)
	if err != nil {
		return err
	}
	if s.state == protocol.StatePlay {
		_, _ = play.ReadServerbound(fr)
	} else {
		_, _ = config.ReadServerbound(fr)
	}
	if err := s.Disconnect("Unimplemented"); err != nil {
		return err
	}
	return ErrDisconnected
}

// Disconnect sends a state-appropriate disconnect packet and removes the
// session from the registry if it was registered. If the current state
// has no disconnect packet defined (handshake, status), it ticks the
// session forward until it reaches one that does.
func (s *Session) Disconnect(reason string) error {
	s.logger.Info("disconnecting", "reason", reason, "state", s.state)
	for {
		switch s.state {
		case protocol.StateLogin:
			return s.writeLoginDisconnect(reason)
		case protocol.StateConfig, protocol.StatePlay:
			err := s.writeConfigDisconnect(reason)
			s.unregister()
			return err
		default:
			if tickErr := s.tickForDisconnect(); tickErr != nil {
				return nil
			}
		}
	}
}

// tickForDisconnect advances handshake/status state without recursing
// into Disconnect's own unimplemented-state handling.
func (s *Session) tickForDisconnect() error {
	switch s.state {
	case protocol.StateHandshake:
		return s.tickHandshake()
	case protocol.StateStatus:
		return s.tickStatus()
	default:
		return nil
	}
}

func (s *Session) writeLoginDisconnect(reason string) error {
	body, err := reasonJSON(reason)
	if err != nil {
		return err
	}
	return protocol.WriteClientbound(s.conn, &login.Disconnect{ReasonJSON: body})
}

func (s *Session) writeConfigDisconnect(reason string) error {
	body, err := reasonJSON(reason)
	if err != nil {
		return err
	}
	return protocol.WriteClientbound(s.conn, &config.Disconnect{ReasonJSON: body})
}

func (s *Session) unregister() {
	if s.registered {
		s.registrar.Unregister(s.id)
		s.registered = false
	}
}

type chatReason struct {
	Text string `json:"text"`
}

func reasonJSON(reason string) ([]byte, error) {
	return json.Marshal(chatReason{Text: reason})
}
