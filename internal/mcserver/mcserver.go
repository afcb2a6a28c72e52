// Package mcserver implements the server orchestrator (§4.8): the
// listening socket, the task pool that multiplexes session ticks, the
// guarded client registry, and the properties/favicon documents every
// session's status response is built from.
package mcserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"emberd/internal/favicon"
	"emberd/internal/properties"
	"emberd/internal/protocol"
	"emberd/internal/protocol/status"
	"emberd/internal/registry"
	"emberd/internal/session"
	"emberd/internal/taskpool"
)

// TickInterval is the cadence at which the orchestrator snapshots its
// client registry and schedules one Tick per registered session, matching
// vanilla's 20 Hz server tick rate.
const TickInterval = 50 * time.Millisecond

// Status is the orchestrator's own lifecycle phase. Only the goroutine
// running Run may mutate it.
type Status int32

const (
	StatusStarting Status = iota
	StatusRunning
	StatusStopping
)

func (s Status) String() string {
	switch s {
	case StatusStarting:
		return "starting"
	case StatusRunning:
		return "running"
	case StatusStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Server owns everything a running core needs: the listening socket, the
// task pool, the properties document, the optional favicon, and the
// registry of sessions that have completed login.
type Server struct {
	addr     string
	props    *properties.Properties
	favicon  string
	pool     *taskpool.Pool
	registry *registry.Registry[*session.Session]
	logger   *slog.Logger

	mu       sync.Mutex
	status   Status
	listener net.Listener
}

// New constructs a Server bound to props's server-ip/server-port, with a
// task pool sized max(1, cpu_count-1) per spec §4.8.
func New(props *properties.Properties, faviconPath string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	workers := runtime.NumCPU() - 1
	if workers < 1 {
		workers = 1
	}
	addr := net.JoinHostPort(props.Strings["server-ip"], fmt.Sprintf("%d", props.Uints["server-port"]))
	if props.Strings["server-ip"] == "" {
		addr = fmt.Sprintf("0.0.0.0:%d", props.Uints["server-port"])
	}
	return &Server{
		addr:     addr,
		props:    props,
		favicon:  favicon.Load(faviconPath),
		pool:     taskpool.New(workers),
		registry: registry.New[*session.Session](),
		logger:   logger,
		status:   StatusStarting,
	}
}

// Register implements session.Registrar.
func (s *Server) Register(id uuid.UUID, sess *session.Session) { s.registry.Insert(id, sess) }

// Unregister implements session.Registrar.
func (s *Server) Unregister(id uuid.UUID) { s.registry.Remove(id) }

// StatusJSON implements session.StatusProvider: the JSON status document
// vanilla clients render in the multiplayer server list.
func (s *Server) StatusJSON() ([]byte, error) {
	doc := status.Document{
		Version: status.VersionInfo{
			Name:     protocol.GameVersion,
			Protocol: protocol.Version,
		},
		Players: status.PlayersInfo{
			Max:    int(s.props.Uints["max-players"]),
			Online: s.registry.Len(),
		},
		Description: status.Description{Text: s.props.Strings["motd"]},
		Favicon:     s.favicon,
	}
	return json.Marshal(doc)
}

// Addr returns the address the server is listening on, or "" before Run
// has bound the listener.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Status reports the orchestrator's current lifecycle phase.
func (s *Server) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Server) setStatus(v Status) {
	s.mu.Lock()
	s.status = v
	s.mu.Unlock()
}

// Run binds the listening socket and blocks, accepting connections and
// driving the tick loop, until ctx is cancelled. On cancellation it stops
// accepting, disconnects every registered session, and joins the task
// pool before returning.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("mcserver: listening on %s: %w", s.addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.setStatus(StatusRunning)
	s.logger.Info("server listening", "addr", ln.Addr().String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		ln.Close()
		return nil
	})
	g.Go(func() error {
		s.acceptLoop(ln)
		return nil
	})
	g.Go(func() error {
		s.tickLoop(gctx)
		return nil
	})

	err = g.Wait()
	s.setStatus(StatusStopping)
	s.shutdown()
	return err
}

func (s *Server) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}
		go s.handleAccept(conn)
	}
}

// handleAccept runs a freshly accepted connection's synchronous
// handshake/status/login phase to completion. If it ends in anything
// other than config state, the socket is closed immediately; a session
// that reaches config is left open, now driven exclusively by tickLoop.
func (s *Server) handleAccept(conn net.Conn) {
	sess := session.New(conn, s, s, s.logger)
	if err := sess.Run(); err != nil {
		s.logger.Debug("session ended with error", "remote", conn.RemoteAddr(), "error", err)
		sess.Close()
		return
	}
	if sess.State() != protocol.StateConfig {
		sess.Close()
	}
}

// tickLoop snapshots the registry and schedules one Tick per registered
// session onto the task pool, once per TickInterval, until ctx is
// cancelled.
func (s *Server) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Server) tick() {
	for _, sess := range s.registry.Snapshot() {
		s.pool.Add(func() {
			if err := sess.Tick(); err != nil {
				if !errors.Is(err, session.ErrDisconnected) && !errors.Is(err, session.ErrLegacyClient) {
					s.logger.Debug("session tick error", "remote", sess.RemoteAddr(), "error", err)
					// A graceful ErrDisconnected has already unregistered
					// the session through Disconnect.
					s.registry.Remove(sess.ID())
				}
				sess.Close()
			}
		})
	}
}

// shutdown disconnects every still-registered session with a
// server-initiated reason and joins the task pool. Called once, after
// both the accept loop and the tick loop have stopped.
func (s *Server) shutdown() {
	for _, sess := range s.registry.Snapshot() {
		if err := sess.Disconnect("Server closed"); err != nil {
			s.logger.Debug("disconnect on shutdown failed", "remote", sess.RemoteAddr(), "error", err)
		}
		sess.Close()
	}
	s.pool.Close()
	s.logger.Info("server stopped")
}
