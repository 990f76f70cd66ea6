// Package server owns the TCP accept loop: one goroutine per connection,
// dispatched into a shared command handler, with graceful shutdown that
// drains in-flight connections before returning.
package server

import (
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"redserver/internal/config"
	"redserver/internal/handler"
	"redserver/internal/logging"
	"redserver/internal/replication"
	"redserver/internal/storage"
)

// Server accepts client connections and hands each to a CommandHandler.
type Server struct {
	cfg      *config.Config
	store    *storage.Store
	handler  *handler.CommandHandler
	repl     *replication.ReplicationManager
	listener net.Listener

	connections  sync.Map // connID -> net.Conn
	connIDSeq    atomic.Int64
	wg           sync.WaitGroup
	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// New wires up the store, replication manager, and command handler for the
// given configuration. It does not start listening yet.
func New(cfg *config.Config) *Server {
	store := storage.NewStore()
	store.StartSweeper()

	role := replication.RoleMaster
	if cfg.IsReplica() {
		role = replication.RoleReplica
	}
	repl := replication.NewReplicationManager(role)
	repl.SetListeningPort(cfg.Port)
	repl.SetSnapshotPath(cfg.SnapshotPath())

	hCfg := handler.DefaultHandlerConfig()
	hCfg.SnapshotPath = cfg.SnapshotPath()
	h := handler.NewCommandHandler(store, repl, cfg.Port, hCfg)

	if role == replication.RoleReplica {
		repl.SetCommandExecutor(func(args []string) error {
			return h.ApplyReplicatedCommand(args)
		})
	}

	return &Server{
		cfg:        cfg,
		store:      store,
		handler:    h,
		repl:       repl,
		shutdownCh: make(chan struct{}),
	}
}

// LoadSnapshot reports whether a previously-persisted snapshot file exists. The
// snapshot format carries no keyspace content worth replaying in this
// implementation (see internal/replication.MinimalSnapshotPayload) so a
// present file is treated the same as an absent one: this is a pure
// existence check, kept as the external collaborator spec.md names.
func LoadSnapshot(path string) (ok bool) {
	_, err := os.Stat(path)
	return err == nil
}

// Run starts listening and blocks until Shutdown is called or the listener
// errors out.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.listener = ln
	logging.Infof("server listening on %s", addr)

	if s.cfg.IsReplica() {
		logging.Infof("server starting as replica of %s:%d", s.cfg.MasterHost, s.cfg.MasterPort)
		if err := s.repl.ConnectToMaster(s.cfg.MasterHost, s.cfg.MasterPort); err != nil {
			logging.Warnf("server: initial connection to master failed: %v", err)
		}
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.shutdownCh:
				return nil
			default:
				logging.Warnf("server: accept error: %v", err)
				continue
			}
		}
		id := s.connIDSeq.Add(1)
		s.connections.Store(id, conn)
		s.wg.Add(1)
		go s.serve(id, conn)
	}
}

func (s *Server) serve(id int64, conn net.Conn) {
	defer s.wg.Done()
	defer s.connections.Delete(id)
	s.handler.Handle(conn)
}

// Shutdown stops accepting new connections, closes all live ones, and waits
// (up to a grace period) for their goroutines to exit.
func (s *Server) Shutdown() {
	s.shutdownOnce.Do(func() {
		logging.Infof("server: shutting down")
		close(s.shutdownCh)
		if s.listener != nil {
			s.listener.Close()
		}
		s.connections.Range(func(_, v interface{}) bool {
			if conn, ok := v.(net.Conn); ok {
				conn.Close()
			}
			return true
		})

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			logging.Infof("server: all connections closed")
		case <-time.After(5 * time.Second):
			logging.Warnf("server: shutdown grace period exceeded, forcing exit")
		}

		s.store.StopSweeper()
		s.repl.Shutdown()
		logging.Infof("server: shutdown complete")
	})
}
