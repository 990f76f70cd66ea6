// Package handler implements the RESP command dispatcher: one goroutine per
// connection, parsing requests off the wire and calling directly into
// storage.Store (which does its own internal locking) instead of routing
// through a serialized command actor.
package handler

import (
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"time"

	"redserver/internal/logging"
	"redserver/internal/protocol"
	"redserver/internal/replication"
	"redserver/internal/storage"
)

// CommandFunc executes one command for a client and returns its encoded
// RESP reply. args[0] is the command name.
type CommandFunc func(h *CommandHandler, c *Client, args []string) []byte

// Client holds per-connection state: transaction queue, watched keys, and
// pub/sub subscription membership.
type Client struct {
	ID   int64
	Conn net.Conn

	InMulti bool
	Queue   [][]string
	Watched map[string]*storage.Value

	Sub         *storage.Subscriber
	SubChannels map[string]bool
	SubPatterns map[string]bool

	// ReplicaListeningPort is set by REPLCONF listening-port, ahead of a
	// PSYNC on the same connection.
	ReplicaListeningPort int
	// ReplicaID is non-empty once this connection has completed PSYNC and
	// become a replica stream.
	ReplicaID string
}

func (c *Client) inPubSub() bool {
	return len(c.SubChannels) > 0 || len(c.SubPatterns) > 0
}

// HandlerConfig sets the slow log threshold and length, and where a
// full-resync snapshot is read from / persisted to on disk.
type HandlerConfig struct {
	SlowLogThreshold time.Duration
	SlowLogMaxLen    int
	SnapshotPath     string
}

func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{SlowLogThreshold: 10 * time.Millisecond, SlowLogMaxLen: 128}
}

// CommandHandler dispatches RESP commands against a shared Store.
type CommandHandler struct {
	store    *storage.Store
	commands map[string]CommandFunc
	slowLog  *SlowLog
	repl     *replication.ReplicationManager

	serverPort   int
	snapshotPath string
	startTime    time.Time
	clientSeq    int64
}

func NewCommandHandler(store *storage.Store, repl *replication.ReplicationManager, serverPort int, cfg HandlerConfig) *CommandHandler {
	h := &CommandHandler{
		store:        store,
		commands:     make(map[string]CommandFunc),
		slowLog:      NewSlowLog(cfg.SlowLogMaxLen, cfg.SlowLogThreshold),
		repl:         repl,
		serverPort:   serverPort,
		snapshotPath: cfg.SnapshotPath,
		startTime:    time.Now(),
	}
	h.registerCommands()
	return h
}

func (h *CommandHandler) registerCommands() {
	h.registerStringCommands()
	h.registerListCommands()
	h.registerHashCommands()
	h.registerSetCommands()
	h.registerZSetCommands()
	h.registerGeoCommands()
	h.registerStreamCommands()
	h.registerPubSubCommands()
	h.registerTransactionCommands()
	h.registerAdminCommands()
	h.registerReplicationCommands()
}

func (h *CommandHandler) newClient(conn net.Conn) *Client {
	id := atomic.AddInt64(&h.clientSeq, 1)
	return &Client{
		ID:          id,
		Conn:        conn,
		SubChannels: make(map[string]bool),
		SubPatterns: make(map[string]bool),
	}
}

// Handle drives one client connection until it disconnects or its
// connection is closed (Server.Shutdown closes every live connection).
func (h *CommandHandler) Handle(conn net.Conn) {
	client := h.newClient(conn)
	logging.Infof("client %d connected from %s", client.ID, conn.RemoteAddr())
	defer func() {
		// A connection that completed PSYNC is now owned by the replication
		// manager's ack heartbeat: it keeps the socket open and removes the
		// replica itself on failure, so this loop must not also tear it down.
		if client.ReplicaID != "" {
			return
		}
		conn.Close()
		h.cleanupClient(client)
	}()

	reader := protocol.NewFrameReader(conn)
	for {
		args, _, err := reader.Next()
		if err != nil {
			if err != io.EOF {
				logging.Debugf("client %d read error: %v", client.ID, err)
			}
			return
		}
		if len(args) == 0 {
			continue
		}
		reply := h.dispatchTimed(client, args)
		if reply != nil {
			if _, err := conn.Write(reply); err != nil {
				logging.Debugf("client %d write error: %v", client.ID, err)
				return
			}
		}
		if client.ReplicaID != "" {
			// PSYNC just handed this connection's reads over to the
			// replication manager's per-replica ack heartbeat.
			return
		}
	}
}

// cleanupClient tears down state for an ordinary client connection. A
// connection that became a replica via PSYNC is never passed here: its
// lifecycle is owned by the replication manager's ack heartbeat instead.
func (h *CommandHandler) cleanupClient(c *Client) {
	if c.inPubSub() {
		h.store.PubSub.RemoveSubscriber(clientSubID(c.ID))
	}
	logging.Infof("client %d disconnected", c.ID)
}

func (h *CommandHandler) dispatchTimed(c *Client, args []string) []byte {
	start := time.Now()
	reply := h.dispatch(c, args)
	h.slowLog.LogIfSlow(c.ID, args[0], args[1:], time.Since(start))
	return reply
}

// dispatch applies MULTI-queueing, then routes to the registered handler.
func (h *CommandHandler) dispatch(c *Client, args []string) []byte {
	name := upper(args[0])

	if c.InMulti && name != "EXEC" && name != "DISCARD" && name != "MULTI" && name != "WATCH" {
		c.Queue = append(c.Queue, args)
		return protocol.EncodeSimpleString("QUEUED")
	}

	fn, ok := h.commands[name]
	if !ok {
		return protocol.EncodeError("ERR unknown command '" + args[0] + "'")
	}
	reply := fn(h, c, args)
	if IsWriteCommand(name) && h.repl != nil {
		h.repl.PropagateCommand(args)
	}
	return reply
}

// ApplyReplicatedCommand executes a command received over the replication
// stream directly against the store, without going through a real client
// connection's queueing or pub/sub state.
func (h *CommandHandler) ApplyReplicatedCommand(args []string) error {
	if len(args) == 0 {
		return nil
	}
	fn, ok := h.commands[upper(args[0])]
	if !ok {
		return fmt.Errorf("ERR unknown command '%s'", args[0])
	}
	client := &Client{SubChannels: make(map[string]bool), SubPatterns: make(map[string]bool)}
	reply := fn(h, client, args)
	if len(reply) > 0 && reply[0] == '-' {
		return fmt.Errorf("%s", string(reply[1:]))
	}
	return nil
}

func clientSubID(id int64) string {
	return "client-" + itoa(id)
}
