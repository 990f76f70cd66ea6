package handler

import (
	"fmt"

	"redserver/internal/protocol"
	"redserver/internal/replication"
)

func (h *CommandHandler) registerReplicationCommands() {
	h.commands["REPLCONF"] = cmdReplConf
	h.commands["PSYNC"] = cmdPSync
	h.commands["SYNC"] = cmdPSync
	h.commands["WAIT"] = cmdWait
	h.commands["INFO"] = cmdInfo
}

// REPLCONF has several sub-forms; we only need to remember the replica's
// listening port ahead of PSYNC and answer ACK offsets silently.
func cmdReplConf(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'replconf' command")
	}
	switch upper(args[1]) {
	case "LISTENING-PORT":
		if len(args) >= 3 {
			if port, err := atoi(args[2]); err == nil {
				c.ReplicaListeningPort = port
			}
		}
		return protocol.EncodeSimpleString("OK")
	case "CAPA":
		return protocol.EncodeSimpleString("OK")
	case "GETACK":
		// A real master sends GETACK down the replication stream, not to an
		// ordinary client connection; the replica answers it there (see
		// replica.go's receiveReplicationStream), not through this handler.
		return nil
	case "ACK":
		// Once a connection completes PSYNC, its ACKs are read directly off
		// the socket by ReplicationManager.runAckHeartbeat, not dispatched
		// through here; an ACK arriving on an ordinary connection is a no-op.
		return nil
	default:
		return protocol.EncodeSimpleString("OK")
	}
}

// PSYNC hands this connection over to the replica stream: reply with
// +FULLRESYNC, write the snapshot payload as a raw length-prefixed blob,
// then register the connection as a replica so future writes propagate to
// it. The reply has already been written directly to the connection, so we
// return nil.
func cmdPSync(h *CommandHandler, c *Client, args []string) []byte {
	if h.repl == nil {
		return protocol.EncodeError("ERR this server is not replication-capable")
	}

	replID := h.repl.GetReplID()
	offset := h.repl.GetOffset()
	header := protocol.EncodeSimpleString(fmt.Sprintf("FULLRESYNC %s %d", replID, offset))
	if _, err := c.Conn.Write(header); err != nil {
		return nil
	}

	payload := replication.BuildFullResyncPayload(h.snapshotPath)
	if _, err := c.Conn.Write(protocol.EncodeRawBlob(payload)); err != nil {
		return nil
	}

	id := replication.NewReplicaID()
	c.ReplicaID = id
	replica := h.repl.AddReplica(c.Conn, id)
	if c.ReplicaListeningPort != 0 {
		replica.ListeningPort = c.ReplicaListeningPort
		h.repl.SetReplicaListeningPort(id, c.ReplicaListeningPort)
	}
	return nil
}

// WAIT reports how many replicas are connected, per the documented
// simplification: this is an immediate count, not a real ack-poll against
// the requested offset.
func cmdWait(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'wait' command")
	}
	numReplicas, err := atoi(args[1])
	if err != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	connected := 0
	if h.repl != nil {
		connected = h.repl.ConnectedReplicaCount()
	}
	if connected > numReplicas {
		connected = numReplicas
	}
	return protocol.EncodeInteger(int64(connected))
}

func cmdInfo(h *CommandHandler, c *Client, args []string) []byte {
	section := "replication"
	if len(args) >= 2 {
		section = upper(args[1])
	}
	if section != "REPLICATION" && section != "ALL" && section != "EVERYTHING" {
		return protocol.EncodeBulkString("")
	}
	if h.repl == nil {
		return protocol.EncodeBulkString("# Replication\r\nrole:master\r\n")
	}
	info := h.repl.GetInfo()
	out := "# Replication\r\n"
	out += fmt.Sprintf("role:%v\r\n", info["role"])
	out += fmt.Sprintf("master_replid:%v\r\n", info["master_repl_id"])
	out += fmt.Sprintf("master_repl_offset:%v\r\n", info["master_repl_offset"])
	if n, ok := info["connected_slaves"]; ok {
		out += fmt.Sprintf("connected_slaves:%v\r\n", n)
	}
	if host, ok := info["master_host"]; ok {
		out += fmt.Sprintf("master_host:%v\r\n", host)
		out += fmt.Sprintf("master_port:%v\r\n", info["master_port"])
		out += fmt.Sprintf("master_link_status:%v\r\n", info["master_link_status"])
	}
	return protocol.EncodeBulkString(out)
}
