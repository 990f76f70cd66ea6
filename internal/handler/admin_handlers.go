package handler

import (
	"time"

	"redserver/internal/protocol"
)

func (h *CommandHandler) registerAdminCommands() {
	h.commands["PING"] = cmdPing
	h.commands["ECHO"] = cmdEcho
	h.commands["TYPE"] = cmdType
	h.commands["EXISTS"] = cmdExists
	h.commands["DEL"] = cmdDel
	h.commands["UNLINK"] = cmdDel
	h.commands["EXPIRE"] = cmdExpire
	h.commands["PEXPIRE"] = cmdPExpire
	h.commands["PERSIST"] = cmdPersist
	h.commands["TTL"] = cmdTTL
	h.commands["PTTL"] = cmdPTTL
	h.commands["KEYS"] = cmdKeys
	h.commands["FLUSHALL"] = cmdFlushAll
	h.commands["FLUSHDB"] = cmdFlushAll
	h.commands["DBSIZE"] = cmdDBSize
	h.commands["SELECT"] = cmdSelect
	h.commands["COMMAND"] = cmdCommand
	h.commands["CONFIG"] = cmdConfig
}

func cmdPing(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) == 2 {
		return protocol.EncodeBulkString(args[1])
	}
	return protocol.EncodeSimpleString("PONG")
}

func cmdEcho(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'echo' command")
	}
	return protocol.EncodeBulkString(args[1])
}

func cmdType(h *CommandHandler, c *Client, args []string) []byte {
	t, ok := h.store.Type(args[1])
	if !ok {
		return protocol.EncodeSimpleString("none")
	}
	return protocol.EncodeSimpleString(t.String())
}

func cmdExists(h *CommandHandler, c *Client, args []string) []byte {
	n := 0
	for _, key := range args[1:] {
		if h.store.Exists(key) {
			n++
		}
	}
	return protocol.EncodeInteger(int64(n))
}

func cmdDel(h *CommandHandler, c *Client, args []string) []byte {
	n := 0
	for _, key := range args[1:] {
		if h.store.Delete(key) {
			n++
		}
	}
	return protocol.EncodeInteger(int64(n))
}

func cmdExpire(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'expire' command")
	}
	secs, err := parseInt64(args[2])
	if err != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	deadline := time.Now().Add(time.Duration(secs) * time.Second)
	if h.store.Expire(args[1], &deadline) {
		return protocol.EncodeInteger(1)
	}
	return protocol.EncodeInteger(0)
}

func cmdPExpire(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'pexpire' command")
	}
	ms, err := parseInt64(args[2])
	if err != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	deadline := time.Now().Add(time.Duration(ms) * time.Millisecond)
	if h.store.Expire(args[1], &deadline) {
		return protocol.EncodeInteger(1)
	}
	return protocol.EncodeInteger(0)
}

func cmdPersist(h *CommandHandler, c *Client, args []string) []byte {
	if h.store.Expire(args[1], nil) {
		return protocol.EncodeInteger(1)
	}
	return protocol.EncodeInteger(0)
}

func cmdTTL(h *CommandHandler, c *Client, args []string) []byte {
	ms := h.store.TTL(args[1])
	if ms < 0 {
		return protocol.EncodeInteger(ms)
	}
	return protocol.EncodeInteger(ms / 1000)
}

func cmdPTTL(h *CommandHandler, c *Client, args []string) []byte {
	return protocol.EncodeInteger(h.store.TTL(args[1]))
}

func cmdKeys(h *CommandHandler, c *Client, args []string) []byte {
	pattern := "*"
	if len(args) == 2 {
		pattern = args[1]
	}
	return protocol.EncodeStringArray(h.store.Keys(pattern))
}

func cmdFlushAll(h *CommandHandler, c *Client, args []string) []byte {
	h.store.Flush()
	return protocol.EncodeSimpleString("OK")
}

func cmdDBSize(h *CommandHandler, c *Client, args []string) []byte {
	return protocol.EncodeInteger(int64(h.store.DBSize()))
}

func cmdSelect(h *CommandHandler, c *Client, args []string) []byte {
	return protocol.EncodeSimpleString("OK")
}

func cmdCommand(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) >= 2 && upper(args[1]) == "COUNT" {
		return protocol.EncodeInteger(int64(len(h.commands)))
	}
	return protocol.EncodeStringArray(nil)
}

func cmdConfig(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) >= 2 && upper(args[1]) == "GET" {
		return protocol.EncodeStringArray(nil)
	}
	return protocol.EncodeSimpleString("OK")
}
