package handler

import (
	"redserver/internal/protocol"
	"redserver/internal/storage"
)

func (h *CommandHandler) registerTransactionCommands() {
	h.commands["MULTI"] = cmdMulti
	h.commands["EXEC"] = cmdExec
	h.commands["DISCARD"] = cmdDiscard
	h.commands["WATCH"] = cmdWatch
	h.commands["UNWATCH"] = cmdUnwatch
}

func cmdMulti(h *CommandHandler, c *Client, args []string) []byte {
	if c.InMulti {
		return protocol.EncodeError("ERR MULTI calls can not be nested")
	}
	c.InMulti = true
	c.Queue = nil
	return protocol.EncodeSimpleString("OK")
}

func cmdDiscard(h *CommandHandler, c *Client, args []string) []byte {
	if !c.InMulti {
		return protocol.EncodeError("ERR DISCARD without MULTI")
	}
	resetTransaction(c)
	return protocol.EncodeSimpleString("OK")
}

func resetTransaction(c *Client) {
	c.InMulti = false
	c.Queue = nil
	c.Watched = nil
}

// cmdWatch records the current *storage.Value pointer for each key so EXEC
// can detect whether any of them changed identity (set/delete/overwrite)
// since the WATCH call — every mutating store operation replaces a key's
// Value with a fresh pointer, so pointer identity is a cheap dirtiness
// check without a separate version counter.
func cmdWatch(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'watch' command")
	}
	if c.InMulti {
		return protocol.EncodeError("ERR WATCH inside MULTI is not allowed")
	}
	if c.Watched == nil {
		c.Watched = make(map[string]*storage.Value)
	}
	for _, key := range args[1:] {
		v, _ := h.store.Get(key)
		c.Watched[key] = v
	}
	return protocol.EncodeSimpleString("OK")
}

func cmdUnwatch(h *CommandHandler, c *Client, args []string) []byte {
	c.Watched = nil
	return protocol.EncodeSimpleString("OK")
}

func cmdExec(h *CommandHandler, c *Client, args []string) []byte {
	if !c.InMulti {
		return protocol.EncodeError("ERR EXEC without MULTI")
	}
	defer resetTransaction(c)

	for key, snapshot := range c.Watched {
		v, _ := h.store.Get(key)
		if v != snapshot {
			return protocol.EncodeNullArray()
		}
	}

	frames := make([][]byte, 0, len(c.Queue))
	for _, cmdArgs := range c.Queue {
		fn, ok := h.commands[upper(cmdArgs[0])]
		if !ok {
			frames = append(frames, protocol.EncodeNullBulk())
			continue
		}
		reply := fn(h, c, cmdArgs)
		if IsWriteCommand(upper(cmdArgs[0])) && h.repl != nil {
			h.repl.PropagateCommand(cmdArgs)
		}
		frames = append(frames, reply)
	}
	return protocol.EncodeRawArray(frames)
}
