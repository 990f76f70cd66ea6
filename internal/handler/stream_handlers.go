package handler

import (
	"time"

	"redserver/internal/protocol"
	"redserver/internal/storage"
)

func (h *CommandHandler) registerStreamCommands() {
	h.commands["XADD"] = cmdXAdd
	h.commands["XLEN"] = cmdXLen
	h.commands["XRANGE"] = cmdXRange
	h.commands["XREVRANGE"] = cmdXRevRange
	h.commands["XREAD"] = cmdXRead
}

func cmdXAdd(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 5 || len(args)%2 != 1 {
		return protocol.EncodeError("ERR wrong number of arguments for 'xadd' command")
	}
	id, err := h.store.XAdd(args[1], args[2], args[3:])
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeBulkString(id.String())
}

func cmdXLen(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'xlen' command")
	}
	n, err := h.store.XLen(args[1])
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(int64(n))
}

func encodeStreamEntries(entries []storage.StreamEntry) []byte {
	buf := make([][]byte, 0, len(entries))
	for _, e := range entries {
		item := [][]byte{
			protocol.EncodeBulkString(e.ID.String()),
			protocol.EncodeStringArray(e.Fields),
		}
		buf = append(buf, protocol.EncodeRawArray(item))
	}
	return protocol.EncodeRawArray(buf)
}

func cmdXRange(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'xrange' command")
	}
	start, err1 := storage.ParseStreamID(args[2])
	end, err2 := storage.ParseStreamID(args[3])
	if err1 != nil || err2 != nil {
		return protocol.EncodeError("ERR Invalid stream ID specified as stream command argument")
	}
	count := -1
	if len(args) >= 6 && upper(args[4]) == "COUNT" {
		if n, err := atoi(args[5]); err == nil {
			count = n
		}
	}
	entries, err := h.store.XRange(args[1], start, end, count)
	if err != nil {
		return encErr(err)
	}
	return encodeStreamEntries(entries)
}

func cmdXRevRange(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'xrevrange' command")
	}
	end, err1 := storage.ParseStreamID(args[2])
	start, err2 := storage.ParseStreamID(args[3])
	if err1 != nil || err2 != nil {
		return protocol.EncodeError("ERR Invalid stream ID specified as stream command argument")
	}
	count := -1
	if len(args) >= 6 && upper(args[4]) == "COUNT" {
		if n, err := atoi(args[5]); err == nil {
			count = n
		}
	}
	entries, err := h.store.XRevRange(args[1], start, end, count)
	if err != nil {
		return encErr(err)
	}
	return encodeStreamEntries(entries)
}

// XREAD [COUNT n] [BLOCK ms] STREAMS key [key...] id [id...]
func cmdXRead(h *CommandHandler, c *Client, args []string) []byte {
	count := -1
	var blockMs int
	blocking := false
	streamsIdx := -1

	for i := 1; i < len(args); i++ {
		switch upper(args[i]) {
		case "COUNT":
			if i+1 < len(args) {
				if n, err := atoi(args[i+1]); err == nil {
					count = n
				}
				i++
			}
		case "BLOCK":
			if i+1 < len(args) {
				if n, err := atoi(args[i+1]); err == nil {
					blockMs = n
					blocking = true
				}
				i++
			}
		case "STREAMS":
			streamsIdx = i + 1
		}
		if streamsIdx >= 0 {
			break
		}
	}
	if streamsIdx < 0 || (len(args)-streamsIdx)%2 != 0 {
		return protocol.EncodeError("ERR syntax error")
	}

	rest := args[streamsIdx:]
	n := len(rest) / 2
	keys := rest[:n]
	rawIDs := rest[n:]

	after := make([]storage.StreamID, n)
	for i, key := range keys {
		if rawIDs[i] == "$" {
			last, err := h.store.XLastID(key)
			if err != nil {
				return encErr(err)
			}
			after[i] = last
			continue
		}
		id, err := storage.ParseStreamID(rawIDs[i])
		if err != nil {
			return protocol.EncodeError("ERR Invalid stream ID specified as stream command argument")
		}
		after[i] = id
	}

	deadline := time.Now().Add(time.Duration(blockMs) * time.Millisecond)
	for {
		var buf [][]byte
		for i, key := range keys {
			entries, err := h.store.XReadAfter(key, after[i], count)
			if err != nil || len(entries) == 0 {
				continue
			}
			item := [][]byte{protocol.EncodeBulkString(key), encodeStreamEntries(entries)}
			buf = append(buf, protocol.EncodeRawArray(item))
		}
		if len(buf) > 0 {
			return protocol.EncodeRawArray(buf)
		}
		if !blocking {
			return protocol.EncodeNullArray()
		}
		if blockMs > 0 && time.Now().After(deadline) {
			return protocol.EncodeNullArray()
		}
		time.Sleep(blockPollInterval)
	}
}
