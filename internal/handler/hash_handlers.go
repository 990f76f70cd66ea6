package handler

import "redserver/internal/protocol"

func (h *CommandHandler) registerHashCommands() {
	h.commands["HSET"] = cmdHSet
	h.commands["HGET"] = cmdHGet
	h.commands["HMGET"] = cmdHMGet
	h.commands["HDEL"] = cmdHDel
	h.commands["HEXISTS"] = cmdHExists
	h.commands["HLEN"] = cmdHLen
	h.commands["HKEYS"] = cmdHKeys
	h.commands["HVALS"] = cmdHVals
	h.commands["HGETALL"] = cmdHGetAll
	h.commands["HSETNX"] = cmdHSetNX
	h.commands["HINCRBY"] = cmdHIncrBy
	h.commands["HINCRBYFLOAT"] = cmdHIncrByFloat
}

func cmdHSet(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'hset' command")
	}
	n, err := h.store.HSet(args[1], args[2:]...)
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(int64(n))
}

func cmdHGet(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'hget' command")
	}
	val, ok, err := h.store.HGet(args[1], args[2])
	if err != nil {
		return encErr(err)
	}
	if !ok {
		return protocol.EncodeNullBulk()
	}
	return protocol.EncodeBulkString(val)
}

func cmdHMGet(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'hmget' command")
	}
	vals, err := h.store.HMGet(args[1], args[2:]...)
	if err != nil {
		return encErr(err)
	}
	out := make([]*string, len(vals))
	for i, v := range vals {
		if v == nil {
			continue
		}
		s := v.(string)
		out[i] = &s
	}
	return protocol.EncodeArray(out)
}

func cmdHDel(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'hdel' command")
	}
	n, err := h.store.HDel(args[1], args[2:]...)
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(int64(n))
}

func cmdHExists(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'hexists' command")
	}
	ok, err := h.store.HExists(args[1], args[2])
	if err != nil {
		return encErr(err)
	}
	if ok {
		return protocol.EncodeInteger(1)
	}
	return protocol.EncodeInteger(0)
}

func cmdHLen(h *CommandHandler, c *Client, args []string) []byte {
	n, err := h.store.HLen(args[1])
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(int64(n))
}

func cmdHKeys(h *CommandHandler, c *Client, args []string) []byte {
	vals, err := h.store.HKeys(args[1])
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeStringArray(vals)
}

func cmdHVals(h *CommandHandler, c *Client, args []string) []byte {
	vals, err := h.store.HVals(args[1])
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeStringArray(vals)
}

func cmdHGetAll(h *CommandHandler, c *Client, args []string) []byte {
	vals, err := h.store.HGetAll(args[1])
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeStringArray(vals)
}

func cmdHSetNX(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'hsetnx' command")
	}
	ok, err := h.store.HSetNX(args[1], args[2], args[3])
	if err != nil {
		return encErr(err)
	}
	if ok {
		return protocol.EncodeInteger(1)
	}
	return protocol.EncodeInteger(0)
}

func cmdHIncrBy(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'hincrby' command")
	}
	delta, err := parseInt64(args[3])
	if err != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	n, err := h.store.HIncrBy(args[1], args[2], delta)
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(n)
}

func cmdHIncrByFloat(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'hincrbyfloat' command")
	}
	delta, err := parseFloat(args[3])
	if err != nil {
		return protocol.EncodeError("ERR value is not a valid float")
	}
	n, err := h.store.HIncrByFloat(args[1], args[2], delta)
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeBulkString(formatFloat(n))
}
