package handler

import (
	"strings"
	"time"

	"redserver/internal/protocol"
)

func encErr(err error) []byte { return protocol.EncodeError(err.Error()) }

func (h *CommandHandler) registerStringCommands() {
	h.commands["SET"] = cmdSet
	h.commands["GET"] = cmdGet
	h.commands["GETSET"] = cmdGetSet
	h.commands["SETNX"] = cmdSetNX
	h.commands["APPEND"] = cmdAppend
	h.commands["STRLEN"] = cmdStrLen
	h.commands["INCR"] = cmdIncr
	h.commands["DECR"] = cmdDecr
	h.commands["INCRBY"] = cmdIncrBy
	h.commands["DECRBY"] = cmdDecrBy
	h.commands["INCRBYFLOAT"] = cmdIncrByFloat
	h.commands["MSET"] = cmdMSet
	h.commands["MGET"] = cmdMGet
}

// SET key value [EX seconds | PX millis] [NX | XX]
func cmdSet(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'set' command")
	}
	key, value := args[1], args[2]

	var deadline *time.Time
	var nx, xx bool
	for i := 3; i < len(args); i++ {
		switch strings.ToUpper(args[i]) {
		case "EX":
			if i+1 >= len(args) {
				return protocol.EncodeError("ERR syntax error")
			}
			secs, err := atoi(args[i+1])
			if err != nil {
				return protocol.EncodeError("ERR value is not an integer or out of range")
			}
			d := time.Now().Add(time.Duration(secs) * time.Second)
			deadline = &d
			i++
		case "PX":
			if i+1 >= len(args) {
				return protocol.EncodeError("ERR syntax error")
			}
			ms, err := atoi(args[i+1])
			if err != nil {
				return protocol.EncodeError("ERR value is not an integer or out of range")
			}
			d := time.Now().Add(time.Duration(ms) * time.Millisecond)
			deadline = &d
			i++
		case "NX":
			nx = true
		case "XX":
			xx = true
		default:
			return protocol.EncodeError("ERR syntax error")
		}
	}

	exists := h.store.Exists(key)
	if nx && exists {
		return protocol.EncodeNullBulk()
	}
	if xx && !exists {
		return protocol.EncodeNullBulk()
	}

	if deadline != nil {
		h.store.SetWithExpiry(key, value, deadline)
	} else {
		h.store.Set(key, value)
	}
	return protocol.EncodeSimpleString("OK")
}

func cmdGet(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'get' command")
	}
	val, ok, err := h.store.GetString(args[1])
	if err != nil {
		return encErr(err)
	}
	if !ok {
		return protocol.EncodeNullBulk()
	}
	return protocol.EncodeBulkString(val)
}

func cmdGetSet(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'getset' command")
	}
	old, had, err := h.store.GetSet(args[1], args[2])
	if err != nil {
		return encErr(err)
	}
	if !had {
		return protocol.EncodeNullBulk()
	}
	return protocol.EncodeBulkString(old)
}

func cmdSetNX(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'setnx' command")
	}
	if h.store.SetNX(args[1], args[2]) {
		return protocol.EncodeInteger(1)
	}
	return protocol.EncodeInteger(0)
}

func cmdAppend(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'append' command")
	}
	n, err := h.store.Append(args[1], args[2])
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(int64(n))
}

func cmdStrLen(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'strlen' command")
	}
	n, err := h.store.StrLen(args[1])
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(int64(n))
}

func cmdIncr(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'incr' command")
	}
	n, err := h.store.Incr(args[1])
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(n)
}

func cmdDecr(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'decr' command")
	}
	n, err := h.store.Decr(args[1])
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(n)
}

func cmdIncrBy(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'incrby' command")
	}
	delta, err := parseInt64(args[2])
	if err != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	n, err := h.store.IncrBy(args[1], delta)
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(n)
}

func cmdDecrBy(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'decrby' command")
	}
	delta, err := parseInt64(args[2])
	if err != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	n, err := h.store.DecrBy(args[1], delta)
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(n)
}

func cmdIncrByFloat(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'incrbyfloat' command")
	}
	delta, err := parseFloat(args[2])
	if err != nil {
		return protocol.EncodeError("ERR value is not a valid float")
	}
	n, err := h.store.IncrByFloat(args[1], delta)
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeBulkString(formatFloat(n))
}

func cmdMSet(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 3 || len(args)%2 != 1 {
		return protocol.EncodeError("ERR wrong number of arguments for 'mset' command")
	}
	for i := 1; i < len(args); i += 2 {
		h.store.Set(args[i], args[i+1])
	}
	return protocol.EncodeSimpleString("OK")
}

func cmdMGet(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'mget' command")
	}
	out := make([]*string, len(args)-1)
	for i, key := range args[1:] {
		val, ok, err := h.store.GetString(key)
		if ok && err == nil {
			v := val
			out[i] = &v
		}
	}
	return protocol.EncodeArray(out)
}
