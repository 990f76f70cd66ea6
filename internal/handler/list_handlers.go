package handler

import (
	"errors"
	"time"

	"redserver/internal/protocol"
)

var errArgCount = errors.New("ERR wrong number of arguments")

const blockPollInterval = 10 * time.Millisecond

func (h *CommandHandler) registerListCommands() {
	h.commands["LPUSH"] = cmdLPush
	h.commands["RPUSH"] = cmdRPush
	h.commands["LPOP"] = cmdLPop
	h.commands["RPOP"] = cmdRPop
	h.commands["LLEN"] = cmdLLen
	h.commands["LRANGE"] = cmdLRange
	h.commands["LINDEX"] = cmdLIndex
	h.commands["LSET"] = cmdLSet
	h.commands["LREM"] = cmdLRem
	h.commands["LTRIM"] = cmdLTrim
	h.commands["LINSERT"] = cmdLInsert
	h.commands["BLPOP"] = cmdBLPop
	h.commands["BRPOP"] = cmdBRPop
}

func cmdLPush(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'lpush' command")
	}
	n, err := h.store.LPush(args[1], args[2:]...)
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(int64(n))
}

func cmdRPush(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'rpush' command")
	}
	n, err := h.store.RPush(args[1], args[2:]...)
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(int64(n))
}

func popCount(args []string) (int, error) {
	if len(args) == 2 {
		return 1, nil
	}
	if len(args) == 3 {
		return atoi(args[2])
	}
	return 0, errArgCount
}

func cmdLPop(h *CommandHandler, c *Client, args []string) []byte {
	count, err := popCount(args)
	if err != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	vals, err := h.store.LPop(args[1], count)
	if err != nil {
		return encErr(err)
	}
	if len(args) == 2 {
		if len(vals) == 0 {
			return protocol.EncodeNullBulk()
		}
		return protocol.EncodeBulkString(vals[0])
	}
	if vals == nil {
		return protocol.EncodeNullArray()
	}
	return protocol.EncodeStringArray(vals)
}

func cmdRPop(h *CommandHandler, c *Client, args []string) []byte {
	count, err := popCount(args)
	if err != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	vals, err := h.store.RPop(args[1], count)
	if err != nil {
		return encErr(err)
	}
	if len(args) == 2 {
		if len(vals) == 0 {
			return protocol.EncodeNullBulk()
		}
		return protocol.EncodeBulkString(vals[0])
	}
	if vals == nil {
		return protocol.EncodeNullArray()
	}
	return protocol.EncodeStringArray(vals)
}

func cmdLLen(h *CommandHandler, c *Client, args []string) []byte {
	n, err := h.store.LLen(args[1])
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(int64(n))
}

func cmdLRange(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'lrange' command")
	}
	start, err1 := atoi(args[2])
	stop, err2 := atoi(args[3])
	if err1 != nil || err2 != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	vals, err := h.store.LRange(args[1], start, stop)
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeStringArray(vals)
}

func cmdLIndex(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'lindex' command")
	}
	index, err := atoi(args[2])
	if err != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	val, ok, err := h.store.LIndex(args[1], index)
	if err != nil {
		return encErr(err)
	}
	if !ok {
		return protocol.EncodeNullBulk()
	}
	return protocol.EncodeBulkString(val)
}

func cmdLSet(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'lset' command")
	}
	index, err := atoi(args[2])
	if err != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	if err := h.store.LSet(args[1], index, args[3]); err != nil {
		return encErr(err)
	}
	return protocol.EncodeSimpleString("OK")
}

func cmdLRem(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'lrem' command")
	}
	count, err := atoi(args[2])
	if err != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	n, err := h.store.LRem(args[1], count, args[3])
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(int64(n))
}

func cmdLTrim(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'ltrim' command")
	}
	start, err1 := atoi(args[2])
	stop, err2 := atoi(args[3])
	if err1 != nil || err2 != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	if err := h.store.LTrim(args[1], start, stop); err != nil {
		return encErr(err)
	}
	return protocol.EncodeSimpleString("OK")
}

func cmdLInsert(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 5 {
		return protocol.EncodeError("ERR wrong number of arguments for 'linsert' command")
	}
	var before bool
	switch upper(args[2]) {
	case "BEFORE":
		before = true
	case "AFTER":
		before = false
	default:
		return protocol.EncodeError("ERR syntax error")
	}
	n, err := h.store.LInsert(args[1], before, args[3], args[4])
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeInteger(int64(n))
}

// blockingTimeout parses the fractional-seconds timeout argument BLPOP/BRPOP
// take; 0 means block indefinitely.
func blockingTimeout(s string) (time.Duration, error) {
	secs, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if secs <= 0 {
		return 0, nil
	}
	return time.Duration(secs * float64(time.Second)), nil
}

func cmdBLPop(h *CommandHandler, c *Client, args []string) []byte {
	return blockingPop(h, args, h.store.LPop)
}

func cmdBRPop(h *CommandHandler, c *Client, args []string) []byte {
	return blockingPop(h, args, h.store.RPop)
}

// blockingPop repeatedly tries pop across the listed keys in order,
// sleeping blockPollInterval between attempts, until one yields a value or
// the timeout expires.
func blockingPop(h *CommandHandler, args []string, pop func(string, int) ([]string, error)) []byte {
	if len(args) < 3 {
		return protocol.EncodeError("ERR wrong number of arguments")
	}
	keys := args[1 : len(args)-1]
	timeout, err := blockingTimeout(args[len(args)-1])
	if err != nil {
		return protocol.EncodeError("ERR timeout is not a float or out of range")
	}

	deadline := time.Now().Add(timeout)
	for {
		for _, key := range keys {
			vals, err := pop(key, 1)
			if err != nil {
				return encErr(err)
			}
			if len(vals) > 0 {
				out := []*string{&key, &vals[0]}
				return protocol.EncodeArray(out)
			}
		}
		if timeout > 0 && time.Now().After(deadline) {
			return protocol.EncodeNullArray()
		}
		time.Sleep(blockPollInterval)
	}
}
