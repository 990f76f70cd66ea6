package handler

import "redserver/internal/protocol"

func (h *CommandHandler) registerSetCommands() {
	h.commands["SADD"] = cmdSAdd
	h.commands["SREM"] = cmdSRem
	h.commands["SISMEMBER"] = cmdSIsMember
	h.commands["SMEMBERS"] = cmdSMembers
	h.commands["SCARD"] = cmdSCard
	h.commands["SRANDMEMBER"] = cmdSRandMember
	h.commands["SPOP"] = cmdSPop
	h.commands["SUNION"] = cmdSUnion
	h.commands["SINTER"] = cmdSInter
	h.commands["SDIFF"] = cmdSDiff
	h.commands["SMOVE"] = cmdSMove
	h.commands["SUNIONSTORE"] = cmdSUnionStore
	h.commands["SINTERSTORE"] = cmdSInterStore
	h.commands["SDIFFSTORE"] = cmdSDiffStore
}

func cmdSAdd(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'sadd' command")
	}
	return protocol.EncodeInteger(int64(h.store.SAdd(args[1], args[2:]...)))
}

func cmdSRem(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'srem' command")
	}
	return protocol.EncodeInteger(int64(h.store.SRem(args[1], args[2:]...)))
}

func cmdSIsMember(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'sismember' command")
	}
	if h.store.SIsMember(args[1], args[2]) {
		return protocol.EncodeInteger(1)
	}
	return protocol.EncodeInteger(0)
}

func cmdSMembers(h *CommandHandler, c *Client, args []string) []byte {
	return protocol.EncodeStringArray(h.store.SMembers(args[1]))
}

func cmdSCard(h *CommandHandler, c *Client, args []string) []byte {
	return protocol.EncodeInteger(int64(h.store.SCard(args[1])))
}

func cmdSRandMember(h *CommandHandler, c *Client, args []string) []byte {
	count := 1
	if len(args) == 3 {
		var err error
		count, err = atoi(args[2])
		if err != nil {
			return protocol.EncodeError("ERR value is not an integer or out of range")
		}
	}
	vals := h.store.SRandMember(args[1], count)
	if len(args) == 2 {
		if len(vals) == 0 {
			return protocol.EncodeNullBulk()
		}
		return protocol.EncodeBulkString(vals[0])
	}
	return protocol.EncodeStringArray(vals)
}

func cmdSPop(h *CommandHandler, c *Client, args []string) []byte {
	count := 1
	if len(args) == 3 {
		var err error
		count, err = atoi(args[2])
		if err != nil {
			return protocol.EncodeError("ERR value is not an integer or out of range")
		}
	}
	vals := h.store.SPop(args[1], count)
	if len(args) == 2 {
		if len(vals) == 0 {
			return protocol.EncodeNullBulk()
		}
		return protocol.EncodeBulkString(vals[0])
	}
	return protocol.EncodeStringArray(vals)
}

func cmdSUnion(h *CommandHandler, c *Client, args []string) []byte {
	return protocol.EncodeStringArray(h.store.SUnion(args[1:]...))
}

func cmdSInter(h *CommandHandler, c *Client, args []string) []byte {
	return protocol.EncodeStringArray(h.store.SInter(args[1:]...))
}

func cmdSDiff(h *CommandHandler, c *Client, args []string) []byte {
	return protocol.EncodeStringArray(h.store.SDiff(args[1:]...))
}

func cmdSMove(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'smove' command")
	}
	if h.store.SMove(args[1], args[2], args[3]) {
		return protocol.EncodeInteger(1)
	}
	return protocol.EncodeInteger(0)
}

func cmdSUnionStore(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'sunionstore' command")
	}
	return protocol.EncodeInteger(int64(h.store.SUnionStore(args[1], args[2:]...)))
}

func cmdSInterStore(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'sinterstore' command")
	}
	return protocol.EncodeInteger(int64(h.store.SInterStore(args[1], args[2:]...)))
}

func cmdSDiffStore(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'sdiffstore' command")
	}
	return protocol.EncodeInteger(int64(h.store.SDiffStore(args[1], args[2:]...)))
}
