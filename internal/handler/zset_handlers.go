package handler

import (
	"strconv"

	"redserver/internal/protocol"
	"redserver/internal/storage"
)

func (h *CommandHandler) registerZSetCommands() {
	h.commands["ZADD"] = cmdZAdd
	h.commands["ZREM"] = cmdZRem
	h.commands["ZSCORE"] = cmdZScore
	h.commands["ZRANK"] = cmdZRank
	h.commands["ZREVRANK"] = cmdZRevRank
	h.commands["ZCARD"] = cmdZCard
	h.commands["ZRANGE"] = cmdZRange
	h.commands["ZREVRANGE"] = cmdZRevRange
	h.commands["ZRANGEBYSCORE"] = cmdZRangeByScore
	h.commands["ZREVRANGEBYSCORE"] = cmdZRevRangeByScore
	h.commands["ZINCRBY"] = cmdZIncrBy
	h.commands["ZCOUNT"] = cmdZCount
	h.commands["ZPOPMIN"] = cmdZPopMin
	h.commands["ZPOPMAX"] = cmdZPopMax
	h.commands["ZREMRANGEBYSCORE"] = cmdZRemRangeByScore
	h.commands["ZREMRANGEBYRANK"] = cmdZRemRangeByRank
}

func cmdZAdd(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 4 || len(args)%2 != 0 {
		return protocol.EncodeError("ERR wrong number of arguments for 'zadd' command")
	}
	members := make([]storage.ZSetMember, 0, (len(args)-2)/2)
	for i := 2; i < len(args); i += 2 {
		score, err := parseFloat(args[i])
		if err != nil {
			return protocol.EncodeError("ERR value is not a valid float")
		}
		members = append(members, storage.ZSetMember{Score: score, Member: args[i+1]})
	}
	n := h.store.ZAdd(args[1], members)
	if n < 0 {
		return encErr(storage.ErrWrongType)
	}
	return protocol.EncodeInteger(int64(n))
}

func cmdZRem(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'zrem' command")
	}
	return protocol.EncodeInteger(int64(h.store.ZRem(args[1], args[2:])))
}

func cmdZScore(h *CommandHandler, c *Client, args []string) []byte {
	score := h.store.ZScore(args[1], args[2])
	if score == nil {
		return protocol.EncodeNullBulk()
	}
	return protocol.EncodeBulkString(formatFloat(*score))
}

func cmdZRank(h *CommandHandler, c *Client, args []string) []byte {
	rank := h.store.ZRank(args[1], args[2])
	if rank < 0 {
		return protocol.EncodeNullBulk()
	}
	return protocol.EncodeInteger(int64(rank))
}

func cmdZRevRank(h *CommandHandler, c *Client, args []string) []byte {
	rank := h.store.ZRevRank(args[1], args[2])
	if rank < 0 {
		return protocol.EncodeNullBulk()
	}
	return protocol.EncodeInteger(int64(rank))
}

func cmdZCard(h *CommandHandler, c *Client, args []string) []byte {
	return protocol.EncodeInteger(int64(h.store.ZCard(args[1])))
}

func encodeZMembers(members []storage.ZSetMember, withScores bool) []byte {
	out := make([]string, 0, len(members)*2)
	for _, m := range members {
		out = append(out, m.Member)
		if withScores {
			out = append(out, formatFloat(m.Score))
		}
	}
	return protocol.EncodeStringArray(out)
}

func hasWithScores(args []string) bool {
	for _, a := range args {
		if upper(a) == "WITHSCORES" {
			return true
		}
	}
	return false
}

func cmdZRange(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'zrange' command")
	}
	start, err1 := atoi(args[2])
	stop, err2 := atoi(args[3])
	if err1 != nil || err2 != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	return encodeZMembers(h.store.ZRange(args[1], start, stop), hasWithScores(args[4:]))
}

func cmdZRevRange(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'zrevrange' command")
	}
	start, err1 := atoi(args[2])
	stop, err2 := atoi(args[3])
	if err1 != nil || err2 != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	return encodeZMembers(h.store.ZRevRange(args[1], start, stop), hasWithScores(args[4:]))
}

// parseScoreBound parses a ZRANGEBYSCORE bound, handling -inf/+inf.
func parseScoreBound(s string) (float64, error) {
	switch s {
	case "-inf":
		return negInf, nil
	case "+inf", "inf":
		return posInf, nil
	default:
		return strconv.ParseFloat(s, 64)
	}
}

const (
	negInf = -1 << 62
	posInf = 1 << 62
)

func cmdZRangeByScore(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'zrangebyscore' command")
	}
	min, err1 := parseScoreBound(args[2])
	max, err2 := parseScoreBound(args[3])
	if err1 != nil || err2 != nil {
		return protocol.EncodeError("ERR min or max is not a float")
	}
	return encodeZMembers(h.store.ZRangeByScore(args[1], min, max, 0, -1), hasWithScores(args[4:]))
}

func cmdZRevRangeByScore(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'zrevrangebyscore' command")
	}
	max, err1 := parseScoreBound(args[2])
	min, err2 := parseScoreBound(args[3])
	if err1 != nil || err2 != nil {
		return protocol.EncodeError("ERR min or max is not a float")
	}
	return encodeZMembers(h.store.ZRevRangeByScore(args[1], min, max, 0, -1), hasWithScores(args[4:]))
}

func cmdZIncrBy(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'zincrby' command")
	}
	delta, err := parseFloat(args[2])
	if err != nil {
		return protocol.EncodeError("ERR value is not a valid float")
	}
	n, err := h.store.ZIncrBy(args[1], delta, args[3])
	if err != nil {
		return encErr(err)
	}
	return protocol.EncodeBulkString(formatFloat(n))
}

func cmdZCount(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'zcount' command")
	}
	min, err1 := parseScoreBound(args[2])
	max, err2 := parseScoreBound(args[3])
	if err1 != nil || err2 != nil {
		return protocol.EncodeError("ERR min or max is not a float")
	}
	return protocol.EncodeInteger(int64(h.store.ZCount(args[1], min, max)))
}

func cmdZPopMin(h *CommandHandler, c *Client, args []string) []byte {
	m := h.store.ZPopMin(args[1])
	if m == nil {
		return protocol.EncodeStringArray(nil)
	}
	return protocol.EncodeStringArray([]string{m.Member, formatFloat(m.Score)})
}

func cmdZPopMax(h *CommandHandler, c *Client, args []string) []byte {
	m := h.store.ZPopMax(args[1])
	if m == nil {
		return protocol.EncodeStringArray(nil)
	}
	return protocol.EncodeStringArray([]string{m.Member, formatFloat(m.Score)})
}

func cmdZRemRangeByScore(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'zremrangebyscore' command")
	}
	min, err1 := parseScoreBound(args[2])
	max, err2 := parseScoreBound(args[3])
	if err1 != nil || err2 != nil {
		return protocol.EncodeError("ERR min or max is not a float")
	}
	return protocol.EncodeInteger(int64(h.store.ZRemRangeByScore(args[1], min, max)))
}

func cmdZRemRangeByRank(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 4 {
		return protocol.EncodeError("ERR wrong number of arguments for 'zremrangebyrank' command")
	}
	start, err1 := atoi(args[2])
	stop, err2 := atoi(args[3])
	if err1 != nil || err2 != nil {
		return protocol.EncodeError("ERR value is not an integer or out of range")
	}
	return protocol.EncodeInteger(int64(h.store.ZRemRangeByRank(args[1], start, stop)))
}
