package handler

// writeCommands is the set of commands whose effects must propagate to
// replicas. A command absent from this set is treated as read-only.
var writeCommands = map[string]bool{
	// String commands
	"SET": true, "SETNX": true,
	"APPEND": true, "INCR": true, "DECR": true, "INCRBY": true, "DECRBY": true,
	"INCRBYFLOAT": true, "GETSET": true, "MSET": true,

	// Key commands
	"DEL": true, "UNLINK": true, "EXPIRE": true,
	"PEXPIRE": true, "PERSIST": true,

	// Hash commands
	"HSET": true, "HSETNX": true, "HDEL": true,
	"HINCRBY": true, "HINCRBYFLOAT": true,

	// List commands
	"LPUSH": true, "RPUSH": true,
	"LPOP": true, "RPOP": true, "LSET": true, "LINSERT": true,
	"LREM": true, "LTRIM": true,
	"BLPOP": true, "BRPOP": true,

	// Set commands
	"SADD": true, "SREM": true, "SPOP": true, "SMOVE": true,
	"SUNIONSTORE": true, "SINTERSTORE": true, "SDIFFSTORE": true,

	// Sorted set commands
	"ZADD": true, "ZREM": true, "ZINCRBY": true, "ZREMRANGEBYRANK": true,
	"ZREMRANGEBYSCORE": true, "ZPOPMIN": true, "ZPOPMAX": true,

	// Geo commands
	"GEOADD": true,

	// Stream commands
	"XADD": true,

	// Pub/Sub commands (writes to pub/sub state)
	"PUBLISH": true,

	// Admin commands
	"FLUSHDB": true, "FLUSHALL": true,
}

// IsWriteCommand checks if a command is a write operation
// This is a package-level utility that can be used by any handler
func IsWriteCommand(cmd string) bool {
	return writeCommands[cmd]
}
