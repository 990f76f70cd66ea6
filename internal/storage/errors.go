package storage

import "errors"

var (
	// General errors
	ErrKeyNotFound      = errors.New("key not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrWrongType        = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")

	// List errors
	ErrNoSuchKey       = errors.New("ERR no such key")
	ErrIndexOutOfRange = errors.New("ERR index out of range")

	// Hash errors
	ErrWrongNumArgs        = errors.New("ERR wrong number of arguments for 'hset' command")
	ErrHashValueNotInteger = errors.New("ERR hash value is not an integer")
	ErrHashValueNotFloat   = errors.New("ERR hash value is not a float")

	// Stream errors
	ErrStreamIDInvalid       = errors.New("ERR Invalid stream ID specified as stream command argument")
	ErrStreamIDTooSmall      = errors.New("ERR The ID specified in XADD is equal or smaller than the target stream top item")
	ErrStreamIDZero          = errors.New("ERR The ID specified in XADD must be greater than 0-0")

	// Geo errors
	ErrGeoInvalidCoordinates = errors.New("ERR invalid longitude,latitude pair")
)
