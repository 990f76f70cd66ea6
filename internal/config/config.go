// Package config resolves the server's startup configuration: the listen
// port, the on-disk snapshot location, and an optional master to replicate
// from.
package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds everything the server needs to start.
type Config struct {
	Port       int
	Dir        string
	DBFilename string

	// MasterHost/MasterPort are set when --replicaof is given, putting the
	// server in replica mode from boot.
	MasterHost string
	MasterPort int
}

func Default() *Config {
	return &Config{
		Port:       6379,
		Dir:        ".",
		DBFilename: "dump.rdb",
	}
}

// SnapshotPath returns the resolved <dir>/<dbfilename> path.
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.Dir, c.DBFilename)
}

// IsReplica reports whether --replicaof was given.
func (c *Config) IsReplica() bool {
	return c.MasterHost != "" && c.MasterPort != 0
}

// ParseReplicaOf splits a "--replicaof" value of the form "<host> <port>"
// into host and port, the same shape real Redis accepts.
func ParseReplicaOf(value string) (host string, port int, err error) {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("replicaof: expected \"<host> <port>\", got %q", value)
	}
	port, err = strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, fmt.Errorf("replicaof: invalid port %q: %w", fields[1], err)
	}
	return fields[0], port, nil
}
