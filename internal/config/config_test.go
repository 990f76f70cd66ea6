package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReplicaOf(t *testing.T) {
	host, port, err := ParseReplicaOf("127.0.0.1 6380")
	assert.NoError(t, err)
	assert.Equal(t, "127.0.0.1", host)
	assert.Equal(t, 6380, port)
}

func TestParseReplicaOfInvalidShape(t *testing.T) {
	_, _, err := ParseReplicaOf("127.0.0.1")
	assert.Error(t, err)

	_, _, err = ParseReplicaOf("127.0.0.1 6380 extra")
	assert.Error(t, err)
}

func TestParseReplicaOfInvalidPort(t *testing.T) {
	_, _, err := ParseReplicaOf("127.0.0.1 notaport")
	assert.Error(t, err)
}

func TestSnapshotPath(t *testing.T) {
	cfg := &Config{Dir: "/data", DBFilename: "dump.rdb"}
	assert.Equal(t, "/data/dump.rdb", cfg.SnapshotPath())
}

func TestIsReplica(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.IsReplica())

	cfg.MasterHost = "127.0.0.1"
	cfg.MasterPort = 6380
	assert.True(t, cfg.IsReplica())
}
