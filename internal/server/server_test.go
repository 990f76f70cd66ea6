package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"redserver/internal/config"
)

func TestLoadSnapshotReportsExistence(t *testing.T) {
	assert.False(t, LoadSnapshot(filepath.Join(t.TempDir(), "missing.rdb")))

	path := filepath.Join(t.TempDir(), "dump.rdb")
	assert.NoError(t, os.WriteFile(path, []byte("data"), 0644))
	assert.True(t, LoadSnapshot(path))
}

func TestNewWiresMasterRoleByDefault(t *testing.T) {
	cfg := config.Default()
	cfg.Port = 0
	srv := New(cfg)
	assert.NotNil(t, srv)
	assert.NotNil(t, srv.handler)
	assert.NotNil(t, srv.store)
}

func TestNewWiresReplicaRoleWhenReplicaOfGiven(t *testing.T) {
	cfg := config.Default()
	cfg.MasterHost = "127.0.0.1"
	cfg.MasterPort = 6380
	srv := New(cfg)
	assert.True(t, srv.cfg.IsReplica())
}
