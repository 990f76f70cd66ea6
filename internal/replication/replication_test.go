package replication

import (
	"bufio"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewReplicationManagerAssignsReplID(t *testing.T) {
	rm := NewReplicationManager(RoleMaster)
	assert.Len(t, rm.GetReplID(), 40)
	assert.Equal(t, RoleMaster, rm.GetRole())
	assert.Equal(t, int64(0), rm.GetOffset())
}

func TestPropagateCommandBumpsOffset(t *testing.T) {
	rm := NewReplicationManager(RoleMaster)
	rm.PropagateCommand([]string{"SET", "k", "v"})

	expected := int64(len(encodeCommandRESP([]string{"SET", "k", "v"})))
	assert.Equal(t, expected, rm.GetOffset())
}

func TestPropagateCommandNoopOnReplica(t *testing.T) {
	rm := NewReplicationManager(RoleReplica)
	rm.PropagateCommand([]string{"SET", "k", "v"})
	assert.Equal(t, int64(0), rm.GetOffset())
}

func TestAddAndRemoveReplica(t *testing.T) {
	rm := NewReplicationManager(RoleMaster)
	serverSide, clientSide := net.Pipe()
	defer clientSide.Close()

	id := NewReplicaID()
	replica := rm.AddReplica(serverSide, id)
	assert.Equal(t, ReplicaStateOnline, replica.State)
	assert.Equal(t, 1, rm.ConnectedReplicaCount())

	got, ok := rm.GetReplica(id)
	assert.True(t, ok)
	assert.Equal(t, replica, got)

	rm.RemoveReplica(id)
	assert.Equal(t, 0, rm.ConnectedReplicaCount())
}

func TestUpdateReplicaOffset(t *testing.T) {
	rm := NewReplicationManager(RoleMaster)
	serverSide, clientSide := net.Pipe()
	defer clientSide.Close()
	defer serverSide.Close()

	id := NewReplicaID()
	rm.AddReplica(serverSide, id)
	rm.UpdateReplicaOffset(id, 42)

	replica, _ := rm.GetReplica(id)
	assert.Equal(t, int64(42), replica.Offset)
}

func TestMinimalSnapshotPayloadShape(t *testing.T) {
	payload := MinimalSnapshotPayload()
	assert.True(t, len(payload) > 10)
	assert.Equal(t, []byte("REDIS0011"), payload[:9])
	assert.Equal(t, byte(0xFF), payload[9])
}

func TestBuildFullResyncPayloadFallsBackWhenFileMissing(t *testing.T) {
	payload := BuildFullResyncPayload(filepath.Join(t.TempDir(), "nope.rdb"))
	assert.Equal(t, MinimalSnapshotPayload(), payload)
}

func TestBuildFullResyncPayloadReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.rdb")
	want := []byte("some-snapshot-bytes")
	assert.NoError(t, os.WriteFile(path, want, 0644))

	payload := BuildFullResyncPayload(path)
	assert.Equal(t, want, payload)
}

func TestGetInfoMasterRole(t *testing.T) {
	rm := NewReplicationManager(RoleMaster)
	info := rm.GetInfo()
	assert.Equal(t, "master", info["role"])
	assert.Equal(t, 0, info["connected_slaves"])
}

func TestRunAckHeartbeatUpdatesOffsetFromReplicaAck(t *testing.T) {
	rm := NewReplicationManager(RoleMaster)
	masterSide, replicaSide := net.Pipe()
	defer replicaSide.Close()

	id := NewReplicaID()
	rm.AddReplica(masterSide, id)

	go func() {
		reader := bufio.NewReader(replicaSide)
		args, err := readRESPArray(reader)
		if err != nil || len(args) < 2 || args[0] != "REPLCONF" || args[1] != "GETACK" {
			return
		}
		replicaSide.Write([]byte("*3\r\n$8\r\nREPLCONF\r\n$3\r\nACK\r\n$3\r\n123\r\n"))
	}()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if replica, ok := rm.GetReplica(id); ok && replica.Offset == 123 {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("replica offset was never updated from a GETACK/ACK round trip")
}

func TestReplicationBacklogAppendAndGetRange(t *testing.T) {
	backlog := NewReplicationBacklog(16)
	backlog.Append([]byte("hello"))

	data, ok := backlog.GetRange(0)
	assert.True(t, ok)
	assert.Equal(t, []byte("hello"), data)

	_, ok = backlog.GetRange(100)
	assert.False(t, ok)
}
