package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"redserver/internal/storage"
)

func newTestHandler() *CommandHandler {
	store := storage.NewStore()
	return NewCommandHandler(store, nil, 6379, DefaultHandlerConfig())
}

func newTestClient() *Client {
	return &Client{SubChannels: make(map[string]bool), SubPatterns: make(map[string]bool)}
}

func TestDispatchSetAndGet(t *testing.T) {
	h := newTestHandler()
	c := newTestClient()

	reply := h.dispatch(c, []string{"SET", "k", "v"})
	assert.Equal(t, "+OK\r\n", string(reply))

	reply = h.dispatch(c, []string{"GET", "k"})
	assert.Equal(t, "$1\r\nv\r\n", string(reply))
}

func TestDispatchUnknownCommand(t *testing.T) {
	h := newTestHandler()
	c := newTestClient()

	reply := h.dispatch(c, []string{"NOTACOMMAND"})
	assert.Contains(t, string(reply), "ERR unknown command")
}

func TestDispatchQueuesInsideMulti(t *testing.T) {
	h := newTestHandler()
	c := newTestClient()

	reply := h.dispatch(c, []string{"MULTI"})
	assert.Equal(t, "+OK\r\n", string(reply))

	reply = h.dispatch(c, []string{"SET", "k", "v"})
	assert.Equal(t, "+QUEUED\r\n", string(reply))
	assert.Len(t, c.Queue, 1)

	reply = h.dispatch(c, []string{"EXEC"})
	assert.Equal(t, "*1\r\n+OK\r\n", string(reply))

	val, ok := h.store.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", val.Str)
}

func TestDispatchMultiUnknownCommandYieldsNullBulkAtThatIndex(t *testing.T) {
	h := newTestHandler()
	c := newTestClient()

	h.dispatch(c, []string{"MULTI"})
	reply := h.dispatch(c, []string{"NOTACOMMAND"})
	assert.Equal(t, "+QUEUED\r\n", string(reply))
	h.dispatch(c, []string{"SET", "k", "v"})

	reply = h.dispatch(c, []string{"EXEC"})
	got := string(reply)
	assert.True(t, strings.HasPrefix(got, "*2\r\n"))
	assert.Contains(t, got, "$-1\r\n")
	assert.Contains(t, got, "+OK\r\n")
}

func TestWatchDetectsKeyChangedBeforeExec(t *testing.T) {
	h := newTestHandler()
	c := newTestClient()

	h.dispatch(c, []string{"SET", "k", "v1"})
	h.dispatch(c, []string{"WATCH", "k"})
	h.dispatch(c, []string{"MULTI"})
	h.dispatch(c, []string{"SET", "k", "queued-value"})

	// A concurrent client mutates k before EXEC runs.
	h.store.Set("k", "v2")

	reply := h.dispatch(c, []string{"EXEC"})
	assert.Equal(t, "*-1\r\n", string(reply))

	val, _ := h.store.Get("k")
	assert.Equal(t, "v2", val.Str)
}

func TestApplyReplicatedCommand(t *testing.T) {
	h := newTestHandler()
	err := h.ApplyReplicatedCommand([]string{"SET", "k", "v"})
	assert.NoError(t, err)

	val, ok := h.store.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", val.Str)
}

func TestApplyReplicatedCommandUnknown(t *testing.T) {
	h := newTestHandler()
	err := h.ApplyReplicatedCommand([]string{"NOTACOMMAND"})
	assert.Error(t, err)
}
