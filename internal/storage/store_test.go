package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSetDelete(t *testing.T) {
	s := NewStore()
	s.Set("k", "v")

	v, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v.Str)

	assert.True(t, s.Delete("k"))
	_, ok = s.Get("k")
	assert.False(t, ok)
	assert.False(t, s.Delete("k"))
}

func TestExpireAndTTL(t *testing.T) {
	s := NewStore()
	s.Set("k", "v")

	assert.Equal(t, int64(-1), s.TTL("k"))
	assert.Equal(t, int64(-2), s.TTL("missing"))

	deadline := time.Now().Add(time.Hour)
	ok := s.Expire("k", &deadline)
	assert.True(t, ok)
	assert.Greater(t, s.TTL("k"), int64(0))

	ok = s.Expire("k", nil)
	assert.True(t, ok)
	assert.Equal(t, int64(-1), s.TTL("k"))
}

func TestExpireMissingKeyReturnsFalse(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Expire("missing", nil))
}

func TestLazyExpiryOnGet(t *testing.T) {
	s := NewStore()
	s.Set("k", "v")
	past := time.Now().Add(-time.Second)
	s.Expire("k", &past)

	_, ok := s.Get("k")
	assert.False(t, ok)
}

func TestDBSizeCountsNonExpiredKeys(t *testing.T) {
	s := NewStore()
	s.Set("a", "1")
	s.Set("b", "2")
	past := time.Now().Add(-time.Second)
	s.Set("c", "3")
	s.Expire("c", &past)

	assert.Equal(t, 2, s.DBSize())
}

func TestKeysMatchesGlobPattern(t *testing.T) {
	s := NewStore()
	s.Set("user:1", "a")
	s.Set("user:2", "b")
	s.Set("order:1", "c")

	keys := s.Keys("user:*")
	assert.Len(t, keys, 2)
}

func TestFlushClearsEverything(t *testing.T) {
	s := NewStore()
	s.Set("a", "1")
	s.Set("b", "2")
	s.Flush()
	assert.Equal(t, 0, s.DBSize())
}
