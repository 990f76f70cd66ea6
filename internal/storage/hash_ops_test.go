package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSetAndHGet(t *testing.T) {
	s := NewStore()
	n, err := s.HSet("h", "f1", "v1", "f2", "v2")
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	val, ok, err := s.HGet("h", "f1")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", val)

	_, ok, err = s.HGet("h", "missing")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestHSetOddArgsErrors(t *testing.T) {
	s := NewStore()
	_, err := s.HSet("h", "f1")
	assert.ErrorIs(t, err, ErrWrongNumArgs)
}

func TestHSetOverwriteDoesNotCountAsNew(t *testing.T) {
	s := NewStore()
	s.HSet("h", "f1", "v1")
	n, err := s.HSet("h", "f1", "v2")
	assert.NoError(t, err)
	assert.Equal(t, 0, n)

	val, _, _ := s.HGet("h", "f1")
	assert.Equal(t, "v2", val)
}

func TestHDelRemovesEmptyHashKey(t *testing.T) {
	s := NewStore()
	s.HSet("h", "f1", "v1")
	n, err := s.HDel("h", "f1")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	length, err := s.HLen("h")
	assert.NoError(t, err)
	assert.Equal(t, 0, length)
}

func TestHSetNX(t *testing.T) {
	s := NewStore()
	ok, err := s.HSetNX("h", "f1", "v1")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.HSetNX("h", "f1", "v2")
	assert.NoError(t, err)
	assert.False(t, ok)

	val, _, _ := s.HGet("h", "f1")
	assert.Equal(t, "v1", val)
}

func TestHIncrByAndInvalidValue(t *testing.T) {
	s := NewStore()
	n, err := s.HIncrBy("h", "counter", 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), n)

	n, err = s.HIncrBy("h", "counter", -2)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)

	s.HSet("h", "notanumber", "abc")
	_, err = s.HIncrBy("h", "notanumber", 1)
	assert.ErrorIs(t, err, ErrHashValueNotInteger)
}

func TestHIncrByFloat(t *testing.T) {
	s := NewStore()
	n, err := s.HIncrByFloat("h", "f", 1.5)
	assert.NoError(t, err)
	assert.Equal(t, 1.5, n)

	n, err = s.HIncrByFloat("h", "f", 1.5)
	assert.NoError(t, err)
	assert.Equal(t, 3.0, n)
}

func TestHGetAllHashWrongType(t *testing.T) {
	s := NewStore()
	s.Set("k", "v")
	_, err := s.HGetAll("k")
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestHashSetReportsNewVsExistingField(t *testing.T) {
	h := NewHash()
	assert.True(t, h.Set("f", "1"))
	assert.False(t, h.Set("f", "2"))
	val, ok := h.Get("f")
	assert.True(t, ok)
	assert.Equal(t, "2", val)
}
