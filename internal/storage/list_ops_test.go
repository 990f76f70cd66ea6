package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLPushRPushAndRange(t *testing.T) {
	s := NewStore()
	n, err := s.RPush("l", "a", "b", "c")
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.LPush("l", "z")
	assert.NoError(t, err)
	assert.Equal(t, 4, n)

	vals, err := s.LRange("l", 0, -1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "b", "c"}, vals)
}

func TestLPushWrongType(t *testing.T) {
	s := NewStore()
	s.Set("k", "v")
	_, err := s.LPush("k", "x")
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestLPopRPopEmptyKeyReturnsNoError(t *testing.T) {
	s := NewStore()
	vals, err := s.LPop("missing", 1)
	assert.NoError(t, err)
	assert.Nil(t, vals)

	vals, err = s.RPop("missing", 1)
	assert.NoError(t, err)
	assert.Nil(t, vals)
}

func TestLPopRemovesEmptyListKey(t *testing.T) {
	s := NewStore()
	s.RPush("l", "a")
	vals, err := s.LPop("l", 1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a"}, vals)

	n, err := s.LLen("l")
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestLRemCountVariants(t *testing.T) {
	s := NewStore()
	s.RPush("l", "a", "b", "a", "c", "a")

	removed, err := s.LRem("l", 2, "a")
	assert.NoError(t, err)
	assert.Equal(t, 2, removed)
	vals, _ := s.LRange("l", 0, -1)
	assert.Equal(t, []string{"b", "c", "a"}, vals)

	s2 := NewStore()
	s2.RPush("l2", "a", "b", "a")
	removed, _ = s2.LRem("l2", 0, "a")
	assert.Equal(t, 2, removed)
}

func TestLInsertBeforeAfter(t *testing.T) {
	s := NewStore()
	s.RPush("l", "a", "c")

	n, err := s.LInsert("l", true, "c", "b")
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	vals, _ := s.LRange("l", 0, -1)
	assert.Equal(t, []string{"a", "b", "c"}, vals)

	n, err = s.LInsert("l", false, "missing-pivot", "x")
	assert.NoError(t, err)
	assert.Equal(t, -1, n)
}

func TestLSetOutOfRange(t *testing.T) {
	s := NewStore()
	s.RPush("l", "a")
	err := s.LSet("l", 5, "x")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestLTrim(t *testing.T) {
	s := NewStore()
	s.RPush("l", "a", "b", "c", "d")
	err := s.LTrim("l", 1, 2)
	assert.NoError(t, err)
	vals, _ := s.LRange("l", 0, -1)
	assert.Equal(t, []string{"b", "c"}, vals)
}

func TestListTrimNegativeIndicesMatchRange(t *testing.T) {
	l := NewList()
	for _, v := range []string{"a", "b", "c", "d", "e"} {
		l.PushBack(v)
	}

	expected := l.Range(-3, -1)
	l.Trim(-3, -1)
	assert.Equal(t, expected, l.ToSlice())
}

func TestListTrimEmptiesOnInvertedRange(t *testing.T) {
	l := NewList()
	l.PushBack("a")
	l.PushBack("b")

	l.Trim(1, 0)
	assert.Equal(t, 0, l.Length)
	assert.Nil(t, l.Head)
	assert.Nil(t, l.Tail)
}
