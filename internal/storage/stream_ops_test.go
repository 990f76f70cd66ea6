package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXAddExplicitIDsMustIncrease(t *testing.T) {
	s := NewStore()
	id, err := s.XAdd("stream", "1-1", []string{"field", "value"})
	assert.NoError(t, err)
	assert.Equal(t, StreamID{Ms: 1, Seq: 1}, id)

	_, err = s.XAdd("stream", "1-1", []string{"field", "value"})
	assert.ErrorIs(t, err, ErrStreamIDTooSmall)

	id, err = s.XAdd("stream", "1-2", []string{"field", "value2"})
	assert.NoError(t, err)
	assert.Equal(t, StreamID{Ms: 1, Seq: 2}, id)
}

func TestXAddAutoSeqFreshStreamStartsAtOne(t *testing.T) {
	s := NewStore()
	id, err := s.XAdd("stream", "0-*", []string{"f", "v"})
	assert.NoError(t, err)
	assert.Equal(t, StreamID{Ms: 0, Seq: 1}, id)
}

func TestXAddAutoSeqContinuesWithinSameMs(t *testing.T) {
	s := NewStore()
	s.XAdd("stream", "5-0", []string{"f", "v"})
	id, err := s.XAdd("stream", "5-*", []string{"f", "v"})
	assert.NoError(t, err)
	assert.Equal(t, StreamID{Ms: 5, Seq: 1}, id)
}

func TestXAddRejectsZeroID(t *testing.T) {
	s := NewStore()
	_, err := s.XAdd("stream", "0-0", []string{"f", "v"})
	assert.ErrorIs(t, err, ErrStreamIDZero)
}

func TestXAddWrongType(t *testing.T) {
	s := NewStore()
	s.Set("k", "v")
	_, err := s.XAdd("k", "1-1", []string{"f", "v"})
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestXRangeAndXRevRange(t *testing.T) {
	s := NewStore()
	s.XAdd("stream", "1-1", []string{"a", "1"})
	s.XAdd("stream", "2-1", []string{"a", "2"})
	s.XAdd("stream", "3-1", []string{"a", "3"})

	entries, err := s.XRange("stream", StreamID{Ms: 0}, StreamID{Ms: 1 << 62}, 0)
	assert.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, StreamID{Ms: 1, Seq: 1}, entries[0].ID)

	rev, err := s.XRevRange("stream", StreamID{Ms: 0}, StreamID{Ms: 1 << 62}, 0)
	assert.NoError(t, err)
	assert.Equal(t, StreamID{Ms: 3, Seq: 1}, rev[0].ID)
}

func TestXReadAfterOnlyReturnsNewerEntries(t *testing.T) {
	s := NewStore()
	s.XAdd("stream", "1-1", []string{"a", "1"})
	s.XAdd("stream", "2-1", []string{"a", "2"})

	entries, err := s.XReadAfter("stream", StreamID{Ms: 1, Seq: 1}, 0)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, StreamID{Ms: 2, Seq: 1}, entries[0].ID)
}

func TestXLenAndXLastID(t *testing.T) {
	s := NewStore()
	s.XAdd("stream", "1-1", []string{"a", "1"})
	s.XAdd("stream", "2-1", []string{"a", "2"})

	length, err := s.XLen("stream")
	assert.NoError(t, err)
	assert.Equal(t, 2, length)

	last, err := s.XLastID("stream")
	assert.NoError(t, err)
	assert.Equal(t, StreamID{Ms: 2, Seq: 1}, last)
}

func TestParseStreamIDSpecialValues(t *testing.T) {
	id, err := ParseStreamID("-")
	assert.NoError(t, err)
	assert.Equal(t, StreamID{}, id)

	id, err = ParseStreamID("5")
	assert.NoError(t, err)
	assert.Equal(t, StreamID{Ms: 5, Seq: 0}, id)

	_, err = ParseStreamID("notanumber")
	assert.ErrorIs(t, err, ErrStreamIDInvalid)
}
