package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZAddAndScore(t *testing.T) {
	s := NewStore()
	n := s.ZAdd("leaderboard", []ZSetMember{{Score: 1, Member: "alice"}, {Score: 2, Member: "bob"}})
	assert.Equal(t, 2, n)

	score := s.ZScore("leaderboard", "bob")
	assert.NotNil(t, score)
	assert.Equal(t, 2.0, *score)

	assert.Nil(t, s.ZScore("leaderboard", "carol"))
}

func TestZAddUpdateDoesNotCountAsNew(t *testing.T) {
	s := NewStore()
	s.ZAdd("z", []ZSetMember{{Score: 1, Member: "alice"}})
	n := s.ZAdd("z", []ZSetMember{{Score: 5, Member: "alice"}})
	assert.Equal(t, 0, n)

	score := s.ZScore("z", "alice")
	assert.Equal(t, 5.0, *score)
}

func TestZAddWrongType(t *testing.T) {
	s := NewStore()
	s.Set("k", "v")
	n := s.ZAdd("k", []ZSetMember{{Score: 1, Member: "a"}})
	assert.Equal(t, -1, n)
}

func TestZRangeAndRevRange(t *testing.T) {
	s := NewStore()
	s.ZAdd("z", []ZSetMember{{Score: 1, Member: "a"}, {Score: 2, Member: "b"}, {Score: 3, Member: "c"}})

	members := s.ZRange("z", 0, -1)
	assert.Len(t, members, 3)
	assert.Equal(t, "a", members[0].Member)
	assert.Equal(t, "c", members[2].Member)

	rev := s.ZRevRange("z", 0, -1)
	assert.Equal(t, "c", rev[0].Member)
	assert.Equal(t, "a", rev[2].Member)
}

func TestZRankAndRevRank(t *testing.T) {
	s := NewStore()
	s.ZAdd("z", []ZSetMember{{Score: 1, Member: "a"}, {Score: 2, Member: "b"}})

	assert.Equal(t, 0, s.ZRank("z", "a"))
	assert.Equal(t, 1, s.ZRank("z", "b"))
	assert.Equal(t, 0, s.ZRevRank("z", "b"))
	assert.Equal(t, -1, s.ZRank("z", "missing"))
}

func TestZIncrByCreatesKey(t *testing.T) {
	s := NewStore()
	next, err := s.ZIncrBy("z", 2.5, "a")
	assert.NoError(t, err)
	assert.Equal(t, 2.5, next)

	next, err = s.ZIncrBy("z", 2.5, "a")
	assert.NoError(t, err)
	assert.Equal(t, 5.0, next)
}

func TestZRemRangeByScoreAndRank(t *testing.T) {
	s := NewStore()
	s.ZAdd("z", []ZSetMember{{Score: 1, Member: "a"}, {Score: 2, Member: "b"}, {Score: 3, Member: "c"}})

	removed := s.ZRemRangeByScore("z", 1, 2)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, s.ZCard("z"))

	s.ZAdd("z2", []ZSetMember{{Score: 1, Member: "a"}, {Score: 2, Member: "b"}, {Score: 3, Member: "c"}})
	removed = s.ZRemRangeByRank("z2", 0, 1)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, s.ZCard("z2"))
}

func TestZPopMinMax(t *testing.T) {
	s := NewStore()
	s.ZAdd("z", []ZSetMember{{Score: 1, Member: "a"}, {Score: 2, Member: "b"}})

	min := s.ZPopMin("z")
	assert.NotNil(t, min)
	assert.Equal(t, "a", min.Member)

	max := s.ZPopMax("z")
	assert.NotNil(t, max)
	assert.Equal(t, "b", max.Member)

	assert.Equal(t, 0, s.ZCard("z"))
}

func TestZGetAllOrderedByScore(t *testing.T) {
	s := NewStore()
	s.ZAdd("z", []ZSetMember{{Score: 3, Member: "c"}, {Score: 1, Member: "a"}, {Score: 2, Member: "b"}})

	all := s.ZGetAll("z")
	assert.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Member)
	assert.Equal(t, "b", all[1].Member)
	assert.Equal(t, "c", all[2].Member)
}
