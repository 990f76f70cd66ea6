package storage

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSAddAndSIsMember(t *testing.T) {
	s := NewStore()
	n := s.SAdd("s", "a", "b", "a")
	assert.Equal(t, 2, n)
	assert.True(t, s.SIsMember("s", "a"))
	assert.False(t, s.SIsMember("s", "z"))
}

func TestSRemRemovesEmptySetKey(t *testing.T) {
	s := NewStore()
	s.SAdd("s", "a")
	n := s.SRem("s", "a")
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, s.SCard("s"))
}

func TestSUnionInterDiff(t *testing.T) {
	s := NewStore()
	s.SAdd("a", "1", "2", "3")
	s.SAdd("b", "2", "3", "4")

	union := s.SUnion("a", "b")
	sort.Strings(union)
	assert.Equal(t, []string{"1", "2", "3", "4"}, union)

	inter := s.SInter("a", "b")
	sort.Strings(inter)
	assert.Equal(t, []string{"2", "3"}, inter)

	diff := s.SDiff("a", "b")
	assert.Equal(t, []string{"1"}, diff)
}

func TestSMove(t *testing.T) {
	s := NewStore()
	s.SAdd("src", "a", "b")
	s.SAdd("dst", "c")

	ok := s.SMove("src", "dst", "a")
	assert.True(t, ok)
	assert.False(t, s.SIsMember("src", "a"))
	assert.True(t, s.SIsMember("dst", "a"))

	ok = s.SMove("src", "dst", "missing")
	assert.False(t, ok)
}

func TestSUnionStoreInterStoreDiffStore(t *testing.T) {
	s := NewStore()
	s.SAdd("a", "1", "2")
	s.SAdd("b", "2", "3")

	n := s.SUnionStore("dest", "a", "b")
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, s.SCard("dest"))

	n = s.SInterStore("dest2", "a", "b")
	assert.Equal(t, 1, n)

	n = s.SDiffStore("dest3", "a", "b")
	assert.Equal(t, 1, n)
}

func TestSPopRemovesMembers(t *testing.T) {
	s := NewStore()
	s.SAdd("s", "a", "b", "c")
	popped := s.SPop("s", 2)
	assert.Len(t, popped, 2)
	assert.Equal(t, 1, s.SCard("s"))
}

func TestSetRandomMembersWithoutDuplicatesNeverRepeats(t *testing.T) {
	s := NewSet()
	for _, m := range []string{"a", "b", "c", "d", "e"} {
		s.Add(m)
	}

	result := s.RandomMembers(3)
	assert.Len(t, result, 3)

	seen := make(map[string]bool)
	for _, m := range result {
		assert.False(t, seen[m], "member %q returned twice", m)
		seen[m] = true
		assert.True(t, s.IsMember(m))
	}
}

func TestSetRandomMembersWithoutDuplicatesCapsAtSetSize(t *testing.T) {
	s := NewSet()
	s.Add("a")
	s.Add("b")

	result := s.RandomMembers(10)
	assert.Len(t, result, 2)
}

func TestSetRandomMembersWithDuplicatesAllowsRepeats(t *testing.T) {
	s := NewSet()
	s.Add("only")

	result := s.RandomMembers(-5)
	assert.Len(t, result, 5)
	for _, m := range result {
		assert.Equal(t, "only", m)
	}
}

func TestSetRandomMembersEmptySet(t *testing.T) {
	s := NewSet()
	assert.Equal(t, []string{}, s.RandomMembers(3))
	assert.Equal(t, []string{}, s.RandomMembers(-3))
}
