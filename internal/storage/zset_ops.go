package storage

// ==================== SORTED SET OPERATIONS ====================

func (s *Store) getOrCreateZSetLocked(key string) (zset *ZSet, ok bool) {
	v, exists := s.getLocked(key)
	if !exists {
		return NewZSet(), true
	}
	if v.Type != TypeZSet {
		return nil, false
	}
	return v.ZSet, true
}

func (s *Store) getExistingZSetLocked(key string) (*ZSet, error) {
	v, exists := s.getLocked(key)
	if !exists {
		return nil, nil
	}
	if v.Type != TypeZSet {
		return nil, ErrWrongType
	}
	return v.ZSet, nil
}

func (s *Store) saveZSetLocked(key string, zset *ZSet) {
	if zset.Len() == 0 {
		s.deleteKeyLocked(key)
		return
	}
	s.data[key] = NewZSetValue(zset)
}

func clampRank(start, stop, length int) (int, int, bool) {
	if start < 0 {
		start = length + start
	}
	if stop < 0 {
		stop = length + stop
	}
	if start < 0 {
		start = 0
	}
	if stop >= length {
		stop = length - 1
	}
	if start > stop {
		return 0, 0, false
	}
	return start, stop, true
}

// ZAdd adds or updates members with scores, returning the count of newly
// added members, or -1 on a type mismatch.
func (s *Store) ZAdd(key string, members []ZSetMember) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, ok := s.getOrCreateZSetLocked(key)
	if !ok {
		return -1
	}
	added := 0
	for _, member := range members {
		if zset.Add(member.Member, member.Score) {
			added++
		}
	}
	s.saveZSetLocked(key, zset)
	return added
}

func (s *Store) ZRem(key string, members []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, err := s.getExistingZSetLocked(key)
	if err != nil || zset == nil {
		return 0
	}
	removed := 0
	for _, member := range members {
		if zset.Remove(member) {
			removed++
		}
	}
	s.saveZSetLocked(key, zset)
	return removed
}

func (s *Store) ZScore(key, member string) *float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, err := s.getExistingZSetLocked(key)
	if err != nil || zset == nil {
		return nil
	}
	return zset.Score(member)
}

func (s *Store) ZRank(key, member string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, err := s.getExistingZSetLocked(key)
	if err != nil || zset == nil {
		return -1
	}
	return zset.Rank(member)
}

func (s *Store) ZRevRank(key, member string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, err := s.getExistingZSetLocked(key)
	if err != nil || zset == nil {
		return -1
	}
	return zset.RevRank(member)
}

func (s *Store) ZCard(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, err := s.getExistingZSetLocked(key)
	if err != nil || zset == nil {
		return 0
	}
	return zset.Len()
}

func (s *Store) ZRange(key string, start, stop int) []ZSetMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, err := s.getExistingZSetLocked(key)
	if err != nil || zset == nil {
		return nil
	}
	start, stop, ok := clampRank(start, stop, zset.Len())
	if !ok {
		return nil
	}
	return zset.RangeByRank(start, stop)
}

func (s *Store) ZRevRange(key string, start, stop int) []ZSetMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, err := s.getExistingZSetLocked(key)
	if err != nil || zset == nil {
		return nil
	}
	start, stop, ok := clampRank(start, stop, zset.Len())
	if !ok {
		return nil
	}
	return zset.RevRangeByRank(start, stop)
}

func (s *Store) ZRangeByScore(key string, min, max float64, offset, count int) []ZSetMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, err := s.getExistingZSetLocked(key)
	if err != nil || zset == nil {
		return nil
	}
	return zset.Range(min, max, offset, count)
}

func (s *Store) ZRevRangeByScore(key string, min, max float64, offset, count int) []ZSetMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, err := s.getExistingZSetLocked(key)
	if err != nil || zset == nil {
		return nil
	}
	return zset.RevRange(min, max, offset, count)
}

func (s *Store) ZIncrBy(key string, delta float64, member string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, ok := s.getOrCreateZSetLocked(key)
	if !ok {
		return 0, ErrWrongType
	}
	next := zset.IncrBy(member, delta)
	s.saveZSetLocked(key, zset)
	return next, nil
}

func (s *Store) ZCount(key string, min, max float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, err := s.getExistingZSetLocked(key)
	if err != nil || zset == nil {
		return 0
	}
	return zset.Count(min, max)
}

func (s *Store) ZPopMin(key string) *ZSetMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, err := s.getExistingZSetLocked(key)
	if err != nil || zset == nil {
		return nil
	}
	member := zset.PopMin()
	s.saveZSetLocked(key, zset)
	return member
}

func (s *Store) ZPopMax(key string) *ZSetMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, err := s.getExistingZSetLocked(key)
	if err != nil || zset == nil {
		return nil
	}
	member := zset.PopMax()
	s.saveZSetLocked(key, zset)
	return member
}

func (s *Store) ZRemRangeByScore(key string, min, max float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, err := s.getExistingZSetLocked(key)
	if err != nil || zset == nil {
		return 0
	}
	removed := zset.RemoveRangeByScore(min, max)
	s.saveZSetLocked(key, zset)
	return removed
}

func (s *Store) ZRemRangeByRank(key string, start, stop int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, err := s.getExistingZSetLocked(key)
	if err != nil || zset == nil {
		return 0
	}
	start, stop, ok := clampRank(start, stop, zset.Len())
	if !ok {
		return 0
	}
	removed := zset.RemoveRangeByRank(start, stop)
	s.saveZSetLocked(key, zset)
	return removed
}

// ZGetAll returns every member with its score, ascending by rank — the
// candidate source GeoRadius filters by distance.
func (s *Store) ZGetAll(key string) []ZSetMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	zset, err := s.getExistingZSetLocked(key)
	if err != nil || zset == nil {
		return nil
	}
	return zset.GetAll()
}
