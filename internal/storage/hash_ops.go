package storage

import "strconv"

// ==================== HASH OPERATIONS ====================

func (s *Store) getOrCreateHashLocked(key string) (hash *Hash, ok bool) {
	v, exists := s.getLocked(key)
	if !exists {
		return NewHash(), true
	}
	if v.Type != TypeHash {
		return nil, false
	}
	return v.Hash, true
}

func (s *Store) getExistingHashLocked(key string) (*Hash, error) {
	v, exists := s.getLocked(key)
	if !exists {
		return nil, nil
	}
	if v.Type != TypeHash {
		return nil, ErrWrongType
	}
	return v.Hash, nil
}

func (s *Store) saveHashLocked(key string, hash *Hash) {
	if hash.Len() == 0 {
		s.deleteKeyLocked(key)
		return
	}
	s.data[key] = NewHashValue(hash)
}

// HSet sets field(s) in hash, returns number of new fields added.
func (s *Store) HSet(key string, fieldValues ...string) (int, error) {
	if len(fieldValues)%2 != 0 {
		return 0, ErrWrongNumArgs
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.getOrCreateHashLocked(key)
	if !ok {
		return 0, ErrWrongType
	}
	newFields := 0
	for i := 0; i < len(fieldValues); i += 2 {
		if hash.Set(fieldValues[i], fieldValues[i+1]) {
			newFields++
		}
	}
	s.saveHashLocked(key, hash)
	return newFields, nil
}

func (s *Store) HGet(key, field string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, err := s.getExistingHashLocked(key)
	if err != nil {
		return "", false, err
	}
	if hash == nil {
		return "", false, nil
	}
	val, exists := hash.Get(field)
	return val, exists, nil
}

func (s *Store) HMGet(key string, fields ...string) ([]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, err := s.getExistingHashLocked(key)
	if err != nil {
		return nil, err
	}
	result := make([]interface{}, len(fields))
	for i, field := range fields {
		if hash != nil {
			if val, exists := hash.Get(field); exists {
				result[i] = val
				continue
			}
		}
		result[i] = nil
	}
	return result, nil
}

func (s *Store) HDel(key string, fields ...string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, err := s.getExistingHashLocked(key)
	if err != nil {
		return 0, err
	}
	if hash == nil {
		return 0, nil
	}
	deleted := 0
	for _, field := range fields {
		if hash.Delete(field) {
			deleted++
		}
	}
	s.saveHashLocked(key, hash)
	return deleted, nil
}

func (s *Store) HExists(key, field string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, err := s.getExistingHashLocked(key)
	if err != nil {
		return false, err
	}
	if hash == nil {
		return false, nil
	}
	return hash.Exists(field), nil
}

func (s *Store) HLen(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, err := s.getExistingHashLocked(key)
	if err != nil {
		return 0, err
	}
	if hash == nil {
		return 0, nil
	}
	return hash.Len(), nil
}

func (s *Store) HKeys(key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, err := s.getExistingHashLocked(key)
	if err != nil {
		return nil, err
	}
	if hash == nil {
		return []string{}, nil
	}
	return hash.Keys(), nil
}

func (s *Store) HVals(key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, err := s.getExistingHashLocked(key)
	if err != nil {
		return nil, err
	}
	if hash == nil {
		return []string{}, nil
	}
	return hash.Values(), nil
}

func (s *Store) HGetAll(key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, err := s.getExistingHashLocked(key)
	if err != nil {
		return nil, err
	}
	if hash == nil {
		return []string{}, nil
	}
	return hash.GetAll(), nil
}

func (s *Store) HSetNX(key, field, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.getOrCreateHashLocked(key)
	if !ok {
		return false, ErrWrongType
	}
	if !hash.SetNX(field, value) {
		return false, nil
	}
	s.saveHashLocked(key, hash)
	return true, nil
}

func (s *Store) HIncrBy(key, field string, increment int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.getOrCreateHashLocked(key)
	if !ok {
		return 0, ErrWrongType
	}
	var current int64
	if val, exists := hash.Get(field); exists {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0, ErrHashValueNotInteger
		}
		current = parsed
	}
	next := current + increment
	hash.Set(field, strconv.FormatInt(next, 10))
	s.saveHashLocked(key, hash)
	return next, nil
}

func (s *Store) HIncrByFloat(key, field string, increment float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.getOrCreateHashLocked(key)
	if !ok {
		return 0, ErrWrongType
	}
	var current float64
	if val, exists := hash.Get(field); exists {
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, ErrHashValueNotFloat
		}
		current = parsed
	}
	next := current + increment
	hash.Set(field, strconv.FormatFloat(next, 'f', -1, 64))
	s.saveHashLocked(key, hash)
	return next, nil
}
