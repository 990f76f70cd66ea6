package storage

import (
	"fmt"
	"strconv"
	"time"
)

// Set stores a string value, clearing any prior expiry.
func (s *Store) Set(key, value string) {
	s.SetValue(key, NewStringValue(value))
}

// SetWithExpiry stores a string value and an absolute expiry deadline in
// one step, as SET ... EX/PX requires.
func (s *Store) SetWithExpiry(key, value string, deadline *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = NewStringValue(value)
	if deadline != nil {
		s.config[key] = &Config{ExpireAt: deadline}
	} else {
		delete(s.config, key)
	}
}

// GetString returns the string at key. ok is false if the key is absent,
// expired, or holds a non-string value (err distinguishes the latter).
func (s *Store) GetString(key string) (val string, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, exists := s.getLocked(key)
	if !exists {
		return "", false, nil
	}
	if v.Type != TypeString {
		return "", false, ErrWrongType
	}
	return v.Str, true, nil
}

// GetSet atomically sets key to value and returns the previous value.
func (s *Store) GetSet(key, value string) (old string, had bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, exists := s.getLocked(key)
	if exists {
		if v.Type != TypeString {
			return "", false, ErrWrongType
		}
		old, had = v.Str, true
	}
	s.data[key] = NewStringValue(value)
	delete(s.config, key)
	return old, had, nil
}

func (s *Store) Append(key, value string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, exists := s.getLocked(key)
	if !exists {
		s.data[key] = NewStringValue(value)
		return len(value), nil
	}
	if v.Type != TypeString {
		return 0, ErrWrongType
	}
	next := NewStringValue(v.Str + value)
	s.data[key] = next
	return len(next.Str), nil
}

func (s *Store) StrLen(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, exists := s.getLocked(key)
	if !exists {
		return 0, nil
	}
	if v.Type != TypeString {
		return 0, ErrWrongType
	}
	return len(v.Str), nil
}

func (s *Store) Incr(key string) (int64, error) {
	return s.IncrBy(key, 1)
}

func (s *Store) Decr(key string) (int64, error) {
	return s.IncrBy(key, -1)
}

func (s *Store) DecrBy(key string, decrement int64) (int64, error) {
	return s.IncrBy(key, -decrement)
}

func (s *Store) IncrBy(key string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, exists := s.getLocked(key)

	var current int64
	if exists {
		if v.Type != TypeString {
			return 0, ErrWrongType
		}
		parsed, err := strconv.ParseInt(v.Str, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("ERR value is not an integer or out of range")
		}
		current = parsed
	}

	next := current + delta
	s.data[key] = NewStringValue(strconv.FormatInt(next, 10))
	return next, nil
}

func (s *Store) IncrByFloat(key string, delta float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, exists := s.getLocked(key)

	var current float64
	if exists {
		if v.Type != TypeString {
			return 0, ErrWrongType
		}
		parsed, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return 0, fmt.Errorf("ERR value is not a valid float")
		}
		current = parsed
	}

	next := current + delta
	s.data[key] = NewStringValue(strconv.FormatFloat(next, 'f', -1, 64))
	return next, nil
}

// SetNX sets key only if it does not already exist.
func (s *Store) SetNX(key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.getLocked(key); exists {
		return false
	}
	s.data[key] = NewStringValue(value)
	delete(s.config, key)
	return true
}
