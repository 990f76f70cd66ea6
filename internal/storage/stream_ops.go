package storage

// ==================== STREAM OPERATIONS ====================

func (s *Store) getOrCreateStreamLocked(key string) (stream *Stream, ok bool) {
	v, exists := s.getLocked(key)
	if !exists {
		return NewStream(), true
	}
	if v.Type != TypeStream {
		return nil, false
	}
	return v.Stream, true
}

func (s *Store) getExistingStreamLocked(key string) (*Stream, error) {
	v, exists := s.getLocked(key)
	if !exists {
		return nil, nil
	}
	if v.Type != TypeStream {
		return nil, ErrWrongType
	}
	return v.Stream, nil
}

// XAdd appends an entry to the stream at key, creating the stream if
// absent, and returns the ID assigned.
func (s *Store) XAdd(key, rawID string, fields []string) (StreamID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stream, ok := s.getOrCreateStreamLocked(key)
	if !ok {
		return StreamID{}, ErrWrongType
	}
	id, err := stream.Add(rawID, fields)
	if err != nil {
		return StreamID{}, err
	}
	s.data[key] = NewStreamValue(stream)
	return id, nil
}

func (s *Store) XLen(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stream, err := s.getExistingStreamLocked(key)
	if err != nil {
		return 0, err
	}
	if stream == nil {
		return 0, nil
	}
	return stream.Len(), nil
}

func (s *Store) XRange(key string, start, end StreamID, count int) ([]StreamEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stream, err := s.getExistingStreamLocked(key)
	if err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, nil
	}
	return stream.Range(start, end, count), nil
}

func (s *Store) XRevRange(key string, start, end StreamID, count int) ([]StreamEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stream, err := s.getExistingStreamLocked(key)
	if err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, nil
	}
	return stream.RevRange(start, end, count), nil
}

// XReadAfter returns entries newer than after for use by XREAD, both in
// its immediate and blocking-poll forms.
func (s *Store) XReadAfter(key string, after StreamID, count int) ([]StreamEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stream, err := s.getExistingStreamLocked(key)
	if err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, nil
	}
	return stream.After(after, count), nil
}

// XLastID returns the last assigned ID for key, used to resolve XREAD's
// "$" (only-new) starting point.
func (s *Store) XLastID(key string) (StreamID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stream, err := s.getExistingStreamLocked(key)
	if err != nil {
		return StreamID{}, err
	}
	if stream == nil {
		return StreamID{}, nil
	}
	return stream.LastID(), nil
}
