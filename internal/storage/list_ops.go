package storage

// ==================== LIST OPERATIONS ====================

// getOrCreateListLocked returns the existing list at key, or a fresh one
// if key is absent/expired. ok is false on a type mismatch.
func (s *Store) getOrCreateListLocked(key string) (list *List, ok bool) {
	v, exists := s.getLocked(key)
	if !exists {
		return NewList(), true
	}
	if v.Type != TypeList {
		return nil, false
	}
	return v.List, true
}

func (s *Store) getExistingListLocked(key string) (*List, error) {
	v, exists := s.getLocked(key)
	if !exists {
		return nil, nil
	}
	if v.Type != TypeList {
		return nil, ErrWrongType
	}
	return v.List, nil
}

func (s *Store) saveListLocked(key string, list *List) {
	if list.Length == 0 {
		s.deleteKeyLocked(key)
		return
	}
	s.data[key] = NewListValue(list)
}

// LPush adds elements to the head of the list - O(1) per element
func (s *Store) LPush(key string, values ...string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.getOrCreateListLocked(key)
	if !ok {
		return 0, ErrWrongType
	}
	for _, v := range values {
		list.PushFront(v)
	}
	s.saveListLocked(key, list)
	return list.Length, nil
}

// RPush adds elements to the tail of the list - O(1) per element
func (s *Store) RPush(key string, values ...string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.getOrCreateListLocked(key)
	if !ok {
		return 0, ErrWrongType
	}
	for _, v := range values {
		list.PushBack(v)
	}
	s.saveListLocked(key, list)
	return list.Length, nil
}

// LPop removes and returns the first count element(s).
func (s *Store) LPop(key string, count int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.getExistingListLocked(key)
	if err != nil {
		return nil, err
	}
	if list == nil || list.Length == 0 {
		return nil, nil
	}
	if count <= 0 {
		count = 1
	}
	if count > list.Length {
		count = list.Length
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if val, ok := list.PopFront(); ok {
			result = append(result, val)
		}
	}
	s.saveListLocked(key, list)
	return result, nil
}

// RPop removes and returns the last count element(s).
func (s *Store) RPop(key string, count int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.getExistingListLocked(key)
	if err != nil {
		return nil, err
	}
	if list == nil || list.Length == 0 {
		return nil, nil
	}
	if count <= 0 {
		count = 1
	}
	if count > list.Length {
		count = list.Length
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if val, ok := list.PopBack(); ok {
			result = append(result, val)
		}
	}
	s.saveListLocked(key, list)
	return result, nil
}

func (s *Store) LLen(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.getExistingListLocked(key)
	if err != nil {
		return 0, err
	}
	if list == nil {
		return 0, nil
	}
	return list.Length, nil
}

func (s *Store) LRange(key string, start, stop int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.getExistingListLocked(key)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return []string{}, nil
	}
	return list.Range(start, stop), nil
}

func (s *Store) LIndex(key string, index int) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.getExistingListLocked(key)
	if err != nil {
		return "", false, err
	}
	if list == nil {
		return "", false, nil
	}
	val, exists := list.GetAt(index)
	return val, exists, nil
}

func (s *Store) LSet(key string, index int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.getExistingListLocked(key)
	if err != nil {
		return err
	}
	if list == nil {
		return ErrNoSuchKey
	}
	if !list.SetAt(index, value) {
		return ErrIndexOutOfRange
	}
	s.saveListLocked(key, list)
	return nil
}

// LRem removes count occurrences of value.
// count > 0: remove from head to tail. count < 0: tail to head. count == 0: all.
func (s *Store) LRem(key string, count int, value string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.getExistingListLocked(key)
	if err != nil {
		return 0, err
	}
	if list == nil || list.Length == 0 {
		return 0, nil
	}

	removed := 0
	toRemove := count
	if count == 0 {
		toRemove = list.Length
	} else if count < 0 {
		toRemove = -count
	}

	if count >= 0 {
		node := list.Head
		for node != nil && removed < toRemove {
			next := node.Next
			if node.Value == value {
				list.RemoveNode(node)
				removed++
			}
			node = next
		}
	} else {
		node := list.Tail
		for node != nil && removed < toRemove {
			prev := node.Prev
			if node.Value == value {
				list.RemoveNode(node)
				removed++
			}
			node = prev
		}
	}

	s.saveListLocked(key, list)
	return removed, nil
}

func (s *Store) LTrim(key string, start, stop int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.getExistingListLocked(key)
	if err != nil {
		return err
	}
	if list == nil {
		return nil
	}
	list.Trim(start, stop)
	s.saveListLocked(key, list)
	return nil
}

// LInsert inserts value before or after the first occurrence of pivot.
// Returns -1 if pivot is not found, the new length otherwise.
func (s *Store) LInsert(key string, before bool, pivot, value string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.getExistingListLocked(key)
	if err != nil {
		return 0, err
	}
	if list == nil || list.Length == 0 {
		return 0, nil
	}

	node := list.FindNode(pivot, true)
	if node == nil {
		return -1, nil
	}

	if before {
		list.InsertBefore(node, value)
	} else {
		list.InsertAfter(node, value)
	}

	s.saveListLocked(key, list)
	return list.Length, nil
}
