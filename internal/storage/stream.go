package storage

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// StreamID is the two-part (milliseconds, sequence) identifier assigned
// to every stream entry. IDs are strictly monotonically increasing
// within a stream.
type StreamID struct {
	Ms  int64
	Seq int64
}

func (id StreamID) String() string {
	return fmt.Sprintf("%d-%d", id.Ms, id.Seq)
}

func (id StreamID) compare(other StreamID) int {
	switch {
	case id.Ms != other.Ms:
		if id.Ms < other.Ms {
			return -1
		}
		return 1
	case id.Seq != other.Seq:
		if id.Seq < other.Seq {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// ParseStreamID parses a complete "<ms>-<seq>" or bare "<ms>" identifier,
// used by XRANGE/XREAD to build range boundaries (never by XADD, which
// has its own partial-ID auto-completion rules).
func ParseStreamID(s string) (StreamID, error) {
	if s == "-" {
		return StreamID{Ms: 0, Seq: 0}, nil
	}
	if s == "+" {
		return StreamID{Ms: 1<<63 - 1, Seq: 1<<63 - 1}, nil
	}
	parts := strings.SplitN(s, "-", 2)
	ms, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return StreamID{}, ErrStreamIDInvalid
	}
	if len(parts) == 1 {
		return StreamID{Ms: ms, Seq: 0}, nil
	}
	seq, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return StreamID{}, ErrStreamIDInvalid
	}
	return StreamID{Ms: ms, Seq: seq}, nil
}

// StreamEntry is one appended record: an ID plus the field-value pairs
// given to XADD, stored flattened as [field1, val1, field2, val2, ...].
type StreamEntry struct {
	ID     StreamID
	Fields []string
}

// Stream is an append-only log of entries ordered by strictly increasing
// ID. Entries are never removed except by XTRIM/XDEL (not modeled here
// beyond what the command layer needs), so Range can binary-search.
type Stream struct {
	Entries []StreamEntry
}

func NewStream() *Stream {
	return &Stream{}
}

func (st *Stream) LastID() StreamID {
	if len(st.Entries) == 0 {
		return StreamID{}
	}
	return st.Entries[len(st.Entries)-1].ID
}

func (st *Stream) Len() int { return len(st.Entries) }

// resolveID turns rawID (one of "*", "<ms>-*", or "<ms>-<seq>") into a
// concrete StreamID, applying the same auto-sequence rules as the
// original Redis server: a fresh stream seeded with explicit ms=0 skips
// straight to seq=1 (0-0 is reserved and rejected), every other
// auto-sequence case continues from the last entry's sequence when the
// milliseconds match and resets to 0 otherwise.
func (st *Stream) resolveID(rawID string) (StreamID, error) {
	last := st.LastID()
	fresh := len(st.Entries) == 0

	if rawID == "*" {
		ms := time.Now().UnixMilli()
		switch {
		case !fresh && ms == last.Ms:
			return StreamID{Ms: ms, Seq: last.Seq + 1}, nil
		case !fresh && ms < last.Ms:
			return StreamID{Ms: last.Ms, Seq: last.Seq + 1}, nil
		case fresh && ms == 0:
			return StreamID{Ms: 0, Seq: 1}, nil
		default:
			return StreamID{Ms: ms, Seq: 0}, nil
		}
	}

	if strings.HasSuffix(rawID, "-*") {
		msPart := strings.TrimSuffix(rawID, "-*")
		ms, err := strconv.ParseInt(msPart, 10, 64)
		if err != nil {
			return StreamID{}, ErrStreamIDInvalid
		}
		switch {
		case fresh:
			if ms == 0 {
				return StreamID{Ms: 0, Seq: 1}, nil
			}
			return StreamID{Ms: ms, Seq: 0}, nil
		case ms == last.Ms:
			return StreamID{Ms: ms, Seq: last.Seq + 1}, nil
		case ms > last.Ms:
			return StreamID{Ms: ms, Seq: 0}, nil
		default:
			return StreamID{}, ErrStreamIDTooSmall
		}
	}

	return ParseStreamID(rawID)
}

// Add resolves rawID against the stream's current tail, validates strict
// monotonicity, appends the entry, and returns the ID actually assigned.
func (st *Stream) Add(rawID string, fields []string) (StreamID, error) {
	id, err := st.resolveID(rawID)
	if err != nil {
		return StreamID{}, err
	}
	if id.Ms == 0 && id.Seq == 0 {
		return StreamID{}, ErrStreamIDZero
	}
	if len(st.Entries) > 0 && id.compare(st.LastID()) <= 0 {
		return StreamID{}, ErrStreamIDTooSmall
	}

	stored := append([]string(nil), fields...)
	st.Entries = append(st.Entries, StreamEntry{ID: id, Fields: stored})
	return id, nil
}

// Range returns entries with start <= ID <= end, ascending, capped at
// count entries (count <= 0 means unbounded).
func (st *Stream) Range(start, end StreamID, count int) []StreamEntry {
	lo := sort.Search(len(st.Entries), func(i int) bool {
		return st.Entries[i].ID.compare(start) >= 0
	})
	result := make([]StreamEntry, 0)
	for i := lo; i < len(st.Entries); i++ {
		if st.Entries[i].ID.compare(end) > 0 {
			break
		}
		result = append(result, st.Entries[i])
		if count > 0 && len(result) >= count {
			break
		}
	}
	return result
}

// RevRange returns entries with start <= ID <= end, descending, capped
// at count entries.
func (st *Stream) RevRange(start, end StreamID, count int) []StreamEntry {
	forward := st.Range(start, end, 0)
	result := make([]StreamEntry, 0, len(forward))
	for i := len(forward) - 1; i >= 0; i-- {
		result = append(result, forward[i])
		if count > 0 && len(result) >= count {
			break
		}
	}
	return result
}

// After returns entries with ID strictly greater than after, in
// ascending order — the primitive XREAD builds its "new since last ID"
// semantics on.
func (st *Stream) After(after StreamID, count int) []StreamEntry {
	hi := sort.Search(len(st.Entries), func(i int) bool {
		return st.Entries[i].ID.compare(after) > 0
	})
	result := make([]StreamEntry, 0)
	for i := hi; i < len(st.Entries); i++ {
		result = append(result, st.Entries[i])
		if count > 0 && len(result) >= count {
			break
		}
	}
	return result
}
