package storage

// ValueType tags the kind of value stored under a key.
type ValueType int

const (
	TypeString ValueType = iota
	TypeList
	TypeSet
	TypeHash
	TypeZSet
	TypeStream
	TypeVectorSet
)

func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeSet:
		return "set"
	case TypeHash:
		return "hash"
	case TypeZSet:
		return "zset"
	case TypeStream:
		return "stream"
	case TypeVectorSet:
		return "vectorset"
	default:
		return "none"
	}
}

// Value is the tagged union stored per key: exactly one of the typed
// fields below is populated, selected by Type.
type Value struct {
	Type   ValueType
	Str    string
	List   *List
	Set    *Set
	Hash   *Hash
	ZSet   *ZSet
	Stream *Stream
}

func NewStringValue(s string) *Value { return &Value{Type: TypeString, Str: s} }
func NewListValue(l *List) *Value    { return &Value{Type: TypeList, List: l} }
func NewSetValue(s *Set) *Value      { return &Value{Type: TypeSet, Set: s} }
func NewHashValue(h *Hash) *Value    { return &Value{Type: TypeHash, Hash: h} }
func NewZSetValue(z *ZSet) *Value    { return &Value{Type: TypeZSet, ZSet: z} }
func NewStreamValue(s *Stream) *Value {
	return &Value{Type: TypeStream, Stream: s}
}
