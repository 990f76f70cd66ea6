// Package protocol implements the RESP wire format: byte-accurate request
// parsing and reply encoding for simple strings, errors, integers, bulk
// strings, arrays, and the raw length-prefixed blob used for snapshot
// handoff between master and replica.
package protocol

import (
	"bytes"
	"fmt"
	"strconv"
)

// ParseRequest attempts to parse a single RESP array request from buf.
// It returns the parsed arguments, the exact number of bytes consumed, and
// ok=true on success. On an incomplete frame it returns ok=false and
// consumed=0 without otherwise interpreting buf — callers must not advance
// their read offset in that case.
func ParseRequest(buf []byte) (args []string, consumed int, ok bool) {
	if len(buf) == 0 || buf[0] != '*' {
		return nil, 0, false
	}

	line, lineLen, ok := readLine(buf)
	if !ok {
		return nil, 0, false
	}
	count, err := strconv.Atoi(string(line[1:]))
	if err != nil || count < 0 {
		return nil, 0, false
	}

	pos := lineLen
	out := make([]string, 0, count)

	for i := 0; i < count; i++ {
		if pos >= len(buf) || buf[pos] != '$' {
			return nil, 0, false
		}
		hdr, hdrLen, ok := readLine(buf[pos:])
		if !ok {
			return nil, 0, false
		}
		length, err := strconv.Atoi(string(hdr[1:]))
		if err != nil || length < 0 {
			return nil, 0, false
		}
		pos += hdrLen

		if pos+length+2 > len(buf) {
			return nil, 0, false
		}
		if buf[pos+length] != '\r' || buf[pos+length+1] != '\n' {
			return nil, 0, false
		}
		out = append(out, string(buf[pos:pos+length]))
		pos += length + 2
	}

	return out, pos, true
}

// readLine reads one CRLF-terminated line starting at buf[0], returning the
// line content (without CRLF), its length including the CRLF, and ok.
func readLine(buf []byte) (line []byte, lineLen int, ok bool) {
	idx := bytes.Index(buf, []byte("\r\n"))
	if idx < 0 {
		return nil, 0, false
	}
	return buf[:idx], idx + 2, true
}

func EncodeSimpleString(s string) []byte {
	return []byte("+" + s + "\r\n")
}

func EncodeError(s string) []byte {
	return []byte("-" + s + "\r\n")
}

func EncodeInteger(n int64) []byte {
	return []byte(fmt.Sprintf(":%d\r\n", n))
}

func EncodeBulkString(s string) []byte {
	return []byte(fmt.Sprintf("$%d\r\n%s\r\n", len(s), s))
}

func EncodeNullBulk() []byte {
	return []byte("$-1\r\n")
}

func EncodeNullArray() []byte {
	return []byte("*-1\r\n")
}

// EncodeArray encodes an array of nullable bulk strings; a nil entry in
// items encodes as a null bulk.
func EncodeArray(items []*string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "*%d\r\n", len(items))
	for _, item := range items {
		if item == nil {
			buf.WriteString("$-1\r\n")
			continue
		}
		buf.Write(EncodeBulkString(*item))
	}
	return buf.Bytes()
}

// EncodeStringArray is a convenience wrapper over EncodeArray for the
// common case of an array with no null entries.
func EncodeStringArray(items []string) []byte {
	ptrs := make([]*string, len(items))
	for i := range items {
		ptrs[i] = &items[i]
	}
	return EncodeArray(ptrs)
}

// EncodeRawArray concatenates already-encoded RESP frames under a single
// array header; used by EXEC to fold N queued results into one reply.
func EncodeRawArray(frames [][]byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "*%d\r\n", len(frames))
	for _, f := range frames {
		buf.Write(f)
	}
	return buf.Bytes()
}

// EncodeRawBlob writes a bulk-string header followed by raw bytes with NO
// trailing CRLF. This is intentional: it is the snapshot handoff framing
// replicas must tolerate.
func EncodeRawBlob(data []byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "$%d\r\n", len(data))
	buf.Write(data)
	return buf.Bytes()
}

// EncodeCommand encodes args as a RESP array of bulk strings — the wire
// shape used for command propagation to replicas.
func EncodeCommand(args []string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "*%d\r\n", len(args))
	for _, a := range args {
		buf.Write(EncodeBulkString(a))
	}
	return buf.Bytes()
}
