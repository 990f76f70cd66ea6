package protocol

import "testing"

func TestParseRequestComplete(t *testing.T) {
	raw := []byte("*2\r\n$4\r\nPING\r\n$2\r\nhi\r\n")
	args, consumed, ok := ParseRequest(raw)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if consumed != len(raw) {
		t.Fatalf("expected consumed=%d, got %d", len(raw), consumed)
	}
	if len(args) != 2 || args[0] != "PING" || args[1] != "hi" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestParseRequestConsumedMatchesFrameWithTrailingSuffix(t *testing.T) {
	frame := []byte("*1\r\n$4\r\nPING\r\n")
	suffix := []byte("*1\r\n$4\r\nPONG\r\n")
	args, consumed, ok := ParseRequest(append(append([]byte{}, frame...), suffix...))
	if !ok || consumed != len(frame) || args[0] != "PING" {
		t.Fatalf("expected frame-accurate parse, got consumed=%d ok=%v args=%v", consumed, ok, args)
	}
}

func TestParseRequestIncomplete(t *testing.T) {
	cases := [][]byte{
		[]byte("*2\r\n$4\r\nPING\r\n"),
		[]byte("*1\r\n$4\r\nPIN"),
		[]byte("*1\r\n"),
		[]byte("*1"),
		nil,
	}
	for _, c := range cases {
		if _, _, ok := ParseRequest(c); ok {
			t.Fatalf("expected incomplete for %q", c)
		}
	}
}

func TestEncoders(t *testing.T) {
	if string(EncodeSimpleString("OK")) != "+OK\r\n" {
		t.Fatal("simple string mismatch")
	}
	if string(EncodeError("ERR bad")) != "-ERR bad\r\n" {
		t.Fatal("error mismatch")
	}
	if string(EncodeInteger(42)) != ":42\r\n" {
		t.Fatal("integer mismatch")
	}
	if string(EncodeBulkString("bar")) != "$3\r\nbar\r\n" {
		t.Fatal("bulk string mismatch")
	}
	if string(EncodeNullBulk()) != "$-1\r\n" {
		t.Fatal("null bulk mismatch")
	}
	if string(EncodeNullArray()) != "*-1\r\n" {
		t.Fatal("null array mismatch")
	}
}

func TestEncodeRawBlobHasNoTrailingCRLF(t *testing.T) {
	blob := EncodeRawBlob([]byte("REDIS0011"))
	want := "$9\r\nREDIS0011"
	if string(blob) != want {
		t.Fatalf("expected %q, got %q", want, blob)
	}
}
