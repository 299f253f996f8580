package peer

import (
	"errors"
	"testing"

	"github.com/opd-ai/espnow/limits"
)

func TestParseAddr(t *testing.T) {
	raw := []byte{0x24, 0x0a, 0xc4, 0x01, 0x02, 0x03}
	a, err := ParseAddr(raw)
	if err != nil {
		t.Fatalf("ParseAddr returned error: %v", err)
	}
	if a.String() != "24:0a:c4:01:02:03" {
		t.Errorf("Addr.String() = %q", a.String())
	}

	if _, err := ParseAddr(raw[:5]); !errors.Is(err, limits.ErrBadAddressLength) {
		t.Errorf("Expected ErrBadAddressLength, got %v", err)
	}
	if _, err := ParseAddr(append(raw, 0x04)); !errors.Is(err, limits.ErrBadAddressLength) {
		t.Errorf("Expected ErrBadAddressLength, got %v", err)
	}
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey(make([]byte, limits.KeyLen))
	if err != nil {
		t.Fatalf("ParseKey returned error: %v", err)
	}
	if k != (Key{}) {
		t.Errorf("Expected zero key, got %v", k)
	}

	if _, err := ParseKey(make([]byte, limits.KeyLen+1)); !errors.Is(err, limits.ErrBadKeyLength) {
		t.Errorf("Expected ErrBadKeyLength, got %v", err)
	}
}

func TestIsBroadcast(t *testing.T) {
	if !Broadcast.IsBroadcast() {
		t.Error("Broadcast.IsBroadcast() = false")
	}
	a, _ := ParseAddr([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xfe})
	if a.IsBroadcast() {
		t.Errorf("%s reported as broadcast", a)
	}
}
