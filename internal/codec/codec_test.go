package codec

import (
	"errors"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	keys := []string{"k", "rewear-admin-obfuscation", "열쇠"}

	inputs := []string{
		"",
		"a",
		"eyJhbGciOiJIUzI1NiJ9.payload.signature",
		"token-with-unicode-다시입다",
		"  leading and trailing  ",
		strings.Repeat("x", 4096),
	}

	for _, key := range keys {
		c, err := New(key)
		if err != nil {
			t.Fatalf("New(%q) error = %v", key, err)
		}
		for _, in := range inputs {
			got, err := c.Decode(c.Encode(in))
			if err != nil {
				t.Errorf("Decode(Encode(%q)) error = %v", in, err)
				continue
			}
			if got != in {
				t.Errorf("round trip = %q, want %q (key %q)", got, in, key)
			}
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	c, _ := New("stable-key")
	in := "some.access.token"
	first := c.Encode(in)
	for i := 0; i < 10; i++ {
		if got := c.Encode(in); got != first {
			t.Fatalf("Encode not deterministic: %q vs %q", got, first)
		}
	}
}

func TestEncodeDistinctInputs(t *testing.T) {
	c, _ := New("key")
	seen := map[string]string{}
	for _, in := range []string{"a", "b", "ab", "ba", "", "aa"} {
		enc := c.Encode(in)
		if prev, dup := seen[enc]; dup {
			t.Fatalf("Encode collision: %q and %q both -> %q", prev, in, enc)
		}
		seen[enc] = in
	}
}

func TestDecodeMalformed(t *testing.T) {
	c, _ := New("key")
	for _, in := range []string{"!!!", "not base64", "a=b=c", "%%%%"} {
		if _, err := c.Decode(in); !errors.Is(err, ErrMalformed) {
			t.Errorf("Decode(%q) error = %v, want ErrMalformed", in, err)
		}
	}
}

func TestNewEmptyKey(t *testing.T) {
	if _, err := New(""); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("New(\"\") error = %v, want ErrEmptyKey", err)
	}
}
