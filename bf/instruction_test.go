package bf

import "testing"

func TestDecodeRoundTripsSymbols(t *testing.T) {
	for _, c := range []byte("><+-.,[]") {
		op := Decode(c)
		if op == OpNone {
			t.Fatalf("%q decoded to none", c)
		}
		if op.Symbol() != c {
			t.Fatalf("%q decoded to %s with symbol %q", c, op, op.Symbol())
		}
	}
}

func TestDecodeIgnoresOtherBytes(t *testing.T) {
	for c := 0; c < 256; c++ {
		switch byte(c) {
		case '>', '<', '+', '-', '.', ',', '[', ']':
			continue
		}
		if op := Decode(byte(c)); op != OpNone {
			t.Fatalf("byte %d decoded to %s", c, op)
		}
	}
	if OpNone.Symbol() != 0 || OpNone.String() != "none" {
		t.Fatalf("unexpected OpNone rendering")
	}
}
