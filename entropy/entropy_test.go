package entropy

import (
	"bytes"
	"strings"
	"testing"
)

func TestBeginEndWithoutHanging(t *testing.T) {
	var buf bytes.Buffer
	o := &Orchestrator{Out: &buf}
	o.Begin("working")
	o.End()
	if !strings.Contains(buf.String(), "working") {
		t.Fatalf("output %q does not contain the begin message", buf.String())
	}
}

func TestBeginEndSilentWithoutWriter(t *testing.T) {
	o := &Orchestrator{}
	o.Begin("quiet")
	o.End()
}

func TestStrongRandomBitLength(t *testing.T) {
	n, err := StrongRandom(128)
	if err != nil {
		t.Fatalf("StrongRandom: %v", err)
	}
	if n.BitLen() > 128 {
		t.Fatalf("got %d bits, want <= 128", n.BitLen())
	}
}

func TestVeryStrongRandomBitLength(t *testing.T) {
	n, err := VeryStrongRandom(256)
	if err != nil {
		t.Fatalf("VeryStrongRandom: %v", err)
	}
	if n.BitLen() > 256 {
		t.Fatalf("got %d bits, want <= 256", n.BitLen())
	}
}

func TestRandomDrawsDiffer(t *testing.T) {
	a, err := VeryStrongRandom(256)
	if err != nil {
		t.Fatalf("VeryStrongRandom: %v", err)
	}
	b, err := VeryStrongRandom(256)
	if err != nil {
		t.Fatalf("VeryStrongRandom: %v", err)
	}
	if a.Cmp(b) == 0 {
		t.Fatal("two independent draws produced the same value")
	}
}
