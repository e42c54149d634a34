package curve

import "testing"

func TestLookupKnownCurve(t *testing.T) {
	c, err := Lookup("secp256r1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if c.Name != "secp256r1" {
		t.Fatalf("got curve %q", c.Name)
	}
	if !c.OnCurve(c.Generator()) {
		t.Fatal("generator is not reported on curve")
	}
}

func TestLookupUnknownCurve(t *testing.T) {
	if _, err := Lookup("secp999k1"); err == nil {
		t.Fatal("expected error for unknown curve")
	}
}

func TestLookupByOID(t *testing.T) {
	c, err := LookupByOID([]int{1, 3, 132, 0, 33})
	if err != nil {
		t.Fatalf("LookupByOID: %v", err)
	}
	if c.Name != "secp224r1" {
		t.Fatalf("got curve %q, want secp224r1", c.Name)
	}
}

func TestByMinBits(t *testing.T) {
	c, err := ByMinBits(200)
	if err != nil {
		t.Fatalf("ByMinBits: %v", err)
	}
	if c.P.BitLen() < 200 {
		t.Fatalf("curve %s has %d bits, want >= 200", c.Name, c.P.BitLen())
	}
}

func TestListIsSortedBySize(t *testing.T) {
	names := List()
	if len(names) != len(seeds) {
		t.Fatalf("got %d curves, want %d", len(names), len(seeds))
	}
	prev, err := Lookup(names[0])
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	for _, name := range names[1:] {
		c, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup: %v", err)
		}
		if c.P.BitLen() < prev.P.BitLen() {
			t.Fatalf("curve list is not sorted by prime length: %s before %s", prev.Name, c.Name)
		}
		prev = c
	}
}

func TestLookupReturnsOwnedCopy(t *testing.T) {
	a, _ := Lookup("secp256r1")
	b, _ := Lookup("secp256r1")
	a.Gx.Clone() // no-op, just exercising the accessor
	if a.N == b.N {
		t.Fatal("Lookup returned aliased big integers across calls")
	}
}
