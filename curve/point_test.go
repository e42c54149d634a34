package curve

import "testing"

func TestDoubleMatchesAddSelf(t *testing.T) {
	c, err := Lookup("secp192r1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	g := c.Generator()
	doubled := c.Double(g)
	added := c.Add(g, g)
	if !doubled.Equals(added) {
		t.Fatalf("Double(G) = %v, Add(G,G) = %v", doubled, added)
	}
}

func TestAddInverseIsInfinity(t *testing.T) {
	c, _ := Lookup("secp192r1")
	g := c.Generator()
	negG := c.Negate(g)
	sum := c.Add(g, negG)
	if !sum.IsInfinity() {
		t.Fatalf("G + (-G) = %v, want infinity", sum)
	}
}

func TestAddInfinityIsIdentity(t *testing.T) {
	c, _ := Lookup("secp192r1")
	g := c.Generator()
	if !c.Add(g, Infinity()).Equals(g) {
		t.Fatal("G + infinity != G")
	}
	if !c.Add(Infinity(), g).Equals(g) {
		t.Fatal("infinity + G != G")
	}
}

func TestNegateDoesNotMutateInput(t *testing.T) {
	c, _ := Lookup("secp192r1")
	g := c.Generator()
	origY := g.Y.Clone()
	c.Negate(g)
	if g.Y.Cmp(origY) != 0 {
		t.Fatal("Negate mutated its argument")
	}
}

func TestSubDoesNotMutateArguments(t *testing.T) {
	c, _ := Lookup("secp192r1")
	g := c.Generator()
	h := c.Double(g)
	gx, hy := g.X.Clone(), h.Y.Clone()
	c.Sub(h, g)
	if g.X.Cmp(gx) != 0 || h.Y.Cmp(hy) != 0 {
		t.Fatal("Sub mutated one of its arguments")
	}
}

func TestGeneratorOnCurve(t *testing.T) {
	for _, name := range List() {
		c, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", name, err)
		}
		if !c.OnCurve(c.Generator()) {
			t.Fatalf("generator of %s is not on curve", name)
		}
	}
}

func TestInfinityNeverOnCurve(t *testing.T) {
	c, _ := Lookup("secp192r1")
	if c.OnCurve(Infinity()) {
		t.Fatal("OnCurve reported true for the point at infinity")
	}
}
