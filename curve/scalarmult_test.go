package curve

import (
	"crypto/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/tstruk/spg/bignum"
)

func scalars(t *testing.T, c *Params) []*bignum.Int {
	t.Helper()
	return []*bignum.Int{
		bignum.FromInt64(1),
		bignum.FromInt64(2),
		bignum.FromInt64(3),
		bignum.FromInt64(17),
		bignum.FromInt64(255),
		c.N.Clone().SubSmall(1),
	}
}

func TestScalarMultMethodsAgree(t *testing.T) {
	c, err := Lookup("secp192r1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	for _, d := range scalars(t, c) {
		binAffine, err := c.ScalarMult(d, c.Generator(), Options{Method: MethodBinary, Coord: CoordAffine, Validate: true})
		if err != nil {
			t.Fatalf("binary affine d=%s: %v", d.Text(), err)
		}
		binJac, err := c.ScalarMult(d, c.Generator(), Options{Method: MethodBinary, Coord: CoordJacobian, Validate: true})
		if err != nil {
			t.Fatalf("binary jacobian d=%s: %v", d.Text(), err)
		}
		naf, err := c.ScalarMult(d, c.Generator(), Options{Method: MethodNAF, Coord: CoordJacobian, Validate: true})
		if err != nil {
			t.Fatalf("naf d=%s: %v", d.Text(), err)
		}
		wnaf, err := c.ScalarMult(d, c.Generator(), Options{Method: MethodWNAF, Coord: CoordJacobian, Validate: true})
		if err != nil {
			t.Fatalf("wnaf d=%s: %v", d.Text(), err)
		}

		if !binAffine.Equals(binJac) || !binAffine.Equals(naf) || !binAffine.Equals(wnaf) {
			t.Fatalf("scalar multiplication methods disagree for d=%s:\nbinary affine: %s\nbinary jacobian: %s\nnaf: %s\nwnaf: %s",
				d.Text(), spew.Sdump(binAffine), spew.Sdump(binJac), spew.Sdump(naf), spew.Sdump(wnaf))
		}
	}
}

func TestScalarBaseMultMatchesGeneratorAdds(t *testing.T) {
	c, _ := Lookup("secp192r1")
	g := c.Generator()
	three := bignum.FromInt64(3)
	viaScalar, err := c.ScalarBaseMult(three, DefaultOptions())
	if err != nil {
		t.Fatalf("ScalarBaseMult: %v", err)
	}
	viaAdds := c.Add(c.Add(g, g), g)
	if !viaScalar.Equals(viaAdds) {
		t.Fatalf("3*G mismatch: %v vs %v", viaScalar, viaAdds)
	}
}

func TestScalarMultByOrderIsInfinity(t *testing.T) {
	c, _ := Lookup("secp192r1")
	result, err := c.ScalarBaseMult(c.N, Options{Method: MethodWNAF, Coord: CoordJacobian, Validate: false})
	if err != nil {
		t.Fatalf("ScalarBaseMult: %v", err)
	}
	if !result.IsInfinity() {
		t.Fatalf("n*G = %v, want infinity", result)
	}
}

// TestWNAFMatchesBinaryOnSecp521r1 exercises §8 scenario 6: on the
// largest registered curve, window-NAF and left-to-right binary must
// agree on d*G for 100 random scalars.
func TestWNAFMatchesBinaryOnSecp521r1(t *testing.T) {
	c, err := Lookup("secp521r1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	for i := 0; i < 100; i++ {
		d := bignum.NewInt()
		if err := d.Rand(c.N.BitLen(), rand.Reader); err != nil {
			t.Fatalf("Rand: %v", err)
		}
		d.Mod(c.N)
		if d.IsZero() {
			continue
		}

		binary, err := c.ScalarBaseMult(d, Options{Method: MethodBinary, Coord: CoordJacobian, Validate: true})
		if err != nil {
			t.Fatalf("binary d=%s: %v", d.Text(), err)
		}
		wnaf, err := c.ScalarBaseMult(d, Options{Method: MethodWNAF, Coord: CoordJacobian, Validate: true})
		if err != nil {
			t.Fatalf("wnaf d=%s: %v", d.Text(), err)
		}
		if !binary.Equals(wnaf) {
			t.Fatalf("binary and wnaf disagree for d=%s:\nbinary: %s\nwnaf: %s", d.Text(), spew.Sdump(binary), spew.Sdump(wnaf))
		}
	}
}
