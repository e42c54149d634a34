package curve

import "github.com/tstruk/spg/bignum"

// Point is an affine EC point (x, y). The point at infinity is
// represented by both coordinates being zero (§3 "Point-at-infinity
// convention").
type Point struct {
	X *bignum.Int
	Y *bignum.Int
}

// Infinity returns the affine point at infinity.
func Infinity() *Point {
	return &Point{X: bignum.FromInt64(0), Y: bignum.FromInt64(0)}
}

// IsInfinity reports whether p is the point at infinity.
func (p *Point) IsInfinity() bool {
	return p.X.IsZero() && p.Y.IsZero()
}

// Equals reports whether p and q have identical coordinates.
func (p *Point) Equals(q *Point) bool {
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// Clone returns an independent copy of p.
func (p *Point) Clone() *Point {
	return &Point{X: p.X.Clone(), Y: p.Y.Clone()}
}

// OnCurve reports whether p satisfies y^2 = x^3 + ax + b (mod p) for the
// curve c. The point at infinity is never on the curve (§3).
func (c *Params) OnCurve(p *Point) bool {
	if p.IsInfinity() {
		return false
	}
	lhs := bignum.NewInt().MulMod(p.Y, p.Y, c.P)

	x2 := bignum.NewInt().MulMod(p.X, p.X, c.P)
	x3 := bignum.NewInt().MulMod(x2, p.X, c.P)
	ax := bignum.NewInt().MulMod(c.A, p.X, c.P)
	rhs := bignum.NewInt().AddMod(x3, ax, c.P)
	rhs.AddMod(rhs, c.B, c.P)

	return lhs.Cmp(rhs) == 0
}

// Double returns 2*p in affine coordinates (§4.C "Affine doubling"). A
// point with y=0 doubles to the point at infinity -- the corrected
// semantics from §9, not the source's x-only-zero bug.
func (c *Params) Double(p *Point) *Point {
	if p.IsInfinity() || p.Y.IsZero() {
		return Infinity()
	}

	// s = (3x^2 + a) * (2y)^-1 mod p
	x2 := bignum.NewInt().MulMod(p.X, p.X, c.P)
	threeX2 := bignum.NewInt().MulSmall(x2, 3)
	threeX2.Mod(c.P)
	num := bignum.NewInt().AddMod(threeX2, c.A, c.P)

	twoY := bignum.NewInt().MulSmall(p.Y, 2)
	twoY.Mod(c.P)
	twoYInv, err := bignum.NewInt().Invert(twoY, c.P)
	if err != nil {
		// 2y is only non-invertible mod p when y=0, already handled above.
		return Infinity()
	}
	s := bignum.NewInt().MulMod(num, twoYInv, c.P)

	// x' = s^2 - 2x
	twoX := bignum.NewInt().MulSmall(p.X, 2)
	twoX.Mod(c.P)
	s2 := bignum.NewInt().MulMod(s, s, c.P)
	xr := bignum.NewInt().SubMod(s2, twoX, c.P)

	// y' = s(x - x') - y
	dx := bignum.NewInt().SubMod(p.X, xr, c.P)
	sdx := bignum.NewInt().MulMod(s, dx, c.P)
	yr := bignum.NewInt().SubMod(sdx, p.Y, c.P)

	return &Point{X: xr, Y: yr}
}

// Add returns p+q in affine coordinates (§4.C "Affine addition").
func (c *Params) Add(p, q *Point) *Point {
	if p.IsInfinity() {
		return q.Clone()
	}
	if q.IsInfinity() {
		return p.Clone()
	}
	if p.Equals(q) {
		return c.Double(p)
	}
	if p.X.Cmp(q.X) == 0 {
		// Same x, different y: P = -Q, sum is infinity.
		return Infinity()
	}

	dy := bignum.NewInt().SubMod(p.Y, q.Y, c.P)
	dx := bignum.NewInt().SubMod(p.X, q.X, c.P)
	dxInv, err := bignum.NewInt().Invert(dx, c.P)
	if err != nil {
		return Infinity()
	}
	s := bignum.NewInt().MulMod(dy, dxInv, c.P)

	s2 := bignum.NewInt().MulMod(s, s, c.P)
	xr := bignum.NewInt().SubMod(s2, p.X, c.P)
	xr.SubMod(xr, q.X, c.P)

	dxr := bignum.NewInt().SubMod(p.X, xr, c.P)
	sdxr := bignum.NewInt().MulMod(s, dxr, c.P)
	yr := bignum.NewInt().SubMod(sdxr, p.Y, c.P)

	return &Point{X: xr, Y: yr}
}

// Negate returns a new point that is -p (y negated mod p), never
// mutating p (§9: the source's affine subtraction mutates its input; SPG
// always operates on a local copy).
func (c *Params) Negate(p *Point) *Point {
	if p.IsInfinity() {
		return Infinity()
	}
	negY := bignum.NewInt().SubMod(c.P, p.Y, c.P)
	return &Point{X: p.X.Clone(), Y: negY}
}

// Sub returns q-p, computed as q + (-p) (§4.C "Point subtraction"), and
// never mutates either argument.
func (c *Params) Sub(q, p *Point) *Point {
	return c.Add(q, c.Negate(p))
}
