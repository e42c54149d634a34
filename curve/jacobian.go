package curve

import "github.com/tstruk/spg/bignum"

// JacobianPoint is (X, Y, Z) with affine projection (x,y) = (X/Z^2,
// Y/Z^3). The point at infinity is encoded by Z=0 (§3).
type JacobianPoint struct {
	X *bignum.Int
	Y *bignum.Int
	Z *bignum.Int
}

// JacobianInfinity returns the Jacobian point at infinity.
func JacobianInfinity() *JacobianPoint {
	return &JacobianPoint{X: bignum.FromInt64(1), Y: bignum.FromInt64(1), Z: bignum.FromInt64(0)}
}

// IsInfinity reports whether j is the point at infinity.
func (j *JacobianPoint) IsInfinity() bool {
	return j.Z.IsZero()
}

// ToJacobian lifts an affine point to Jacobian coordinates with Z=1.
func ToJacobian(p *Point) *JacobianPoint {
	if p.IsInfinity() {
		return JacobianInfinity()
	}
	return &JacobianPoint{X: p.X.Clone(), Y: p.Y.Clone(), Z: bignum.FromInt64(1)}
}

// ToAffine converts j back to an affine point, (x,y) = (X/Z^2, Y/Z^3). If
// Z=0 the conversion is skipped and the point at infinity is returned
// (§4.C).
func (c *Params) ToAffine(j *JacobianPoint) *Point {
	if j.IsInfinity() {
		return Infinity()
	}
	zInv, err := bignum.NewInt().Invert(j.Z, c.P)
	if err != nil {
		return Infinity()
	}
	zInv2 := bignum.NewInt().MulMod(zInv, zInv, c.P)
	zInv3 := bignum.NewInt().MulMod(zInv2, zInv, c.P)
	x := bignum.NewInt().MulMod(j.X, zInv2, c.P)
	y := bignum.NewInt().MulMod(j.Y, zInv3, c.P)
	return &Point{X: x, Y: y}
}

// JacobianDouble doubles j (§4.C "Jacobian doubling"):
//
//	S = 4XY^2, M = 3X^2 + aZ^4
//	X' = M^2 - 2S, Y' = M(S-X') - 8Y^4, Z' = 2YZ
//
// 8Y^4 is computed by repeated doubling of Y^2, never by division, as the
// spec requires.
func (c *Params) JacobianDouble(j *JacobianPoint) *JacobianPoint {
	if j.IsInfinity() || j.Y.IsZero() {
		return JacobianInfinity()
	}

	p := c.P
	y2 := bignum.NewInt().MulMod(j.Y, j.Y, p) // Y^2

	xy2 := bignum.NewInt().MulMod(j.X, y2, p)
	s := bignum.NewInt().MulSmall(xy2, 4)
	s.Mod(p) // S = 4*X*Y^2

	x2 := bignum.NewInt().MulMod(j.X, j.X, p)
	threeX2 := bignum.NewInt().MulSmall(x2, 3)
	threeX2.Mod(p)

	z2 := bignum.NewInt().MulMod(j.Z, j.Z, p)
	z4 := bignum.NewInt().MulMod(z2, z2, p)
	az4 := bignum.NewInt().MulMod(c.A, z4, p)

	m := bignum.NewInt().AddMod(threeX2, az4, p) // M = 3X^2 + aZ^4

	m2 := bignum.NewInt().MulMod(m, m, p)
	twoS := bignum.NewInt().MulSmall(s, 2)
	twoS.Mod(p)
	xr := bignum.NewInt().SubMod(m2, twoS, p) // X' = M^2 - 2S

	// 8Y^4 via repeated doubling: y4 = (Y^2)^2, then double it three
	// times: 2*y4, 4*y4, 8*y4.
	y4 := bignum.NewInt().MulMod(y2, y2, p)
	eightY4 := y4.Clone()
	for i := 0; i < 3; i++ {
		eightY4.AddMod(eightY4, eightY4, p)
	}

	sMinusXr := bignum.NewInt().SubMod(s, xr, p)
	mTimes := bignum.NewInt().MulMod(m, sMinusXr, p)
	yr := bignum.NewInt().SubMod(mTimes, eightY4, p) // Y' = M(S-X') - 8Y^4

	yz := bignum.NewInt().MulMod(j.Y, j.Z, p)
	zr := bignum.NewInt().MulSmall(yz, 2)
	zr.Mod(p) // Z' = 2YZ

	return &JacobianPoint{X: xr, Y: yr, Z: zr}
}

// JacobianAdd adds two Jacobian points (§4.C "Jacobian addition"),
// following the standard formulas with the special case
// X1*Z2^2 == X2*Z1^2, which either doubles (Y1*Z2^3 == Y2*Z1^3) or
// returns infinity.
func (c *Params) JacobianAdd(j1, j2 *JacobianPoint) *JacobianPoint {
	if j1.IsInfinity() {
		return &JacobianPoint{X: j2.X.Clone(), Y: j2.Y.Clone(), Z: j2.Z.Clone()}
	}
	if j2.IsInfinity() {
		return &JacobianPoint{X: j1.X.Clone(), Y: j1.Y.Clone(), Z: j1.Z.Clone()}
	}

	p := c.P
	z1z1 := bignum.NewInt().MulMod(j1.Z, j1.Z, p)
	z2z2 := bignum.NewInt().MulMod(j2.Z, j2.Z, p)

	u1 := bignum.NewInt().MulMod(j1.X, z2z2, p)
	u2 := bignum.NewInt().MulMod(j2.X, z1z1, p)

	z2z2z2 := bignum.NewInt().MulMod(z2z2, j2.Z, p)
	z1z1z1 := bignum.NewInt().MulMod(z1z1, j1.Z, p)
	s1 := bignum.NewInt().MulMod(j1.Y, z2z2z2, p)
	s2 := bignum.NewInt().MulMod(j2.Y, z1z1z1, p)

	if u1.Cmp(u2) == 0 {
		if s1.Cmp(s2) == 0 {
			return c.JacobianDouble(j1)
		}
		return JacobianInfinity()
	}

	h := bignum.NewInt().SubMod(u2, u1, p)
	r := bignum.NewInt().SubMod(s2, s1, p)

	h2 := bignum.NewInt().MulMod(h, h, p)
	h3 := bignum.NewInt().MulMod(h2, h, p)
	u1h2 := bignum.NewInt().MulMod(u1, h2, p)

	r2 := bignum.NewInt().MulMod(r, r, p)
	twoU1h2 := bignum.NewInt().MulSmall(u1h2, 2)
	twoU1h2.Mod(p)
	xr := bignum.NewInt().SubMod(r2, h3, p)
	xr.SubMod(xr, twoU1h2, p)

	u1h2MinusXr := bignum.NewInt().SubMod(u1h2, xr, p)
	rTimes := bignum.NewInt().MulMod(r, u1h2MinusXr, p)
	s1h3 := bignum.NewInt().MulMod(s1, h3, p)
	yr := bignum.NewInt().SubMod(rTimes, s1h3, p)

	zr := bignum.NewInt().MulMod(j1.Z, j2.Z, p)
	zr.MulMod(zr, h, p)

	return &JacobianPoint{X: xr, Y: yr, Z: zr}
}

// JacobianAddMixed adds Jacobian point j and affine point a (Z_a implicitly
// 1), the mixed-coordinate addition used by the window-NAF table lookups
// in §4.D. It lifts a to Jacobian form with Z=1 and runs the general
// JacobianAdd; no Z=1-specialised formulas are used.
func (c *Params) JacobianAddMixed(j *JacobianPoint, a *Point) *JacobianPoint {
	return c.JacobianAdd(j, ToJacobian(a))
}
