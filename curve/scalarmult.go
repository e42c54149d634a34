package curve

import (
	"github.com/tstruk/spg/bignum"
	"github.com/tstruk/spg/internal/spgerr"
)

// Method selects a scalar-multiplication algorithm. All three are
// required to produce identical affine results for the same (d, P); the
// choice is a runtime parameter rather than a build-time flag (§9
// redesign flag).
type Method int

const (
	// MethodBinary is the left-to-right binary method (§4.D.1).
	MethodBinary Method = iota
	// MethodNAF evaluates a binary non-adjacent form (§4.D.2).
	MethodNAF
	// MethodWNAF evaluates a width-w NAF with a precomputed odd-multiple
	// table (§4.D.3). This is the conformance-suite default.
	MethodWNAF
)

// CoordSystem selects which coordinate system the binary method
// operates in; NAF and window-NAF always use Jacobian coordinates
// internally since that's where their speed advantage comes from.
type CoordSystem int

const (
	CoordJacobian CoordSystem = iota
	CoordAffine
)

// Options configures a scalar multiplication call.
type Options struct {
	Method Method
	Coord  CoordSystem
	// Validate, if true, checks the result is on the curve before
	// returning it (§4.D: "If point validation is enabled, verify the
	// result is on the curve and log a hard error otherwise").
	Validate bool
}

// DefaultOptions is the conformance-suite default: window-NAF over
// Jacobian coordinates, with point validation enabled.
func DefaultOptions() Options {
	return Options{Method: MethodWNAF, Coord: CoordJacobian, Validate: true}
}

// ScalarMult computes d*p using the algorithm and coordinate system named
// in opts.
func (c *Params) ScalarMult(d *bignum.Int, p *Point, opts Options) (*Point, error) {
	var result *Point
	switch opts.Method {
	case MethodBinary:
		if opts.Coord == CoordAffine {
			result = c.scalarMultBinaryAffine(d, p)
		} else {
			result = c.ToAffine(c.scalarMultBinaryJacobian(d, p))
		}
	case MethodNAF:
		result = c.ToAffine(c.scalarMultNAFJacobian(d, p))
	case MethodWNAF:
		result = c.ToAffine(c.scalarMultWNAFJacobian(d, p))
	default:
		return nil, spgerr.New(spgerr.BadParams, "unknown scalar multiplication method %d", opts.Method)
	}

	if opts.Validate && !result.IsInfinity() && !c.OnCurve(result) {
		return nil, spgerr.New(spgerr.FAIL, "scalar multiplication result is not on curve %s", c.Name)
	}
	return result, nil
}

// ScalarBaseMult computes d*G using the curve's generator.
func (c *Params) ScalarBaseMult(d *bignum.Int, opts Options) (*Point, error) {
	return c.ScalarMult(d, c.Generator(), opts)
}

// scalarMultBinaryAffine implements §4.D.1 entirely in affine
// coordinates: Q <- infinity; for i from bitlen(d)-1 downto 0: Q <- 2Q;
// if bit i set, Q <- Q+P.
func (c *Params) scalarMultBinaryAffine(d *bignum.Int, p *Point) *Point {
	q := Infinity()
	for i := d.BitLen() - 1; i >= 0; i-- {
		q = c.Double(q)
		if d.Bit(i) == 1 {
			q = c.Add(q, p)
		}
	}
	return q
}

// scalarMultBinaryJacobian is the same algorithm, carried out in
// Jacobian coordinates for speed.
func (c *Params) scalarMultBinaryJacobian(d *bignum.Int, p *Point) *JacobianPoint {
	q := JacobianInfinity()
	jp := ToJacobian(p)
	for i := d.BitLen() - 1; i >= 0; i-- {
		q = c.JacobianDouble(q)
		if d.Bit(i) == 1 {
			q = c.JacobianAdd(q, jp)
		}
	}
	return q
}

// naf computes the non-adjacent form of d over the alphabet {-1,0,1}
// (Algorithm 3.30, Hankerson/Menezes/Vanstone), least-significant digit
// first.
func naf(d *bignum.Int) []int8 {
	n := d.Clone()
	var digits []int8
	four := bignum.FromInt64(4)
	for n.Sign() > 0 {
		if n.Bit(0) == 1 {
			mod4 := n.Clone().Mod(four)
			digit := int8(2 - mod4.Big().Int64())
			digits = append(digits, digit)
			if digit > 0 {
				n.SubSmall(1)
			} else {
				n.AddSmall(1)
			}
		} else {
			digits = append(digits, 0)
		}
		n.Div2()
	}
	return digits
}

// scalarMultNAFJacobian implements §4.D.2: evaluate the NAF left to
// right, adding P for a +1 digit and subtracting P for a -1 digit.
func (c *Params) scalarMultNAFJacobian(d *bignum.Int, p *Point) *JacobianPoint {
	digits := naf(d)
	jp := ToJacobian(p)
	negP := ToJacobian(c.Negate(p))

	q := JacobianInfinity()
	for i := len(digits) - 1; i >= 0; i-- {
		q = c.JacobianDouble(q)
		switch {
		case digits[i] > 0:
			q = c.JacobianAdd(q, jp)
		case digits[i] < 0:
			q = c.JacobianAdd(q, negP)
		}
	}
	return q
}

// wnaf computes the width-w NAF of d, least-significant digit first. Each
// nonzero digit is an odd integer in (-2^w, 2^w).
func wnaf(d *bignum.Int, w uint) []int32 {
	n := d.Clone()
	var digits []int32
	windowSize := int32(1 << w)
	half := int32(1 << (w - 1))
	windowSizeInt := bignum.FromInt64(int64(windowSize))

	for n.Sign() > 0 {
		if n.Bit(0) == 1 {
			mod := n.Clone().Mod(windowSizeInt)
			digit := int32(mod.Big().Int64())
			if digit >= half {
				digit -= windowSize
			}
			digits = append(digits, digit)
			if digit > 0 {
				n.SubSmall(uint64(digit))
			} else {
				n.AddSmall(uint64(-digit))
			}
		} else {
			digits = append(digits, 0)
		}
		n.Div2()
	}
	return digits
}

// scalarMultWNAFJacobian implements §4.D.3: precompute the odd multiples
// 1*P, 3*P, ..., (2^w-1)*P once (each held in affine so lookups can use
// mixed-coordinate addition), then evaluate the width-w
// NAF left to right.
func (c *Params) scalarMultWNAFJacobian(d *bignum.Int, p *Point) *JacobianPoint {
	w := uint(3)
	if d.BitLen() > 256 {
		w = 4
	}

	digits := wnaf(d, w)

	// table[k] holds (2k+1)*P in affine, for k = 0 .. 2^(w-1)-1.
	tableSize := 1 << (w - 1)
	table := make([]*Point, tableSize)
	table[0] = p.Clone()
	doubleP := c.ToAffine(c.JacobianDouble(ToJacobian(p)))
	for i := 1; i < tableSize; i++ {
		table[i] = c.Add(table[i-1], doubleP)
	}

	lookup := func(digit int32) *Point {
		idx := (abs32(digit) - 1) / 2
		pt := table[idx]
		if digit < 0 {
			return c.Negate(pt)
		}
		return pt
	}

	q := JacobianInfinity()
	for i := len(digits) - 1; i >= 0; i-- {
		q = c.JacobianDouble(q)
		if digits[i] != 0 {
			q = c.JacobianAddMixed(q, lookup(digits[i]))
		}
	}
	return q
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
