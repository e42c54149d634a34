// Package curve implements the SEC 2 curve registry and the EC point
// algebra (affine and Jacobian) and scalar-multiplication algorithms that
// operate over it.
package curve

import (
	"sort"
	"sync"

	"github.com/tstruk/spg/bignum"
	"github.com/tstruk/spg/internal/spgerr"
)

// Params holds the domain parameters of a single prime-field
// short-Weierstrass curve: {p, a, b, G=(Gx,Gy), n, h} plus the registry
// metadata (name, OID, security level) from §4.B.
type Params struct {
	Name string
	OID  []int

	P  *bignum.Int
	A  *bignum.Int
	B  *bignum.Int
	Gx *bignum.Int
	Gy *bignum.Int
	N  *bignum.Int
	H  int

	// SecurityBits is the approximate symmetric security level in bits.
	SecurityBits int
}

// Generator returns the base point G of the curve.
func (c *Params) Generator() *Point {
	return &Point{X: c.Gx.Clone(), Y: c.Gy.Clone()}
}

// clone returns an independent, owned copy of c, so that a key record
// never aliases big integers held by the package-level registry (§3
// "Lifetimes").
func (c *Params) clone() *Params {
	oid := make([]int, len(c.OID))
	copy(oid, c.OID)
	return &Params{
		Name:         c.Name,
		OID:          oid,
		P:            c.P.Clone(),
		A:            c.A.Clone(),
		B:            c.B.Clone(),
		Gx:           c.Gx.Clone(),
		Gy:           c.Gy.Clone(),
		N:            c.N.Clone(),
		H:            c.H,
		SecurityBits: c.SecurityBits,
	}
}

// curveSeed is the literal hex-string row shape used by the registry
// table, mirroring original_source/curves.c's curves_tab[] layout.
type curveSeed struct {
	name         string
	oid          []int
	p, a, b      string
	gx, gy       string
	n            string
	h            int
	securityBits int
}

var seeds = []curveSeed{
	{
		name: "secp112r1", oid: []int{1, 3, 132, 0, 6},
		p: "DB7C2ABF62E35E668076BEAD208B",
		a: "DB7C2ABF62E35E668076BEAD2088",
		b: "659EF8BA043916EEDE8911702B22",
		gx: "09487239995A5EE76B55F9C2F098", gy: "A89CE5AF8724C0A23E0E0FF77500",
		n: "DB7C2ABF62E35E7628DFAC6561C5", h: 1, securityBits: 56,
	},
	{
		name: "secp112r2", oid: []int{1, 3, 132, 0, 7},
		p: "DB7C2ABF62E35E668076BEAD208B",
		a: "6127C24C05F38A0AAAF65C0EF02C",
		b: "51DEF1815DB5ED74FCC34C85D709",
		gx: "4BA30AB5E892B4E1649DD0928643", gy: "ADCD46F5882E3747DEF36E956E97",
		n: "36DF0AAFD8B8D7597CA10520D04B", h: 4, securityBits: 56,
	},
	{
		name: "secp128r1", oid: []int{1, 3, 132, 0, 28},
		p: "FFFFFFFDFFFFFFFFFFFFFFFFFFFFFFFF",
		a: "FFFFFFFDFFFFFFFFFFFFFFFFFFFFFFFC",
		b: "E87579C11079F43DD824993C2CEE5ED3",
		gx: "161FF7528B899B2D0C28607CA52C5B86", gy: "CF5AC8395BAFEB13C02DA292DDED7A83",
		n: "FFFFFFFE0000000075A30D1B9038A115", h: 1, securityBits: 64,
	},
	{
		name: "secp128r2", oid: []int{1, 3, 132, 0, 29},
		p: "FFFFFFFDFFFFFFFFFFFFFFFFFFFFFFFF",
		a: "D6031998D1B3BBFEBF59CC9BBFF9AEE1",
		b: "5EEEFCA380D02919DC2C6558BB6D8A5D",
		gx: "7B6AA5D85E572983E6FB32A7CDEBC140", gy: "27B6916A894D3AEE7106FE805FC34B44",
		n: "3FFFFFFF7FFFFFFFBE0024720613B5A3", h: 4, securityBits: 64,
	},
	{
		name: "secp160r1", oid: []int{1, 3, 132, 0, 8},
		p: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF7FFFFFFF",
		a: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF7FFFFFFC",
		b: "1C97BEFC54BD7A8B65ACF89F81D4D4ADC565FA45",
		gx: "4A96B5688EF573284664698968C38BB913CBFC82", gy: "23A628553168947D59DCC912042351377AC5FB32",
		n: "0100000000000000000001F4C8F927AED3CA752257", h: 1, securityBits: 80,
	},
	{
		name: "secp160r2", oid: []int{1, 3, 132, 0, 30},
		p: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFAC73",
		a: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFAC70",
		b: "B4E134D3FB59EB8BAB57274904664D5AF50388BA",
		gx: "52DCB034293A117E1F4FF11B30F7199D3144CE6D", gy: "FEAFFEF2E331F296E071FA0DF9982CFEA7D43F2E",
		n: "0100000000000000000000351EE786A818F3A1A16B", h: 1, securityBits: 80,
	},
	{
		name: "secp192r1", oid: []int{1, 2, 840, 10045, 3, 1, 1},
		p: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFFFFFFFFFF",
		a: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFFFFFFFFFC",
		b: "64210519E59C80E70FA7E9AB72243049FEB8DEECC146B9B1",
		gx: "188DA80EB03090F67CBF20EB43A18800F4FF0AFD82FF1012", gy: "07192B95FFC8DA78631011ED6B24CDD573F977A11E794811",
		n: "FFFFFFFFFFFFFFFFFFFFFFFF99DEF836146BC9B1B4D22831", h: 1, securityBits: 96,
	},
	{
		name: "secp224r1", oid: []int{1, 3, 132, 0, 33},
		p: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF000000000000000000000001",
		a: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFE",
		b: "B4050A850C04B3ABF54132565044B0B7D7BFD8BA270B39432355FFB4",
		gx: "B70E0CBD6BB4BF7F321390B94A03C1D356C21122343280D6115C1D21", gy: "BD376388B5F723FB4C22DFE6CD4375A05A07476444D5819985007E34",
		n: "FFFFFFFFFFFFFFFFFFFFFFFFFFFF16A2E0B8F03E13DD29455C5C2A3D", h: 1, securityBits: 112,
	},
	{
		name: "secp256r1", oid: []int{1, 2, 840, 10045, 3, 1, 7},
		p: "FFFFFFFF00000001000000000000000000000000FFFFFFFFFFFFFFFFFFFFFFFF",
		a: "FFFFFFFF00000001000000000000000000000000FFFFFFFFFFFFFFFFFFFFFFFC",
		b: "5AC635D8AA3A93E7B3EBBD55769886BC651D06B0CC53B0F63BCE3C3E27D2604B",
		gx: "6B17D1F2E12C4247F8BCE6E563A440F277037D812DEB33A0F4A13945D898C296", gy: "4FE342E2FE1A7F9B8EE7EB4A7C0F9E162BCE33576B315ECECBB6406837BF51F5",
		n: "FFFFFFFF00000000FFFFFFFFFFFFFFFFBCE6FAADA7179E84F3B9CAC2FC632551", h: 1, securityBits: 128,
	},
	{
		name: "secp384r1", oid: []int{1, 3, 132, 0, 34},
		p: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFF0000000000000000FFFFFFFF",
		a: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFFFF0000000000000000FFFFFFFC",
		b: "B3312FA7E23EE7E4988E056BE3F82D19181D9C6EFE8141120314088F5013875AC656398D8A2ED19D2A85C8EDD3EC2AEF",
		gx: "AA87CA22BE8B05378EB1C71EF320AD746E1D3B628BA79B9859F741E082542A385502F25DBF55296C3A545E3872760AB7", gy: "3617DE4A96262C6F5D9E98BF9292DC29F8F41DBD289A147CE9DA3113B5F0B8C00A60B1CE1D7E819D7A431D7C90EA0E5F",
		n: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFC7634D81F4372DDF581A0DB248B0A77AECEC196ACCC52973", h: 1, securityBits: 192,
	},
	{
		name: "secp521r1", oid: []int{1, 3, 132, 0, 35},
		p: "01FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF",
		a: "01FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFC",
		b: "0051953EB9618E1C9A1F929A21A0B68540EEA2DA725B99B315F3B8B489918EF109E156193951EC7E937B1652C0BD3BB1BF073573DF883D2C34F1EF451FD46B503F00",
		gx: "00C6858E06B70404E9CD9E3ECB662395B4429C648139053FB521F828AF606B4D3DBAA14B5E77EFE75928FE1DC127A2FFA8DE3348B3C1856A429BF97E7E31C2E5BD66", gy: "011839296A789A3BC0045C8A5FB42C7D1BD998F54449579B446817AFBD17273E662C97EE72995EF42640C550B9013FAD0761353C7086A272C24088BE94769FD16650",
		n: "01FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFA51868783BF2F966B7FCC0148F709A5D03BB5C9B8899C47AEBB6FB71E91386409", h: 1, securityBits: 256,
	},
}

var (
	registryOnce sync.Once
	registry     []*Params
)

func buildRegistry() {
	registry = make([]*Params, 0, len(seeds))
	for _, s := range seeds {
		registry = append(registry, &Params{
			Name:         s.name,
			OID:          s.oid,
			P:            bignum.MustFromHex(s.p),
			A:            bignum.MustFromHex(s.a),
			B:            bignum.MustFromHex(s.b),
			Gx:           bignum.MustFromHex(s.gx),
			Gy:           bignum.MustFromHex(s.gy),
			N:            bignum.MustFromHex(s.n),
			H:            s.h,
			SecurityBits: s.securityBits,
		})
	}
	sort.Slice(registry, func(i, j int) bool {
		return registry[i].P.BitLen() < registry[j].P.BitLen()
	})
}

func table() []*Params {
	registryOnce.Do(buildRegistry)
	return registry
}

// Lookup returns an owned copy of the named curve's parameters, or a
// BadParams error listing the known curves if name isn't registered.
func Lookup(name string) (*Params, error) {
	for _, c := range table() {
		if c.Name == name {
			return c.clone(), nil
		}
	}
	return nil, spgerr.New(spgerr.BadParams, "unknown curve %q, known curves: %v", name, List())
}

// LookupByOID returns an owned copy of the first registered curve whose
// OID matches oid exactly.
func LookupByOID(oid []int) (*Params, error) {
	for _, c := range table() {
		if intsEqual(c.OID, oid) {
			return c.clone(), nil
		}
	}
	return nil, spgerr.New(spgerr.BadParams, "no curve registered for OID %v", oid)
}

// ByMinBits returns the smallest registered curve whose prime p is at
// least minBits bits long.
func ByMinBits(minBits int) (*Params, error) {
	for _, c := range table() {
		if c.P.BitLen() >= minBits {
			return c.clone(), nil
		}
	}
	return nil, spgerr.New(spgerr.BadParams, "no curve with prime length >= %d bits", minBits)
}

// List returns the name of every registered curve in table order
// (smallest prime first), backing the list_curves command.
func List() []string {
	t := table()
	names := make([]string, len(t))
	for i, c := range t {
		names[i] = c.Name
	}
	return names
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
