// Package bignum is the big-integer façade the rest of SPG builds on: a
// thin domain layer over math/big exposing exactly the operations the ECC
// engine needs (modular add/sub/mul/invert, bit tests, strong
// randomization, minimum-length byte export) rather than the whole of
// math/big's surface.
package bignum

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/tstruk/spg/internal/spgerr"
)

// Int is an opaque arbitrary-precision non-negative integer.
type Int struct {
	v *big.Int
}

// NewInt returns a new zero-valued Int.
func NewInt() *Int {
	return &Int{v: new(big.Int)}
}

// FromInt64 builds an Int from a small signed constant. Only used for
// literals such as 0, 1, 2, 3 that show up in the point-algebra formulas.
func FromInt64(n int64) *Int {
	return &Int{v: big.NewInt(n)}
}

// FromHex parses an uppercase (or lowercase) hex string into a new Int, as
// the curve registry does once per curve parameter at init time.
func FromHex(s string) (*Int, error) {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, spgerr.New(spgerr.FAIL, "invalid hex integer %q", s)
	}
	return &Int{v: v}, nil
}

// MustFromHex is FromHex but panics on error; it exists solely for the
// package-level curve constant tables, where a malformed literal is a
// programmer error caught at init time, not a runtime condition.
func MustFromHex(s string) *Int {
	n, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return n
}

// FromBytes interprets b as an unsigned big-endian integer.
func FromBytes(b []byte) *Int {
	return &Int{v: new(big.Int).SetBytes(b)}
}

// Bytes returns the minimum-length unsigned big-endian encoding of n, with
// no leading zero byte (matching gcry_mpi_print's GCRYMPI_FMT_USG).
func (n *Int) Bytes() []byte {
	return n.v.Bytes()
}

// Clone returns an independent copy of n.
func (n *Int) Clone() *Int {
	return &Int{v: new(big.Int).Set(n.v)}
}

// Set copies the value of other into n and returns n.
func (n *Int) Set(other *Int) *Int {
	n.v.Set(other.v)
	return n
}

// IsZero reports whether n is zero.
func (n *Int) IsZero() bool {
	return n.v.Sign() == 0
}

// Sign returns -1, 0 or +1 as n is negative, zero or positive.
func (n *Int) Sign() int {
	return n.v.Sign()
}

// Cmp compares n to other the way big.Int.Cmp does.
func (n *Int) Cmp(other *Int) int {
	return n.v.Cmp(other.v)
}

// BitLen returns the minimal number of bits to represent n.
func (n *Int) BitLen() int {
	return n.v.BitLen()
}

// Bit returns the value of the i'th bit of n (0 or 1).
func (n *Int) Bit(i int) uint {
	return n.v.Bit(i)
}

// ClearBit clears bit i of n in place and returns n.
func (n *Int) ClearBit(i int) *Int {
	n.v.SetBit(n.v, i, 0)
	return n
}

// ClearAbove clears every bit at a position strictly greater than i,
// leaving only the low i+1 bits of n.
func (n *Int) ClearAbove(i int) *Int {
	mask := new(big.Int).Lsh(big.NewInt(1), uint(i+1))
	mask.Sub(mask, big.NewInt(1))
	n.v.And(n.v, mask)
	return n
}

// Mod reduces n modulo m in place and returns n.
func (n *Int) Mod(m *Int) *Int {
	n.v.Mod(n.v, m.v)
	return n
}

// AddMod sets n = (a + b) mod m and returns n.
func (n *Int) AddMod(a, b, m *Int) *Int {
	n.v.Add(a.v, b.v)
	n.v.Mod(n.v, m.v)
	return n
}

// SubMod sets n = (a - b) mod m and returns n.
func (n *Int) SubMod(a, b, m *Int) *Int {
	n.v.Sub(a.v, b.v)
	n.v.Mod(n.v, m.v)
	return n
}

// MulMod sets n = (a * b) mod m and returns n.
func (n *Int) MulMod(a, b, m *Int) *Int {
	n.v.Mul(a.v, b.v)
	n.v.Mod(n.v, m.v)
	return n
}

// MulSmall sets n = a * k (unsigned, unreduced small-integer multiply) and
// returns n. Used for constants like the "4" and "8" in the Jacobian
// doubling formula.
func (n *Int) MulSmall(a *Int, k int64) *Int {
	n.v.Mul(a.v, big.NewInt(k))
	return n
}

// Invert sets n = a^-1 mod m and returns n. It fails with spgerr.FAIL when
// a is not invertible modulo m (gcd(a, m) != 1); callers in the point and
// scalar-multiplication algorithms are responsible for never calling this
// on an input that could be zero mod m.
func (n *Int) Invert(a, m *Int) (*Int, error) {
	r := n.v.ModInverse(a.v, m.v)
	if r == nil {
		return nil, spgerr.New(spgerr.FAIL, "value has no inverse mod %s", m.v.Text(16))
	}
	return n, nil
}

// Rand draws a cryptographically strong uniformly random integer in
// [0, 2^bits) from src and stores it in n. A nil src defaults to
// crypto/rand.Reader ("VERY_STRONG" in the original source's terms --
// see the entropy package for how SPG keeps the STRONG/VERY_STRONG
// distinction visible at call sites).
func (n *Int) Rand(bits int, src io.Reader) error {
	if bits <= 0 {
		return spgerr.New(spgerr.BadParams, "bit length must be positive, got %d", bits)
	}
	if src == nil {
		src = rand.Reader
	}
	v, err := rand.Int(src, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
	if err != nil {
		return spgerr.New(spgerr.FAIL, "randomize: %v", err)
	}
	n.v.Set(v)
	return nil
}

// AddSmall adds the small non-negative constant k to n in place and
// returns n.
func (n *Int) AddSmall(k uint64) *Int {
	n.v.Add(n.v, new(big.Int).SetUint64(k))
	return n
}

// SubSmall subtracts the small non-negative constant k from n in place
// and returns n.
func (n *Int) SubSmall(k uint64) *Int {
	n.v.Sub(n.v, new(big.Int).SetUint64(k))
	return n
}

// Div2 halves n via an arithmetic right shift (floor division by two)
// and returns n. Used by the NAF/window-NAF digit recurrences, which
// repeatedly halve the scalar being decomposed.
func (n *Int) Div2() *Int {
	n.v.Rsh(n.v, 1)
	return n
}

// Text returns the uppercase hex representation of n, used by debug
// printers and tests.
func (n *Int) Text() string {
	return fmt.Sprintf("%X", n.v)
}

// Big exposes the underlying *big.Int for the rare call site (envelope
// codec, CLI formatting) that genuinely needs it. Package code inside SPG
// should prefer the façade methods above.
func (n *Int) Big() *big.Int {
	return n.v
}
