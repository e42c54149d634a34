// Package ecies implements the cofactor ECIES key-agreement step used to
// derive the per-file symmetric key pair (§4.G).
package ecies

import (
	"crypto/sha512"

	"github.com/tstruk/spg/bignum"
	"github.com/tstruk/spg/curve"
	"github.com/tstruk/spg/eckey"
	"github.com/tstruk/spg/entropy"
	"github.com/tstruk/spg/internal/spgerr"
)

// KeySize is the length in bytes of each of the two derived key halves.
const KeySize = 32

// EncKey is the output of a key-agreement run: the ephemeral point R to
// be carried in the envelope, the two derived key halves (K1: cipher
// key, K2: MAC key), and the length of each half.
type EncKey struct {
	R       *curve.Point
	K1      []byte
	K2      []byte
	KeySize int
}

// GenerateEncryptionKey runs the sender side of cofactor ECIES against
// pub (§4.G.1): draw an ephemeral scalar k, compute R=kG and the shared
// point Z=(k*h)*Q, then derive K1||K2 = KDF(R, Z). The draw is retried if
// either R or Z lands on the point at infinity.
func GenerateEncryptionKey(pub *eckey.PublicKey) (*EncKey, error) {
	c := pub.Curve
	h := bignum.FromInt64(int64(c.H))

	for {
		k, err := entropy.VeryStrongRandom(c.N.BitLen())
		if err != nil {
			return nil, spgerr.New(spgerr.FAIL, "draw ephemeral scalar: %v", err)
		}
		k.Mod(c.N)
		if k.IsZero() {
			continue
		}

		r, err := c.ScalarBaseMult(k, curve.DefaultOptions())
		if err != nil {
			return nil, err
		}
		if r.IsInfinity() {
			continue
		}

		kh := bignum.NewInt().MulMod(k, h, c.N)
		z, err := c.ScalarMult(kh, pub.Q, curve.DefaultOptions())
		if err != nil {
			return nil, err
		}
		if z.IsInfinity() {
			continue
		}

		k1, k2 := kdf(r, z)
		return &EncKey{R: r, K1: k1, K2: k2, KeySize: KeySize}, nil
	}
}

// GenerateDecryptionKey runs the receiver side (§4.G.2): compute
// Z=(h*d)*R from the ephemeral point R carried in the envelope and the
// recipient's private scalar, then derive K1||K2 the same way.
func GenerateDecryptionKey(priv *eckey.PrivateKey, r *curve.Point) (*EncKey, error) {
	c := priv.Pub.Curve
	h := bignum.FromInt64(int64(c.H))

	hd := bignum.NewInt().MulMod(h, priv.D, c.N)
	z, err := c.ScalarMult(hd, r, curve.DefaultOptions())
	if err != nil {
		return nil, err
	}
	if z.IsInfinity() {
		return nil, spgerr.New(spgerr.DecryptionFailed, "shared point is the point at infinity")
	}

	k1, k2 := kdf(r, z)
	return &EncKey{R: r, K1: k1, K2: k2, KeySize: KeySize}, nil
}

// kdf derives K1||K2 = SHA-512(R.X || R.Y || Z.X), following §4.G.3: a
// single SHA-512 digest over the concatenation of the minimum-length
// big-endian encodings of R's coordinates and Z's x-coordinate, split in
// half into the cipher key and the MAC key.
func kdf(r, z *curve.Point) (k1, k2 []byte) {
	h := sha512.New()
	h.Write(r.X.Bytes())
	h.Write(r.Y.Bytes())
	h.Write(z.X.Bytes())
	sum := h.Sum(nil)
	return sum[:KeySize], sum[KeySize:]
}
