// Package ecdsa implements signing and verification over the curve
// registry in package curve (§4.F).
package ecdsa

import (
	"crypto/sha512"
	"io"

	"github.com/tstruk/spg/bignum"
	"github.com/tstruk/spg/curve"
	"github.com/tstruk/spg/eckey"
	"github.com/tstruk/spg/entropy"
	"github.com/tstruk/spg/internal/spgerr"
)

// Signature is an ECDSA signature (r, s).
type Signature struct {
	R *bignum.Int
	S *bignum.Int
}

// digest hashes msg with SHA-512 and reduces the full digest modulo n,
// scanning it as an unsigned integer exactly as the original does (§4.F:
// "the digest is simply scanned as an unsigned integer and reduced").
func digest(msg []byte, n *bignum.Int) *bignum.Int {
	sum := sha512.Sum512(msg)
	e := bignum.FromBytes(sum[:])
	e.Mod(n)
	return e
}

// Sign computes an ECDSA signature over msg under priv (§4.F.2). nonceSrc
// overrides the entropy source used to draw the per-signature nonce k; a
// nil value defaults to entropy.StrongRandom's crypto/rand.Reader source.
// Sign retries internally whenever the draw produces r=0 or s=0, which
// happens with negligible probability.
func Sign(priv *eckey.PrivateKey, msg []byte, nonceSrc io.Reader) (*Signature, error) {
	c := priv.Pub.Curve
	e := digest(msg, c.N)

	for {
		var k *bignum.Int
		var err error
		if nonceSrc != nil {
			k = bignum.NewInt()
			if err = k.Rand(c.N.BitLen(), nonceSrc); err != nil {
				return nil, spgerr.New(spgerr.FAIL, "draw nonce: %v", err)
			}
		} else {
			k, err = entropy.StrongRandom(c.N.BitLen())
			if err != nil {
				return nil, spgerr.New(spgerr.FAIL, "draw nonce: %v", err)
			}
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
		rmodn := r.X.Clone()
		rmodn.Mod(c.N)
		if rmodn.IsZero() {
			continue
		}

		kInv := bignum.NewInt()
		if _, err := kInv.Invert(k, c.N); err != nil {
			continue
		}

		dr := bignum.NewInt().MulMod(priv.D, rmodn, c.N)
		s := bignum.NewInt().AddMod(e, dr, c.N)
		s.MulMod(s, kInv, c.N)
		if s.IsZero() {
			continue
		}

		return &Signature{R: rmodn, S: s}, nil
	}
}

// Verify checks sig against msg under pub (§4.F.3). It rejects r or s
// outside [1, n-1] non-strictly (r>=n or s>=n), the mathematically
// correct bound -- see the design notes for why the source's strict r>n
// check is not reproduced here.
func Verify(pub *eckey.PublicKey, sig *Signature, msg []byte) (bool, error) {
	c := pub.Curve
	if sig.R.IsZero() || sig.R.Cmp(c.N) >= 0 || sig.S.IsZero() || sig.S.Cmp(c.N) >= 0 {
		return false, nil
	}

	e := digest(msg, c.N)

	w := bignum.NewInt()
	if _, err := w.Invert(sig.S, c.N); err != nil {
		return false, spgerr.New(spgerr.SignatureInvalid, "s has no inverse mod n")
	}

	u1 := bignum.NewInt().MulMod(e, w, c.N)
	u2 := bignum.NewInt().MulMod(sig.R, w, c.N)

	p1, err := c.ScalarBaseMult(u1, curve.DefaultOptions())
	if err != nil {
		return false, err
	}
	p2, err := c.ScalarMult(u2, pub.Q, curve.DefaultOptions())
	if err != nil {
		return false, err
	}

	p := c.Add(p1, p2)
	if p.IsInfinity() {
		return false, nil
	}

	x := p.X.Clone()
	x.Mod(c.N)
	return x.Cmp(sig.R) == 0, nil
}
