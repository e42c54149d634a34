// Package eckey implements private/public key generation and lifecycle
// management (§4.E).
package eckey

import (
	"github.com/tstruk/spg/bignum"
	"github.com/tstruk/spg/curve"
	"github.com/tstruk/spg/entropy"
	"github.com/tstruk/spg/internal/spgerr"
)

// PublicKey is {Q, curve} -- it never carries the private scalar.
type PublicKey struct {
	Q     *curve.Point
	Curve *curve.Params
}

// PrivateKey is {pub: {Q, curve}, d}.
type PrivateKey struct {
	Pub *PublicKey
	D   *bignum.Int
}

// GenerateKey implements §4.E: look up the named curve, draw d from the
// very-strong entropy source reduced mod n, compute Q = d*G, and return
// the owned key pair.
func GenerateKey(curveName string, orch *entropy.Orchestrator) (*PrivateKey, error) {
	c, err := curve.Lookup(curveName)
	if err != nil {
		return nil, err
	}

	if orch != nil {
		orch.Begin("Generating key, please wait")
		defer orch.End()
	}

	d, err := entropy.VeryStrongRandom(c.N.BitLen())
	if err != nil {
		return nil, spgerr.New(spgerr.FAIL, "draw private scalar: %v", err)
	}
	d.Mod(c.N)
	if d.IsZero() {
		d.Set(bignum.FromInt64(1))
	}

	q, err := c.ScalarBaseMult(d, curve.DefaultOptions())
	if err != nil {
		return nil, spgerr.New(spgerr.FAIL, "compute public point: %v", err)
	}

	return &PrivateKey{
		Pub: &PublicKey{Q: q, Curve: c},
		D:   d,
	}, nil
}

// Release zeroes the private scalar, the public point, and the owned
// curve parameters. Go has no manual free; this is the idiomatic analog
// of the source's deterministic release routine: make sure the sensitive
// material doesn't linger in the value after the caller is done with it.
func (k *PrivateKey) Release() {
	if k == nil {
		return
	}
	k.D.Set(bignum.FromInt64(0))
	k.Pub.Release()
}

// Release zeroes the public point and curve parameters held by pub.
func (pub *PublicKey) Release() {
	if pub == nil {
		return
	}
	pub.Q.X.Set(bignum.FromInt64(0))
	pub.Q.Y.Set(bignum.FromInt64(0))
	if c := pub.Curve; c != nil {
		for _, v := range []*bignum.Int{c.P, c.A, c.B, c.Gx, c.Gy, c.N} {
			v.Set(bignum.FromInt64(0))
		}
	}
}
