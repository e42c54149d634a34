// Package envelope frames private keys, public keys and signatures as
// PEM blocks (§4.J), delegating the outer BEGIN/END/base64 shell to
// encoding/pem and owning only the length-prefixed payload schema
// carried inside each block.
package envelope

import (
	"bytes"
	"encoding/pem"
	"io"

	"github.com/tstruk/spg/bignum"
	"github.com/tstruk/spg/curve"
	"github.com/tstruk/spg/ecdsa"
	"github.com/tstruk/spg/eckey"
	"github.com/tstruk/spg/internal/spgerr"
)

const (
	privateKeyType = "SPG PRIVATE KEY"
	publicKeyType  = "SPG PUBLIC KEY"
	signatureType  = "SPG SIGNATURE"
)

// writeField appends a single-byte length prefix followed by b.
func writeField(buf *bytes.Buffer, b []byte) error {
	if len(b) > 255 {
		return spgerr.New(spgerr.FAIL, "field too long to encode: %d bytes", len(b))
	}
	buf.WriteByte(byte(len(b)))
	buf.Write(b)
	return nil
}

func readField(r *bytes.Reader) ([]byte, error) {
	l, err := r.ReadByte()
	if err != nil {
		return nil, spgerr.New(spgerr.FAIL, "truncated envelope: %v", err)
	}
	b := make([]byte, l)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, spgerr.New(spgerr.FAIL, "truncated envelope: %v", err)
	}
	return b, nil
}

// EncodePrivateKey frames priv as an "SPG PRIVATE KEY" PEM block:
// Q.X || Q.Y || D || curve-name.
func EncodePrivateKey(priv *eckey.PrivateKey) []byte {
	var buf bytes.Buffer
	writeField(&buf, priv.Pub.Q.X.Bytes())
	writeField(&buf, priv.Pub.Q.Y.Bytes())
	writeField(&buf, priv.D.Bytes())
	writeField(&buf, []byte(priv.Pub.Curve.Name))
	return pem.EncodeToMemory(&pem.Block{Type: privateKeyType, Bytes: buf.Bytes()})
}

// DecodePrivateKey parses an "SPG PRIVATE KEY" PEM block back into a key.
func DecodePrivateKey(data []byte) (*eckey.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != privateKeyType {
		return nil, spgerr.New(spgerr.BadParams, "not an %s block", privateKeyType)
	}

	r := bytes.NewReader(block.Bytes)
	xb, err := readField(r)
	if err != nil {
		return nil, err
	}
	yb, err := readField(r)
	if err != nil {
		return nil, err
	}
	db, err := readField(r)
	if err != nil {
		return nil, err
	}
	nameb, err := readField(r)
	if err != nil {
		return nil, err
	}

	c, err := curve.Lookup(string(nameb))
	if err != nil {
		return nil, err
	}

	return &eckey.PrivateKey{
		Pub: &eckey.PublicKey{
			Q:     &curve.Point{X: bignum.FromBytes(xb), Y: bignum.FromBytes(yb)},
			Curve: c,
		},
		D: bignum.FromBytes(db),
	}, nil
}

// EncodePublicKey frames pub as an "SPG PUBLIC KEY" PEM block:
// Q.X || Q.Y || curve-name.
func EncodePublicKey(pub *eckey.PublicKey) []byte {
	var buf bytes.Buffer
	writeField(&buf, pub.Q.X.Bytes())
	writeField(&buf, pub.Q.Y.Bytes())
	writeField(&buf, []byte(pub.Curve.Name))
	return pem.EncodeToMemory(&pem.Block{Type: publicKeyType, Bytes: buf.Bytes()})
}

// DecodePublicKey parses an "SPG PUBLIC KEY" PEM block back into a key.
func DecodePublicKey(data []byte) (*eckey.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != publicKeyType {
		return nil, spgerr.New(spgerr.BadParams, "not an %s block", publicKeyType)
	}

	r := bytes.NewReader(block.Bytes)
	xb, err := readField(r)
	if err != nil {
		return nil, err
	}
	yb, err := readField(r)
	if err != nil {
		return nil, err
	}
	nameb, err := readField(r)
	if err != nil {
		return nil, err
	}

	c, err := curve.Lookup(string(nameb))
	if err != nil {
		return nil, err
	}

	return &eckey.PublicKey{
		Q:     &curve.Point{X: bignum.FromBytes(xb), Y: bignum.FromBytes(yb)},
		Curve: c,
	}, nil
}

// EncodeSignature frames sig as an "SPG SIGNATURE" PEM block: R || S.
func EncodeSignature(sig *ecdsa.Signature) []byte {
	var buf bytes.Buffer
	writeField(&buf, sig.R.Bytes())
	writeField(&buf, sig.S.Bytes())
	return pem.EncodeToMemory(&pem.Block{Type: signatureType, Bytes: buf.Bytes()})
}

// DecodeSignature parses an "SPG SIGNATURE" PEM block back into a
// signature.
func DecodeSignature(data []byte) (*ecdsa.Signature, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != signatureType {
		return nil, spgerr.New(spgerr.BadParams, "not an %s block", signatureType)
	}

	r := bytes.NewReader(block.Bytes)
	rb, err := readField(r)
	if err != nil {
		return nil, err
	}
	sb, err := readField(r)
	if err != nil {
		return nil, err
	}

	return &ecdsa.Signature{R: bignum.FromBytes(rb), S: bignum.FromBytes(sb)}, nil
}
