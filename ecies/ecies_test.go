package ecies

import (
	"bytes"
	"testing"

	"github.com/tstruk/spg/eckey"
)

func TestEncryptionDecryptionKeysMatch(t *testing.T) {
	priv, err := eckey.GenerateKey("secp256r1", nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	enc, err := GenerateEncryptionKey(priv.Pub)
	if err != nil {
		t.Fatalf("GenerateEncryptionKey: %v", err)
	}

	dec, err := GenerateDecryptionKey(priv, enc.R)
	if err != nil {
		t.Fatalf("GenerateDecryptionKey: %v", err)
	}

	if !bytes.Equal(enc.K1, dec.K1) {
		t.Fatal("K1 halves disagree between sender and receiver")
	}
	if !bytes.Equal(enc.K2, dec.K2) {
		t.Fatal("K2 halves disagree between sender and receiver")
	}
}

func TestEncryptionKeyVariesPerCall(t *testing.T) {
	priv, _ := eckey.GenerateKey("secp256r1", nil)

	a, err := GenerateEncryptionKey(priv.Pub)
	if err != nil {
		t.Fatalf("GenerateEncryptionKey: %v", err)
	}
	b, err := GenerateEncryptionKey(priv.Pub)
	if err != nil {
		t.Fatalf("GenerateEncryptionKey: %v", err)
	}

	if bytes.Equal(a.K1, b.K1) {
		t.Fatal("two independent ECIES runs produced the same cipher key")
	}
}

func TestDecryptionKeyDiffersForWrongRecipient(t *testing.T) {
	priv, _ := eckey.GenerateKey("secp256r1", nil)
	other, _ := eckey.GenerateKey("secp256r1", nil)

	enc, err := GenerateEncryptionKey(priv.Pub)
	if err != nil {
		t.Fatalf("GenerateEncryptionKey: %v", err)
	}

	dec, err := GenerateDecryptionKey(other, enc.R)
	if err != nil {
		t.Fatalf("GenerateDecryptionKey: %v", err)
	}

	if bytes.Equal(enc.K1, dec.K1) {
		t.Fatal("wrong recipient derived the same cipher key")
	}
}
