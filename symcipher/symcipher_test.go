package symcipher

import (
	"bytes"
	"testing"
)

func TestBlowfishEncryptDecryptRoundTrip(t *testing.T) {
	key := []byte("sixteen byte key")
	enc, err := NewBlowfishCFB64(key, nil)
	if err != nil {
		t.Fatalf("NewBlowfishCFB64: %v", err)
	}

	plain := []byte("the quick brown fox jumps over the lazy dog, twice over")
	cipherText := make([]byte, len(plain))
	enc.Encrypt(cipherText, plain)

	dec, err := NewBlowfishCFB64(key, enc.IV())
	if err != nil {
		t.Fatalf("NewBlowfishCFB64: %v", err)
	}
	recovered := make([]byte, len(cipherText))
	dec.Decrypt(recovered, cipherText)

	if !bytes.Equal(plain, recovered) {
		t.Fatalf("round trip mismatch: got %q, want %q", recovered, plain)
	}
}

func TestBlowfishRejectsShortIV(t *testing.T) {
	if _, err := NewBlowfishCFB64([]byte("key"), []byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for short IV")
	}
}

func TestListIncludesBlowfishAndAES(t *testing.T) {
	names := List()
	if len(names) != 2 || names[0] != "Blowfish" || names[1] != "AES" {
		t.Fatalf("got %v, want [Blowfish AES]", names)
	}
}

func TestNewByNameAESNotImplemented(t *testing.T) {
	if _, err := NewByName("AES", []byte("key"), nil); err == nil {
		t.Fatal("expected NotImplemented error for AES")
	}
}

func TestNewByNameUnknown(t *testing.T) {
	if _, err := NewByName("rot13", []byte("key"), nil); err == nil {
		t.Fatal("expected error for unknown cipher")
	}
}
