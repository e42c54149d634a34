// Package symcipher wraps the symmetric ciphers available for file
// payload encryption behind a narrow interface (§4.H), replacing the
// source's function-pointer dispatch struct with a Go interface value.
package symcipher

import (
	"crypto/cipher"

	"github.com/tstruk/spg/internal/spgerr"
	"golang.org/x/crypto/blowfish"
)

// Cipher is a stream cipher session bound to a single key, used to
// encrypt or decrypt one file's payload in fixed-size chunks.
type Cipher interface {
	// Encrypt XOR-transforms src into dst in place using the next
	// portion of the keystream; len(dst) must be >= len(src).
	Encrypt(dst, src []byte)
	// Decrypt reverses Encrypt; for a CFB-mode stream the two are the
	// same operation run against complementary keystreams.
	Decrypt(dst, src []byte)
	// IV returns the initialization vector this session was built with.
	IV() []byte
}

// List returns the names of the registered symmetric ciphers, in
// registration order, backing the list_sym_ciphers command (§6).
func List() []string {
	return []string{"Blowfish", "AES"}
}

type blowfishCFB struct {
	enc cipher.Stream
	dec cipher.Stream
	iv  []byte
}

// NewBlowfishCFB64 builds a fresh Blowfish session in 64-bit CFB mode
// (the cipher named "Blowfish" in List), returning independent
// encrypt/decrypt stream objects so a single key can drive both
// directions. A nil iv defaults to the all-zero IV the file-crypto
// pipeline uses (§4.H: "initial IV = 0, byte-offset counter = 0") --
// the envelope carries no IV field, so encrypt and decrypt must agree
// on this fixed value without exchanging it.
func NewBlowfishCFB64(key, iv []byte) (Cipher, error) {
	block, err := blowfish.NewCipher(key)
	if err != nil {
		return nil, spgerr.New(spgerr.EncryptionFailed, "init blowfish: %v", err)
	}
	if iv == nil {
		iv = make([]byte, blowfish.BlockSize)
	}
	if len(iv) != blowfish.BlockSize {
		return nil, spgerr.New(spgerr.BadParams, "iv must be %d bytes, got %d", blowfish.BlockSize, len(iv))
	}

	encBlock, err := blowfish.NewCipher(key)
	if err != nil {
		return nil, spgerr.New(spgerr.EncryptionFailed, "init blowfish: %v", err)
	}
	return &blowfishCFB{
		enc: cipher.NewCFBEncrypter(encBlock, iv),
		dec: cipher.NewCFBDecrypter(block, iv),
		iv:  iv,
	}, nil
}

func (b *blowfishCFB) Encrypt(dst, src []byte) { b.enc.XORKeyStream(dst, src) }
func (b *blowfishCFB) Decrypt(dst, src []byte) { b.dec.XORKeyStream(dst, src) }
func (b *blowfishCFB) IV() []byte              { return b.iv }

// NewByName constructs a Cipher for the named algorithm. Only "Blowfish"
// is implemented; "AES" is registered (it shows up in List/
// list_sym_ciphers) but returns NotImplemented, matching the source's
// runtime table that carries unfinished providers (§4.H "Non-goal: no
// AES implementation").
func NewByName(name string, key, iv []byte) (Cipher, error) {
	switch name {
	case "Blowfish":
		return NewBlowfishCFB64(key, iv)
	case "AES":
		return nil, spgerr.New(spgerr.NotImplemented, "cipher %q is registered but not implemented", name)
	default:
		return nil, spgerr.New(spgerr.BadParams, "unknown cipher %q, known ciphers: %v", name, List())
	}
}
