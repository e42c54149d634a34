// Package fileenc implements the file encryption/decryption pipeline:
// ECIES key agreement feeding a chunked symmetric cipher and a trailing
// HMAC tag (§4.H, §6).
package fileenc

import (
	"crypto/hmac"
	"crypto/sha1"
	"io"
	"os"

	"github.com/tstruk/spg/bignum"
	"github.com/tstruk/spg/curve"
	"github.com/tstruk/spg/eckey"
	"github.com/tstruk/spg/ecies"
	"github.com/tstruk/spg/internal/spgerr"
	"github.com/tstruk/spg/symcipher"
)

// chunkSize is the streaming block size used when reading the plaintext
// or ciphertext body (§6 "1024-byte chunks").
const chunkSize = 1024

// macSize is the length in bytes of the trailing HMAC-SHA1 tag.
const macSize = sha1.Size

// Encrypt reads plainPath, encrypts it under pub with a fresh ephemeral
// ECIES key, and writes the framed result to cipherPath (§6):
//
//	[len(Rx):1][Rx][len(Ry):1][Ry][ciphertext][HMAC-SHA1:20]
//
// The symmetric cipher runs CFB-64 with the all-zero IV (§4.H); it is
// not carried in the envelope. On any failure after the output file has
// been created, Encrypt removes
// the partial file before returning (the MAC_FINALIZE/CLEANUP states of
// §6's state machine).
func Encrypt(pub *eckey.PublicKey, plainPath, cipherPath string) (err error) {
	ek, err := ecies.GenerateEncryptionKey(pub)
	if err != nil {
		return err
	}

	in, err := os.Open(plainPath)
	if err != nil {
		return spgerr.New(spgerr.FAIL, "open plaintext: %v", err)
	}
	defer in.Close()

	out, err := os.OpenFile(cipherPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return spgerr.New(spgerr.FAIL, "create ciphertext: %v", err)
	}
	defer func() {
		out.Close()
		if err != nil {
			os.Remove(cipherPath)
		}
	}()

	sc, err := symcipher.NewBlowfishCFB64(ek.K1, nil)
	if err != nil {
		return err
	}

	if err = writeHeader(out, ek.R); err != nil {
		return err
	}

	mac := hmac.New(sha1.New, ek.K1)
	buf := make([]byte, chunkSize)
	ebuf := make([]byte, chunkSize)
	for {
		n, readErr := in.Read(buf)
		if n > 0 {
			sc.Encrypt(ebuf[:n], buf[:n])
			if _, werr := out.Write(ebuf[:n]); werr != nil {
				return spgerr.New(spgerr.EncryptionFailed, "write ciphertext: %v", werr)
			}
			mac.Write(ebuf[:n])
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return spgerr.New(spgerr.FAIL, "read plaintext: %v", readErr)
		}
	}

	if _, err = out.Write(mac.Sum(nil)); err != nil {
		return spgerr.New(spgerr.EncryptionFailed, "write mac: %v", err)
	}
	return nil
}

// Decrypt reads cipherPath, recovers the ECIES shared key from priv and
// the carried ephemeral point, verifies the trailing HMAC-SHA1 tag, and
// writes the recovered plaintext to outPath. A tampered tag or a wrong
// key both surface as DecryptionFailed, and any partially written output
// file is removed before returning.
func Decrypt(priv *eckey.PrivateKey, cipherPath, outPath string) (err error) {
	in, err := os.Open(cipherPath)
	if err != nil {
		return spgerr.New(spgerr.FAIL, "open ciphertext: %v", err)
	}
	defer in.Close()

	r, err := readHeader(in, priv.Pub.Curve)
	if err != nil {
		return err
	}

	ek, err := ecies.GenerateDecryptionKey(priv, r)
	if err != nil {
		return spgerr.New(spgerr.DecryptionFailed, "recover shared key: %v", err)
	}

	sc, err := symcipher.NewBlowfishCFB64(ek.K1, nil)
	if err != nil {
		return err
	}

	info, err := in.Stat()
	if err != nil {
		return spgerr.New(spgerr.FAIL, "stat ciphertext: %v", err)
	}
	headerLen, err := in.Seek(0, io.SeekCurrent)
	if err != nil {
		return spgerr.New(spgerr.FAIL, "seek ciphertext: %v", err)
	}
	bytesToDecrypt := info.Size() - headerLen - macSize
	if bytesToDecrypt < 0 {
		return spgerr.New(spgerr.DecryptionFailed, "ciphertext too short to contain a mac")
	}

	out, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return spgerr.New(spgerr.FAIL, "create plaintext: %v", err)
	}
	defer func() {
		out.Close()
		if err != nil {
			os.Remove(outPath)
		}
	}()

	mac := hmac.New(sha1.New, ek.K1)
	buf := make([]byte, chunkSize)
	pbuf := make([]byte, chunkSize)
	for remaining := bytesToDecrypt; remaining > 0; {
		n := chunkSize
		if int64(n) > remaining {
			n = int(remaining)
		}
		if _, rerr := io.ReadFull(in, buf[:n]); rerr != nil {
			return spgerr.New(spgerr.FAIL, "read ciphertext: %v", rerr)
		}
		mac.Write(buf[:n])
		sc.Decrypt(pbuf[:n], buf[:n])
		if _, werr := out.Write(pbuf[:n]); werr != nil {
			return spgerr.New(spgerr.FAIL, "write plaintext: %v", werr)
		}
		remaining -= int64(n)
	}

	var tag [macSize]byte
	if _, err = io.ReadFull(in, tag[:]); err != nil {
		return spgerr.New(spgerr.DecryptionFailed, "read mac: %v", err)
	}
	if !hmac.Equal(mac.Sum(nil), tag[:]) {
		return spgerr.New(spgerr.DecryptionFailed, "mac mismatch")
	}
	return nil
}

// writeHeader writes the [len][bytes] pairs for R.X and R.Y, each length
// prefixed by a single unsigned byte (§6).
func writeHeader(w io.Writer, r *curve.Point) error {
	for _, field := range [][]byte{r.X.Bytes(), r.Y.Bytes()} {
		if len(field) > 255 {
			return spgerr.New(spgerr.EncryptionFailed, "header field too long: %d bytes", len(field))
		}
		if _, err := w.Write([]byte{byte(len(field))}); err != nil {
			return spgerr.New(spgerr.EncryptionFailed, "write header: %v", err)
		}
		if _, err := w.Write(field); err != nil {
			return spgerr.New(spgerr.EncryptionFailed, "write header: %v", err)
		}
	}
	return nil
}

// readHeader reads back the ephemeral point written by writeHeader,
// reconstructing R against c.
func readHeader(r io.Reader, c *curve.Params) (*curve.Point, error) {
	readField := func() ([]byte, error) {
		var lenBuf [1]byte
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return nil, spgerr.New(spgerr.DecryptionFailed, "read header length: %v", err)
		}
		buf := make([]byte, lenBuf[0])
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, spgerr.New(spgerr.DecryptionFailed, "read header field: %v", err)
		}
		return buf, nil
	}

	xb, err := readField()
	if err != nil {
		return nil, err
	}
	yb, err := readField()
	if err != nil {
		return nil, err
	}

	point := &curve.Point{X: bignum.FromBytes(xb), Y: bignum.FromBytes(yb)}
	if !c.OnCurve(point) {
		return nil, spgerr.New(spgerr.DecryptionFailed, "ephemeral point is not on curve %s", c.Name)
	}
	return point, nil
}
