package fileenc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tstruk/spg/eckey"
)

func writeTempFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	priv, err := eckey.GenerateKey("secp256r1", nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	dir := t.TempDir()
	plain := []byte("a message spanning more than a single thousand-byte chunk: ")
	for len(plain) < 3000 {
		plain = append(plain, plain...)
	}
	plainPath := writeTempFile(t, dir, "plain.txt", plain)
	cipherPath := filepath.Join(dir, "plain.txt.spg")
	outPath := filepath.Join(dir, "recovered.txt")

	if err := Encrypt(priv.Pub, plainPath, cipherPath); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if err := Decrypt(priv, cipherPath, outPath); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read recovered file: %v", err)
	}
	if string(got) != string(plain) {
		t.Fatal("round trip produced different plaintext")
	}
}

func TestEncryptOutputLengthMatchesHeaderPlusPayload(t *testing.T) {
	priv, err := eckey.GenerateKey("secp160r2", nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	dir := t.TempDir()
	plain := make([]byte, 3000)
	for i := range plain {
		plain[i] = byte(i)
	}
	plainPath := writeTempFile(t, dir, "plain.bin", plain)
	cipherPath := filepath.Join(dir, "plain.bin.spg")

	if err := Encrypt(priv.Pub, plainPath, cipherPath); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	cipherBytes, err := os.ReadFile(cipherPath)
	if err != nil {
		t.Fatalf("read ciphertext: %v", err)
	}
	lenRx := int(cipherBytes[0])
	lenRy := int(cipherBytes[1+lenRx])
	want := 1 + lenRx + 1 + lenRy + len(plain) + 20
	if len(cipherBytes) != want {
		t.Fatalf("output length = %d, want %d (1+%d+1+%d+%d+20)", len(cipherBytes), want, lenRx, lenRy, len(plain))
	}
}

func TestDecryptRejectsTamperedTag(t *testing.T) {
	priv, _ := eckey.GenerateKey("secp256r1", nil)
	dir := t.TempDir()
	plainPath := writeTempFile(t, dir, "plain.txt", []byte("small message"))
	cipherPath := filepath.Join(dir, "plain.txt.spg")
	outPath := filepath.Join(dir, "recovered.txt")

	if err := Encrypt(priv.Pub, plainPath, cipherPath); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	data, err := os.ReadFile(cipherPath)
	if err != nil {
		t.Fatalf("read ciphertext: %v", err)
	}
	data[len(data)-1] ^= 0xFF
	if err := os.WriteFile(cipherPath, data, 0600); err != nil {
		t.Fatalf("rewrite ciphertext: %v", err)
	}

	if err := Decrypt(priv, cipherPath, outPath); err == nil {
		t.Fatal("expected decryption to fail on a tampered tag")
	}
	if _, err := os.Stat(outPath); err == nil {
		t.Fatal("partial output file was left behind after a failed decryption")
	}
}

func TestDecryptRejectsWrongKey(t *testing.T) {
	priv, _ := eckey.GenerateKey("secp256r1", nil)
	other, _ := eckey.GenerateKey("secp256r1", nil)
	dir := t.TempDir()
	plainPath := writeTempFile(t, dir, "plain.txt", []byte("small message"))
	cipherPath := filepath.Join(dir, "plain.txt.spg")
	outPath := filepath.Join(dir, "recovered.txt")

	if err := Encrypt(priv.Pub, plainPath, cipherPath); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if err := Decrypt(other, cipherPath, outPath); err == nil {
		t.Fatal("expected decryption to fail under the wrong private key")
	}
	if _, err := os.Stat(outPath); err == nil {
		t.Fatal("partial output file was left behind after a failed decryption")
	}
}
