package bignum

import (
	"bytes"
	"testing"
)

func TestFromHexRoundTrip(t *testing.T) {
	n, err := FromHex("DB7C2ABF62E35E668076BEAD208B")
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}
	want := []byte{0xDB, 0x7C, 0x2A, 0xBF, 0x62, 0xE3, 0x5E, 0x66, 0x80, 0x76, 0xBE, 0xAD, 0x20, 0x8B}
	if !bytes.Equal(n.Bytes(), want) {
		t.Fatalf("Bytes() = % X, want % X", n.Bytes(), want)
	}
}

func TestFromHexInvalid(t *testing.T) {
	if _, err := FromHex("not-hex"); err == nil {
		t.Fatal("expected error for invalid hex")
	}
}

func TestAddSubMulMod(t *testing.T) {
	p := FromInt64(17)
	a := FromInt64(10)
	b := FromInt64(12)

	sum := NewInt().AddMod(a, b, p)
	if sum.Cmp(FromInt64(5)) != 0 {
		t.Fatalf("AddMod = %s, want 5", sum.Text())
	}

	diff := NewInt().SubMod(a, b, p)
	if diff.Cmp(FromInt64(15)) != 0 {
		t.Fatalf("SubMod = %s, want 15", diff.Text())
	}

	prod := NewInt().MulMod(a, b, p)
	if prod.Cmp(FromInt64(1)) != 0 {
		t.Fatalf("MulMod = %s, want 1", prod.Text())
	}
}

func TestInvert(t *testing.T) {
	p := FromInt64(17)
	a := FromInt64(5)
	inv, err := NewInt().Invert(a, p)
	if err != nil {
		t.Fatalf("Invert: %v", err)
	}
	prod := NewInt().MulMod(a, inv, p)
	if prod.Cmp(FromInt64(1)) != 0 {
		t.Fatalf("a * a^-1 mod p = %s, want 1", prod.Text())
	}
}

func TestInvertNotInvertible(t *testing.T) {
	p := FromInt64(10)
	zero := FromInt64(0)
	if _, err := NewInt().Invert(zero, p); err == nil {
		t.Fatal("expected error inverting zero")
	}
}

func TestBitOps(t *testing.T) {
	n := FromInt64(0b10110)
	if n.Bit(1) != 1 || n.Bit(0) != 0 {
		t.Fatalf("Bit() mismatch for %s", n.Text())
	}
	n.ClearBit(1)
	if n.Cmp(FromInt64(0b10100)) != 0 {
		t.Fatalf("ClearBit result = %s", n.Text())
	}
	n2 := FromInt64(0b111111)
	n2.ClearAbove(2)
	if n2.Cmp(FromInt64(0b111)) != 0 {
		t.Fatalf("ClearAbove result = %s, want 0b111", n2.Text())
	}
}

func TestRandBitLength(t *testing.T) {
	n := NewInt()
	if err := n.Rand(160, nil); err != nil {
		t.Fatalf("Rand: %v", err)
	}
	if n.BitLen() > 160 {
		t.Fatalf("BitLen() = %d, want <= 160", n.BitLen())
	}
}

func TestRandRejectsNonPositiveBits(t *testing.T) {
	n := NewInt()
	if err := n.Rand(0, nil); err == nil {
		t.Fatal("expected error for zero bit length")
	}
}
