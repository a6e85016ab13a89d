package abi

import (
	"encoding/hex"
	"math/big"
)

const (
	// FieldSize is the encoded width of a field element.
	FieldSize = 32
	// PointSize is the encoded width of an affine curve point.
	PointSize = 2 * FieldSize
)

// Fr is an element of the scalar field, stored as 32 big-endian bytes.
//
// Values are passed through unchanged; no reduction or range check against
// the field modulus is performed on the host side.
type Fr [FieldSize]byte

// Fq is an element of the second (base) field, stored as 32 big-endian bytes.
// Like Fr it is not range checked.
type Fq [FieldSize]byte

// Point is an affine curve point.
type Point struct {
	X Fr
	Y Fr
}

// Buffer32 is an opaque 32-byte value such as a hash or a signature half.
type Buffer32 [32]byte

// Buffer128 is an opaque 128-byte value such as a multisig public key.
type Buffer128 [128]byte

// FrFromUint64 returns v as a field element.
func FrFromUint64(v uint64) Fr {
	var f Fr
	new(big.Int).SetUint64(v).FillBytes(f[:])
	return f
}

// FrFromBig encodes v big-endian. It fails for negative values and values
// wider than 256 bits.
func FrFromBig(v *big.Int) (Fr, error) {
	var f Fr
	if err := fillField(f[:], v); err != nil {
		return Fr{}, err
	}
	return f, nil
}

// Big returns f as an integer.
func (f Fr) Big() *big.Int { return new(big.Int).SetBytes(f[:]) }

func (f Fr) String() string { return "0x" + hex.EncodeToString(f[:]) }

// FqFromBig encodes v big-endian with the same limits as FrFromBig.
func FqFromBig(v *big.Int) (Fq, error) {
	var f Fq
	if err := fillField(f[:], v); err != nil {
		return Fq{}, err
	}
	return f, nil
}

// Big returns f as an integer.
func (f Fq) Big() *big.Int { return new(big.Int).SetBytes(f[:]) }

func (f Fq) String() string { return "0x" + hex.EncodeToString(f[:]) }

func (b Buffer32) String() string { return "0x" + hex.EncodeToString(b[:]) }

func (b Buffer128) String() string { return "0x" + hex.EncodeToString(b[:]) }

func (p Point) String() string { return p.X.String() + ":" + p.Y.String() }

func fillField(dst []byte, v *big.Int) error {
	if v == nil || v.Sign() < 0 || v.BitLen() > 8*FieldSize {
		return &FieldRangeError{Value: v}
	}
	v.FillBytes(dst)
	return nil
}
