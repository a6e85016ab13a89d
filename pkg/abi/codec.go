package abi

import (
	"encoding/binary"
	"math"
)

// Encode serializes v according to the wire rule of k.
func Encode(k Kind, v any) ([]byte, error) {
	return AppendEncode(nil, k, v)
}

// AppendEncode appends the encoding of v to dst. The Go type of v must be
// exactly the host type of k; nothing is coerced.
func AppendEncode(dst []byte, k Kind, v any) ([]byte, error) {
	if !k.Valid() {
		return nil, &InvalidKindError{Kind: k}
	}
	if k.vector {
		return appendVector(dst, k.base, v)
	}
	return appendBase(dst, k.base, v)
}

func appendBase(dst []byte, b Base, v any) ([]byte, error) {
	mismatch := &TypeMismatchError{Kind: KindOf(b), Value: v}

	switch b {
	case BaseField:
		x, ok := v.(Fr)
		if !ok {
			return nil, mismatch
		}
		return append(dst, x[:]...), nil
	case BaseField2:
		x, ok := v.(Fq)
		if !ok {
			return nil, mismatch
		}
		return append(dst, x[:]...), nil
	case BasePoint:
		p, ok := v.(Point)
		if !ok {
			return nil, mismatch
		}
		dst = append(dst, p.X[:]...)
		return append(dst, p.Y[:]...), nil
	case BaseBytes:
		p, ok := v.([]byte)
		if !ok {
			return nil, mismatch
		}
		if uint64(len(p)) > math.MaxUint32 {
			return nil, &TooLargeError{Kind: KindBytes, Length: len(p)}
		}
		dst = binary.BigEndian.AppendUint32(dst, uint32(len(p)))
		return append(dst, p...), nil
	case BaseBuffer32:
		x, ok := v.(Buffer32)
		if !ok {
			return nil, mismatch
		}
		return append(dst, x[:]...), nil
	case BaseBuffer128:
		x, ok := v.(Buffer128)
		if !ok {
			return nil, mismatch
		}
		return append(dst, x[:]...), nil
	case BaseBool:
		x, ok := v.(bool)
		if !ok {
			return nil, mismatch
		}
		if x {
			return append(dst, 1), nil
		}
		return append(dst, 0), nil
	case BaseUint32:
		x, ok := v.(uint32)
		if !ok {
			return nil, mismatch
		}
		return binary.BigEndian.AppendUint32(dst, x), nil
	}
	return nil, &InvalidKindError{Kind: KindOf(b)}
}

func appendVector(dst []byte, b Base, v any) ([]byte, error) {
	switch b {
	case BaseField:
		return appendElems[Fr](dst, b, v)
	case BaseField2:
		return appendElems[Fq](dst, b, v)
	case BasePoint:
		return appendElems[Point](dst, b, v)
	case BaseBytes:
		return appendElems[[]byte](dst, b, v)
	case BaseBuffer32:
		return appendElems[Buffer32](dst, b, v)
	case BaseBuffer128:
		return appendElems[Buffer128](dst, b, v)
	case BaseBool:
		return appendElems[bool](dst, b, v)
	case BaseUint32:
		return appendElems[uint32](dst, b, v)
	}
	return nil, &InvalidKindError{Kind: VectorOf(KindOf(b))}
}

func appendElems[T any](dst []byte, b Base, v any) ([]byte, error) {
	k := VectorOf(KindOf(b))
	items, ok := v.([]T)
	if !ok {
		return nil, &TypeMismatchError{Kind: k, Value: v}
	}
	if uint64(len(items)) > math.MaxUint32 {
		return nil, &TooLargeError{Kind: k, Length: len(items)}
	}

	dst = binary.BigEndian.AppendUint32(dst, uint32(len(items)))
	var err error
	for _, item := range items {
		if dst, err = appendBase(dst, b, item); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// Decoder reads consecutive values from a byte buffer, consuming exactly the
// width each kind declares.
type Decoder struct {
	buf []byte
	off int
}

// NewDecoder returns a decoder positioned at the start of buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int { return d.off }

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.buf) - d.off }

// Finish fails with *TrailingBytesError if unread bytes remain.
func (d *Decoder) Finish() error {
	if n := d.Remaining(); n > 0 {
		return &TrailingBytesError{Count: n}
	}
	return nil
}

// Decode reads one value of kind k. The returned value has the host type of k.
func (d *Decoder) Decode(k Kind) (any, error) {
	if !k.Valid() {
		return nil, &InvalidKindError{Kind: k}
	}
	if k.vector {
		return d.decodeVector(k.base)
	}
	return d.decodeBase(k.base)
}

// Decode reads exactly one value of kind k from buf.
func Decode(k Kind, buf []byte) (any, error) {
	d := NewDecoder(buf)
	v, err := d.Decode(k)
	if err != nil {
		return nil, err
	}
	if err := d.Finish(); err != nil {
		return nil, err
	}
	return v, nil
}

func (d *Decoder) take(k Kind, n int) ([]byte, error) {
	if n > d.Remaining() {
		return nil, &ShortBufferError{Kind: k, Offset: d.off, Need: n, Have: d.Remaining()}
	}
	p := d.buf[d.off : d.off+n]
	d.off += n
	return p, nil
}

func (d *Decoder) length(k Kind) (uint32, error) {
	p, err := d.take(k, LengthPrefixSize)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

func (d *Decoder) decodeBase(b Base) (any, error) {
	k := KindOf(b)

	switch b {
	case BaseField:
		p, err := d.take(k, FieldSize)
		if err != nil {
			return nil, err
		}
		var x Fr
		copy(x[:], p)
		return x, nil
	case BaseField2:
		p, err := d.take(k, FieldSize)
		if err != nil {
			return nil, err
		}
		var x Fq
		copy(x[:], p)
		return x, nil
	case BasePoint:
		p, err := d.take(k, PointSize)
		if err != nil {
			return nil, err
		}
		var x Point
		copy(x.X[:], p[:FieldSize])
		copy(x.Y[:], p[FieldSize:])
		return x, nil
	case BaseBytes:
		start := d.off
		n, err := d.length(k)
		if err != nil {
			return nil, err
		}
		if uint64(n) > uint64(d.Remaining()) {
			return nil, &OverrunError{Kind: k, Offset: start, Length: n, Have: d.Remaining()}
		}
		p, _ := d.take(k, int(n))
		out := make([]byte, n)
		copy(out, p)
		return out, nil
	case BaseBuffer32:
		p, err := d.take(k, 32)
		if err != nil {
			return nil, err
		}
		var x Buffer32
		copy(x[:], p)
		return x, nil
	case BaseBuffer128:
		p, err := d.take(k, 128)
		if err != nil {
			return nil, err
		}
		var x Buffer128
		copy(x[:], p)
		return x, nil
	case BaseBool:
		p, err := d.take(k, 1)
		if err != nil {
			return nil, err
		}
		return p[0] != 0, nil
	case BaseUint32:
		p, err := d.take(k, 4)
		if err != nil {
			return nil, err
		}
		return binary.BigEndian.Uint32(p), nil
	}
	return nil, &InvalidKindError{Kind: k}
}

func (d *Decoder) decodeVector(b Base) (any, error) {
	switch b {
	case BaseField:
		return decodeElems[Fr](d, b)
	case BaseField2:
		return decodeElems[Fq](d, b)
	case BasePoint:
		return decodeElems[Point](d, b)
	case BaseBytes:
		return decodeElems[[]byte](d, b)
	case BaseBuffer32:
		return decodeElems[Buffer32](d, b)
	case BaseBuffer128:
		return decodeElems[Buffer128](d, b)
	case BaseBool:
		return decodeElems[bool](d, b)
	case BaseUint32:
		return decodeElems[uint32](d, b)
	}
	return nil, &InvalidKindError{Kind: VectorOf(KindOf(b))}
}

func decodeElems[T any](d *Decoder, b Base) (any, error) {
	k := VectorOf(KindOf(b))
	start := d.off
	n, err := d.length(k)
	if err != nil {
		return nil, err
	}
	// Reject counts that cannot fit before allocating for them.
	if uint64(n)*uint64(b.minWidth()) > uint64(d.Remaining()) {
		return nil, &OverrunError{Kind: k, Offset: start, Length: n, Have: d.Remaining()}
	}

	items := make([]T, 0, n)
	for i := uint32(0); i < n; i++ {
		v, err := d.decodeBase(b)
		if err != nil {
			return nil, err
		}
		items = append(items, v.(T))
	}
	return items, nil
}

// Peeker reads n bytes at off from some backing store, reporting false when
// the range is out of bounds.
type Peeker func(off, n uint32) ([]byte, bool)

// Span returns the total encoded size of the value of kind k that starts at
// offset 0 of peek, following length prefixes as needed. The payload itself
// is not read for fixed-width elements.
func Span(k Kind, peek Peeker) (uint32, error) {
	if !k.Valid() {
		return 0, &InvalidKindError{Kind: k}
	}
	n, err := spanAt(k, peek, 0)
	if err != nil {
		return 0, err
	}
	if n > math.MaxUint32 {
		return 0, &TooLargeError{Kind: k, Length: int(min(n, math.MaxInt))}
	}
	return uint32(n), nil
}

func spanAt(k Kind, peek Peeker, off uint64) (uint64, error) {
	if !k.vector {
		return spanBase(k.base, peek, off)
	}

	count, err := peekLength(k, peek, off)
	if err != nil {
		return 0, err
	}
	if bases[k.base].layout == LayoutFixed {
		return LengthPrefixSize + uint64(count)*uint64(bases[k.base].width), nil
	}

	pos := off + LengthPrefixSize
	for i := uint32(0); i < count; i++ {
		n, err := spanBase(k.base, peek, pos)
		if err != nil {
			return 0, err
		}
		pos += n
	}
	return pos - off, nil
}

func spanBase(b Base, peek Peeker, off uint64) (uint64, error) {
	if bases[b].layout == LayoutFixed {
		return uint64(bases[b].width), nil
	}
	n, err := peekLength(KindOf(b), peek, off)
	if err != nil {
		return 0, err
	}
	return LengthPrefixSize + uint64(n), nil
}

func peekLength(k Kind, peek Peeker, off uint64) (uint32, error) {
	if off+LengthPrefixSize > math.MaxUint32 {
		return 0, &ShortBufferError{Kind: k, Offset: int(min(off, math.MaxInt)), Need: LengthPrefixSize}
	}
	p, ok := peek(uint32(off), LengthPrefixSize)
	if !ok || len(p) < LengthPrefixSize {
		return 0, &ShortBufferError{Kind: k, Offset: int(off), Need: LengthPrefixSize, Have: len(p)}
	}
	return binary.BigEndian.Uint32(p), nil
}
