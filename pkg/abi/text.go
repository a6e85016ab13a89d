package abi

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errHexTooLong = errors.New("too many hex digits")
	errNoDigits   = errors.New("no hex digits")
	errWidth      = errors.New("wrong byte width")
	errPoint      = errors.New("want x:y")
)

// ParseValue reads the text form of a value of kind k:
//   - field elements: hex with optional 0x prefix, left padded to 32 bytes
//   - points: two field elements joined by ':'
//   - byte buffers: hex of any length, fixed buffers: hex of exact width
//   - booleans: strconv.ParseBool spellings
//   - unsigned-32: decimal
//   - vectors: elements joined by ',', the empty string is an empty vector
func ParseValue(k Kind, s string) (any, error) {
	if !k.Valid() {
		return nil, &InvalidKindError{Kind: k}
	}
	if !k.vector {
		return parseBase(k.base, s)
	}

	var parts []string
	if s = strings.TrimSpace(s); s != "" {
		parts = strings.Split(s, ",")
	}
	switch k.base {
	case BaseField:
		return parseElems[Fr](k.base, parts)
	case BaseField2:
		return parseElems[Fq](k.base, parts)
	case BasePoint:
		return parseElems[Point](k.base, parts)
	case BaseBytes:
		return parseElems[[]byte](k.base, parts)
	case BaseBuffer32:
		return parseElems[Buffer32](k.base, parts)
	case BaseBuffer128:
		return parseElems[Buffer128](k.base, parts)
	case BaseBool:
		return parseElems[bool](k.base, parts)
	case BaseUint32:
		return parseElems[uint32](k.base, parts)
	}
	return nil, &InvalidKindError{Kind: k}
}

func parseElems[T any](b Base, parts []string) (any, error) {
	items := make([]T, 0, len(parts))
	for _, part := range parts {
		v, err := parseBase(b, part)
		if err != nil {
			return nil, err
		}
		items = append(items, v.(T))
	}
	return items, nil
}

func parseBase(b Base, s string) (any, error) {
	k := KindOf(b)
	s = strings.TrimSpace(s)
	fail := func(err error) (any, error) {
		return nil, &ParseError{Kind: k, Input: s, Err: err}
	}

	switch b {
	case BaseField:
		var f Fr
		if err := parseField(f[:], s); err != nil {
			return fail(err)
		}
		return f, nil
	case BaseField2:
		var f Fq
		if err := parseField(f[:], s); err != nil {
			return fail(err)
		}
		return f, nil
	case BasePoint:
		x, y, ok := strings.Cut(s, ":")
		if !ok {
			return fail(errPoint)
		}
		var p Point
		if err := parseField(p.X[:], x); err != nil {
			return fail(err)
		}
		if err := parseField(p.Y[:], y); err != nil {
			return fail(err)
		}
		return p, nil
	case BaseBytes:
		p, err := hex.DecodeString(trimHex(s))
		if err != nil {
			return fail(err)
		}
		return p, nil
	case BaseBuffer32:
		var x Buffer32
		if err := parseExact(x[:], s); err != nil {
			return fail(err)
		}
		return x, nil
	case BaseBuffer128:
		var x Buffer128
		if err := parseExact(x[:], s); err != nil {
			return fail(err)
		}
		return x, nil
	case BaseBool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return fail(err)
		}
		return v, nil
	case BaseUint32:
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return fail(err)
		}
		return uint32(v), nil
	}
	return nil, &InvalidKindError{Kind: k}
}

func trimHex(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}

func parseField(dst []byte, s string) error {
	digits := trimHex(s)
	if digits == "" {
		return errNoDigits
	}
	if len(digits) > 2*len(dst) {
		return errHexTooLong
	}
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	p, err := hex.DecodeString(digits)
	if err != nil {
		return err
	}
	copy(dst[len(dst)-len(p):], p)
	return nil
}

func parseExact(dst []byte, s string) error {
	p, err := hex.DecodeString(trimHex(s))
	if err != nil {
		return err
	}
	if len(p) != len(dst) {
		return fmt.Errorf("%w: got %d bytes, want %d", errWidth, len(p), len(dst))
	}
	copy(dst, p)
	return nil
}

// FormatValue renders v in the text form ParseValue accepts.
func FormatValue(k Kind, v any) (string, error) {
	if !k.Valid() {
		return "", &InvalidKindError{Kind: k}
	}
	if !k.vector {
		return formatBase(k.base, v)
	}

	var parts []string
	var err error
	switch k.base {
	case BaseField:
		parts, err = formatElems[Fr](k.base, v)
	case BaseField2:
		parts, err = formatElems[Fq](k.base, v)
	case BasePoint:
		parts, err = formatElems[Point](k.base, v)
	case BaseBytes:
		parts, err = formatElems[[]byte](k.base, v)
	case BaseBuffer32:
		parts, err = formatElems[Buffer32](k.base, v)
	case BaseBuffer128:
		parts, err = formatElems[Buffer128](k.base, v)
	case BaseBool:
		parts, err = formatElems[bool](k.base, v)
	case BaseUint32:
		parts, err = formatElems[uint32](k.base, v)
	}
	if err != nil {
		return "", err
	}
	return strings.Join(parts, ","), nil
}

func formatElems[T any](b Base, v any) ([]string, error) {
	items, ok := v.([]T)
	if !ok {
		return nil, &TypeMismatchError{Kind: VectorOf(KindOf(b)), Value: v}
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		s, err := formatBase(b, item)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return parts, nil
}

func formatBase(b Base, v any) (string, error) {
	switch x := v.(type) {
	case Fr:
		if b == BaseField {
			return x.String(), nil
		}
	case Fq:
		if b == BaseField2 {
			return x.String(), nil
		}
	case Point:
		if b == BasePoint {
			return x.String(), nil
		}
	case []byte:
		if b == BaseBytes {
			return "0x" + hex.EncodeToString(x), nil
		}
	case Buffer32:
		if b == BaseBuffer32 {
			return x.String(), nil
		}
	case Buffer128:
		if b == BaseBuffer128 {
			return x.String(), nil
		}
	case bool:
		if b == BaseBool {
			return strconv.FormatBool(x), nil
		}
	case uint32:
		if b == BaseUint32 {
			return strconv.FormatUint(uint64(x), 10), nil
		}
	}
	return "", &TypeMismatchError{Kind: KindOf(b), Value: v}
}
