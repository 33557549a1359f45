// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/ava-labs/chainsdk/ids"
)

const (
	maxNesting = 128
	// maxEmptyElements bounds collections whose elements may encode to
	// zero bytes, since their length can't be checked against the input.
	maxEmptyElements = 1 << 16
)

var (
	ErrInsufficientLength = errors.New("insufficient length")

	errTrailingBytes       = errors.New("trailing bytes")
	errInvalidBool         = errors.New("invalid bool")
	errInvalidOption       = errors.New("invalid option flag")
	errInvalidString       = errors.New("string is not valid utf-8")
	errUnknownDiscriminant = errors.New("unknown enum discriminant")
	errUnknownKind         = errors.New("unknown kind")
	errMissingSpec         = errors.New("incomplete type spec")
	errTooNested           = errors.New("value is nested too deeply")
	errTooManyElements     = errors.New("too many elements")
)

// Decode deserializes [b] as a value of type [spec]. All of [b] must be
// consumed.
func Decode(spec *TypeSpec, b []byte) (any, error) {
	r := &reader{bytes: b}
	v, err := r.read(spec, 0)
	if err != nil {
		return nil, err
	}
	if remaining := len(r.bytes) - r.offset; remaining != 0 {
		return nil, fmt.Errorf("%w: %d bytes after %s", errTrailingBytes, remaining, spec)
	}
	return v, nil
}

// DecodeStruct is Decode for a struct type.
func DecodeStruct(spec *TypeSpec, b []byte) (*StructValue, error) {
	if spec.Kind != Struct {
		return nil, fmt.Errorf("%w: expected struct but got %s", errUnknownKind, spec)
	}
	v, err := Decode(spec, b)
	if err != nil {
		return nil, err
	}
	return v.(*StructValue), nil
}

// reader consumes little-endian encoded values.
type reader struct {
	bytes  []byte
	offset int

	// minimum encoded size of each struct seen so far
	structSizes map[*NamedType]int
}

func (r *reader) next(n int) ([]byte, error) {
	if n < 0 || len(r.bytes)-r.offset < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrInsufficientLength, n, r.offset, len(r.bytes)-r.offset)
	}
	b := r.bytes[r.offset : r.offset+n]
	r.offset += n
	return b, nil
}

func (r *reader) length() (int, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return int(binary.LittleEndian.Uint32(b)), nil
}

// count reads a collection length and checks that [n] elements of at least
// [elemSize] bytes each fit in the remaining input.
func (r *reader) count(elemSize int) (int, error) {
	n, err := r.length()
	if err != nil {
		return 0, err
	}
	remaining := len(r.bytes) - r.offset
	switch {
	case elemSize > 0 && n > remaining/elemSize:
		return 0, fmt.Errorf("%w: %d elements of at least %d bytes at offset %d, have %d", ErrInsufficientLength, n, elemSize, r.offset, remaining)
	case elemSize == 0 && n > maxEmptyElements:
		return 0, fmt.Errorf("%w: %d > %d", errTooManyElements, n, maxEmptyElements)
	}
	return n, nil
}

func (r *reader) read(spec *TypeSpec, depth int) (any, error) {
	if spec == nil {
		return nil, errMissingSpec
	}
	if depth > maxNesting {
		return nil, errTooNested
	}

	switch spec.Kind {
	case U8, U16, U32, U64, I8, I16, I32, I64, U128, I128, U256:
		b, err := r.next(spec.Kind.size())
		if err != nil {
			return nil, err
		}
		return decodeInt(spec.Kind, b), nil
	case Bool:
		b, err := r.next(1)
		if err != nil {
			return nil, err
		}
		switch b[0] {
		case 0:
			return false, nil
		case 1:
			return true, nil
		default:
			return nil, fmt.Errorf("%w: %d", errInvalidBool, b[0])
		}
	case String:
		n, err := r.length()
		if err != nil {
			return nil, err
		}
		b, err := r.next(n)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(b) {
			return nil, errInvalidString
		}
		return string(b), nil
	case Address:
		b, err := r.next(ids.AddressLen)
		if err != nil {
			return nil, err
		}
		return ids.ToAddress(b)
	case Hash:
		b, err := r.next(ids.IDLen)
		if err != nil {
			return nil, err
		}
		return ids.ToID(b)
	case PublicKey, Signature, BlsPublicKey, BlsSignature:
		return r.copyBytes(spec.Kind.size())
	case ByteArray:
		return r.copyBytes(spec.Length)
	case Vec, Set:
		n, err := r.count(r.minSize(spec.Elem, depth+1))
		if err != nil {
			return nil, err
		}
		values := make([]any, 0, min(n, len(r.bytes)-r.offset))
		for i := 0; i < n; i++ {
			v, err := r.read(spec.Elem, depth+1)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	case Map:
		n, err := r.count(r.minSize(spec.Key, depth+1) + r.minSize(spec.Value, depth+1))
		if err != nil {
			return nil, err
		}
		entries := make([]MapEntry, 0, min(n, len(r.bytes)-r.offset))
		for i := 0; i < n; i++ {
			k, err := r.read(spec.Key, depth+1)
			if err != nil {
				return nil, err
			}
			v, err := r.read(spec.Value, depth+1)
			if err != nil {
				return nil, err
			}
			entries = append(entries, MapEntry{Key: k, Value: v})
		}
		return entries, nil
	case Option:
		b, err := r.next(1)
		if err != nil {
			return nil, err
		}
		switch b[0] {
		case 0:
			return nil, nil
		case 1:
			return r.read(spec.Elem, depth+1)
		default:
			return nil, fmt.Errorf("%w: %d", errInvalidOption, b[0])
		}
	case Struct:
		if spec.Named == nil {
			return nil, errMissingSpec
		}
		return r.readStruct(spec.Named, depth)
	case Enum:
		if spec.Named == nil {
			return nil, errMissingSpec
		}
		b, err := r.next(1)
		if err != nil {
			return nil, err
		}
		def, ok := spec.Named.variant(b[0])
		if !ok {
			return nil, fmt.Errorf("%w: %d for %s", errUnknownDiscriminant, b[0], spec.Named.Name)
		}
		variant, err := r.readStruct(def, depth)
		if err != nil {
			return nil, err
		}
		return &EnumValue{
			Discriminant: b[0],
			Variant:      variant,
		}, nil
	case AvlTreeMap:
		b, err := r.next(4)
		if err != nil {
			return nil, err
		}
		return AvlTreeID(int32(binary.LittleEndian.Uint32(b))), nil
	default:
		return nil, fmt.Errorf("%w: %d", errUnknownKind, spec.Kind)
	}
}

// minSize is the fewest bytes a value of [spec] encodes to.
func (r *reader) minSize(spec *TypeSpec, depth int) int {
	if spec == nil || depth > maxNesting {
		return 0
	}
	switch spec.Kind {
	case String, Vec, Set, Map, AvlTreeMap:
		return 4
	case Option, Enum:
		return 1
	case ByteArray:
		return max(spec.Length, 0)
	case Struct:
		if spec.Named == nil {
			return 0
		}
		if size, ok := r.structSizes[spec.Named]; ok {
			return size
		}
		size := 0
		for _, field := range spec.Named.Fields {
			size += r.minSize(field.Type, depth+1)
		}
		if r.structSizes == nil {
			r.structSizes = make(map[*NamedType]int)
		}
		r.structSizes[spec.Named] = size
		return size
	default:
		return spec.Kind.size()
	}
}

func (r *reader) readStruct(def *NamedType, depth int) (*StructValue, error) {
	s := &StructValue{
		Name:   def.Name,
		Fields: make([]FieldValue, len(def.Fields)),
	}
	for i, field := range def.Fields {
		v, err := r.read(field.Type, depth+1)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", def.Name, field.Name, err)
		}
		s.Fields[i] = FieldValue{
			Name:  field.Name,
			Value: v,
		}
	}
	return s, nil
}

func (r *reader) copyBytes(n int) ([]byte, error) {
	b, err := r.next(n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

func decodeInt(kind Kind, b []byte) any {
	switch kind {
	case U8:
		return b[0]
	case I8:
		return int8(b[0])
	case U16:
		return binary.LittleEndian.Uint16(b)
	case I16:
		return int16(binary.LittleEndian.Uint16(b))
	case U32:
		return binary.LittleEndian.Uint32(b)
	case I32:
		return int32(binary.LittleEndian.Uint32(b))
	case U64:
		return binary.LittleEndian.Uint64(b)
	case I64:
		return int64(binary.LittleEndian.Uint64(b))
	}

	// wide integers
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	n := new(big.Int).SetBytes(be)
	if kind == I128 && be[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	return n
}
