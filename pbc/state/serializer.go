// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ava-labs/chainsdk/ids"
	"github.com/ava-labs/chainsdk/utils/numeric"
)

var (
	errOutOfRange   = errors.New("integer out of range")
	errWrongType    = errors.New("wrong value type")
	errWrongLength  = errors.New("wrong length")
	errMissingField = errors.New("missing field")
)

// Encode serializes [v] as a value of type [spec]. It accepts the types
// produced by Decode. Integers may also be given as anything the numeric
// package can wrap, and byte strings as hex.
func Encode(spec *TypeSpec, v any) ([]byte, error) {
	w := &writer{}
	if err := w.write(spec, v, 0); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

type writer struct {
	buf bytes.Buffer
}

func (w *writer) length(n int) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(n))
	w.buf.Write(b[:])
}

func (w *writer) write(spec *TypeSpec, v any, depth int) error {
	if spec == nil {
		return errMissingSpec
	}
	if depth > maxNesting {
		return errTooNested
	}

	switch spec.Kind {
	case U8, U16, U32, U64, I8, I16, I32, I64, U128, I128, U256:
		return w.writeInt(spec.Kind, v)
	case Bool:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("%w: expected bool but got %T", errWrongType, v)
		}
		if b {
			w.buf.WriteByte(1)
		} else {
			w.buf.WriteByte(0)
		}
		return nil
	case String:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: expected string but got %T", errWrongType, v)
		}
		w.length(len(s))
		w.buf.WriteString(s)
		return nil
	case Address:
		var addr ids.Address
		switch a := v.(type) {
		case ids.Address:
			addr = a
		case string:
			parsed, err := ids.AddressFromString(a)
			if err != nil {
				return err
			}
			addr = parsed
		default:
			return fmt.Errorf("%w: expected address but got %T", errWrongType, v)
		}
		w.buf.Write(addr[:])
		return nil
	case Hash:
		var id ids.ID
		switch h := v.(type) {
		case ids.ID:
			id = h
		case string:
			parsed, err := ids.FromString(h)
			if err != nil {
				return err
			}
			id = parsed
		default:
			return fmt.Errorf("%w: expected hash but got %T", errWrongType, v)
		}
		w.buf.Write(id[:])
		return nil
	case PublicKey, Signature, BlsPublicKey, BlsSignature:
		return w.writeFixed(spec.Kind.size(), v)
	case ByteArray:
		return w.writeFixed(spec.Length, v)
	case Vec, Set:
		values, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%w: expected list but got %T", errWrongType, v)
		}
		w.length(len(values))
		for _, value := range values {
			if err := w.write(spec.Elem, value, depth+1); err != nil {
				return err
			}
		}
		return nil
	case Map:
		entries, ok := v.([]MapEntry)
		if !ok {
			return fmt.Errorf("%w: expected map entries but got %T", errWrongType, v)
		}
		w.length(len(entries))
		for _, entry := range entries {
			if err := w.write(spec.Key, entry.Key, depth+1); err != nil {
				return err
			}
			if err := w.write(spec.Value, entry.Value, depth+1); err != nil {
				return err
			}
		}
		return nil
	case Option:
		if v == nil {
			w.buf.WriteByte(0)
			return nil
		}
		w.buf.WriteByte(1)
		return w.write(spec.Elem, v, depth+1)
	case Struct:
		s, ok := v.(*StructValue)
		if !ok || spec.Named == nil {
			return fmt.Errorf("%w: expected struct but got %T", errWrongType, v)
		}
		return w.writeStruct(spec.Named, s, depth)
	case Enum:
		e, ok := v.(*EnumValue)
		if !ok || spec.Named == nil {
			return fmt.Errorf("%w: expected enum but got %T", errWrongType, v)
		}
		def, ok := spec.Named.variant(e.Discriminant)
		if !ok {
			return fmt.Errorf("%w: %d for %s", errUnknownDiscriminant, e.Discriminant, spec.Named.Name)
		}
		w.buf.WriteByte(e.Discriminant)
		return w.writeStruct(def, e.Variant, depth)
	case AvlTreeMap:
		id, ok := v.(AvlTreeID)
		if !ok {
			return fmt.Errorf("%w: expected tree id but got %T", errWrongType, v)
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(id))
		w.buf.Write(b[:])
		return nil
	default:
		return fmt.Errorf("%w: %d", errUnknownKind, spec.Kind)
	}
}

func (w *writer) writeStruct(def *NamedType, s *StructValue, depth int) error {
	if s == nil {
		return fmt.Errorf("%w: nil %s", errWrongType, def.Name)
	}
	for _, field := range def.Fields {
		v, ok := s.Get(field.Name)
		if !ok {
			return fmt.Errorf("%w: %s.%s", errMissingField, def.Name, field.Name)
		}
		if err := w.write(field.Type, v, depth+1); err != nil {
			return fmt.Errorf("%s.%s: %w", def.Name, field.Name, err)
		}
	}
	return nil
}

func (w *writer) writeFixed(n int, v any) error {
	var b []byte
	switch t := v.(type) {
	case []byte:
		b = t
	case string:
		decoded, err := hexToBytes(t)
		if err != nil {
			return err
		}
		b = decoded
	default:
		return fmt.Errorf("%w: expected bytes but got %T", errWrongType, v)
	}
	if len(b) != n {
		return fmt.Errorf("%w: expected %d bytes but got %d", errWrongLength, n, len(b))
	}
	w.buf.Write(b)
	return nil
}

func (w *writer) writeInt(kind Kind, v any) error {
	d, err := numeric.Wrap(v)
	if err != nil {
		return err
	}
	n, err := numeric.ToBigInt(d)
	if err != nil {
		return err
	}

	size := kind.size()
	bits := uint(size * 8)
	lo, hi := new(big.Int), new(big.Int).Lsh(big.NewInt(1), bits)
	if isSigned(kind) {
		half := new(big.Int).Lsh(big.NewInt(1), bits-1)
		lo.Neg(half)
		hi = half
	}
	if n.Cmp(lo) < 0 || n.Cmp(hi) >= 0 {
		return fmt.Errorf("%w: %s does not fit in %s", errOutOfRange, n, kind)
	}

	// two's complement
	if n.Sign() < 0 {
		n = new(big.Int).Add(n, new(big.Int).Lsh(big.NewInt(1), bits))
	}
	be := n.FillBytes(make([]byte, size))
	for i := len(be) - 1; i >= 0; i-- {
		w.buf.WriteByte(be[i])
	}
	return nil
}

func isSigned(kind Kind) bool {
	switch kind {
	case I8, I16, I32, I64, I128:
		return true
	default:
		return false
	}
}

func hexToBytes(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}
