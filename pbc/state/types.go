// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state decodes the serialized state of sharded chain contracts and
// reads the AVL trees that live next to it.
package state

import "fmt"

// Kind is the shape of a serialized value.
type Kind uint8

const (
	U8 Kind = iota
	U16
	U32
	U64
	U128
	U256
	I8
	I16
	I32
	I64
	I128
	Bool
	String
	Address
	Hash
	PublicKey
	Signature
	BlsPublicKey
	BlsSignature
	Vec
	Map
	Set
	ByteArray
	Option
	Struct
	Enum
	AvlTreeMap
)

var kindNames = [...]string{
	U8:           "u8",
	U16:          "u16",
	U32:          "u32",
	U64:          "u64",
	U128:         "u128",
	U256:         "u256",
	I8:           "i8",
	I16:          "i16",
	I32:          "i32",
	I64:          "i64",
	I128:         "i128",
	Bool:         "bool",
	String:       "String",
	Address:      "Address",
	Hash:         "Hash",
	PublicKey:    "PublicKey",
	Signature:    "Signature",
	BlsPublicKey: "BlsPublicKey",
	BlsSignature: "BlsSignature",
	Vec:          "Vec",
	Map:          "Map",
	Set:          "Set",
	ByteArray:    "ByteArray",
	Option:       "Option",
	Struct:       "Struct",
	Enum:         "Enum",
	AvlTreeMap:   "AvlTreeMap",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// size returns the encoded size of fixed size kinds, or 0.
func (k Kind) size() int {
	switch k {
	case U8, I8, Bool:
		return 1
	case U16, I16:
		return 2
	case U32, I32:
		return 4
	case U64, I64:
		return 8
	case U128, I128:
		return 16
	case U256, Hash:
		return 32
	case Address:
		return 21
	case PublicKey:
		return 33
	case Signature:
		return 65
	case BlsPublicKey:
		return 96
	case BlsSignature:
		return 48
	default:
		return 0
	}
}

// TypeSpec describes how a value is serialized.
type TypeSpec struct {
	Kind Kind
	// Elem is the element of a Vec, Set or Option.
	Elem *TypeSpec
	// Key and Value are the entries of a Map or an AvlTreeMap.
	Key   *TypeSpec
	Value *TypeSpec
	// Length of a ByteArray.
	Length int
	// Named is the definition of a Struct or an Enum.
	Named *NamedType
}

func (t *TypeSpec) String() string {
	switch t.Kind {
	case Vec, Set, Option:
		return fmt.Sprintf("%s<%s>", t.Kind, t.Elem)
	case Map, AvlTreeMap:
		return fmt.Sprintf("%s<%s, %s>", t.Kind, t.Key, t.Value)
	case ByteArray:
		return fmt.Sprintf("[u8; %d]", t.Length)
	case Struct, Enum:
		return t.Named.Name
	default:
		return t.Kind.String()
	}
}

// IsNamed returns true for struct and enum types.
func (t *TypeSpec) IsNamed() bool {
	return t.Kind == Struct || t.Kind == Enum
}

type Field struct {
	Name string
	Type *TypeSpec
}

type Variant struct {
	Discriminant uint8
	Def          *NamedType
}

// NamedType is a struct, with Fields, or an enum, with Variants. Every
// variant of an enum is itself a struct.
type NamedType struct {
	Name     string
	Fields   []Field
	Variants []Variant
}

func (n *NamedType) variant(discriminant uint8) (*NamedType, bool) {
	for _, v := range n.Variants {
		if v.Discriminant == discriminant {
			return v.Def, true
		}
	}
	return nil, false
}

// Simple returns the spec of a kind that takes no parameters.
func Simple(kind Kind) *TypeSpec {
	return &TypeSpec{Kind: kind}
}

func VecOf(elem *TypeSpec) *TypeSpec {
	return &TypeSpec{Kind: Vec, Elem: elem}
}

func SetOf(elem *TypeSpec) *TypeSpec {
	return &TypeSpec{Kind: Set, Elem: elem}
}

func OptionOf(elem *TypeSpec) *TypeSpec {
	return &TypeSpec{Kind: Option, Elem: elem}
}

func MapOf(key, value *TypeSpec) *TypeSpec {
	return &TypeSpec{Kind: Map, Key: key, Value: value}
}

func AvlTreeOf(key, value *TypeSpec) *TypeSpec {
	return &TypeSpec{Kind: AvlTreeMap, Key: key, Value: value}
}

func ByteArrayOf(length int) *TypeSpec {
	return &TypeSpec{Kind: ByteArray, Length: length}
}

func StructOf(name string, fields ...Field) *TypeSpec {
	return &TypeSpec{
		Kind: Struct,
		Named: &NamedType{
			Name:   name,
			Fields: fields,
		},
	}
}

func EnumOf(name string, variants ...Variant) *TypeSpec {
	return &TypeSpec{
		Kind: Enum,
		Named: &NamedType{
			Name:     name,
			Variants: variants,
		},
	}
}
