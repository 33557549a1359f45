// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

// Decoded values use the following Go types:
//
//	u8, u16, u32, u64       uint8, uint16, uint32, uint64
//	i8, i16, i32, i64       int8, int16, int32, int64
//	u128, i128, u256        *big.Int
//	bool, String            bool, string
//	Address, Hash           ids.Address, ids.ID
//	keys, signatures        []byte
//	ByteArray               []byte
//	Vec, Set                []any
//	Map                     []MapEntry
//	Option                  nil or the value
//	Struct                  *StructValue
//	Enum                    *EnumValue
//	AvlTreeMap              AvlTreeID

type MapEntry struct {
	Key   any
	Value any
}

type FieldValue struct {
	Name  string
	Value any
}

type StructValue struct {
	Name   string
	Fields []FieldValue
}

// Get returns the value of the field called [name].
func (s *StructValue) Get(name string) (any, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

type EnumValue struct {
	Discriminant uint8
	Variant      *StructValue
}

// AvlTreeID references a tree stored outside of the serialized state.
type AvlTreeID int32
