// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const IDLen = 32

var (
	errWrongIDLen = errors.New("wrong id length")

	// Empty is a useful all zero value
	Empty = ID{}
)

// ID is the 32 byte identifier of a transaction or an event.
type ID [IDLen]byte

// ToID attempt to convert a byte slice into an id
func ToID(b []byte) (ID, error) {
	var id ID
	if len(b) != IDLen {
		return id, fmt.Errorf("%w: expected %d bytes but got %d", errWrongIDLen, IDLen, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// FromString is the inverse of ID.String()
func FromString(s string) (ID, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return ID{}, err
	}
	return ToID(b)
}

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := FromString(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
