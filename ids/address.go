// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/chainsdk/utils/hashing"
)

const AddressLen = 21

var (
	errWrongAddressLen = errors.New("wrong address length")

	// EmptyAddress is a useful all zero value
	EmptyAddress = Address{}
)

// AddressType is the leading byte of an Address.
type AddressType byte

const (
	AccountAddress        AddressType = 0x00
	SystemContractAddress AddressType = 0x01
	PublicContractAddress AddressType = 0x02
	ZKContractAddress     AddressType = 0x03
	GovernanceAddress     AddressType = 0x04
)

func (t AddressType) String() string {
	switch t {
	case AccountAddress:
		return "ACCOUNT"
	case SystemContractAddress:
		return "CONTRACT_SYSTEM"
	case PublicContractAddress:
		return "CONTRACT_PUBLIC"
	case ZKContractAddress:
		return "CONTRACT_ZK"
	case GovernanceAddress:
		return "CONTRACT_GOV"
	default:
		return "UNKNOWN"
	}
}

// Address identifies an account or a contract on a sharded chain. The first
// byte is the AddressType, the remaining 20 bytes are a hash.
type Address [AddressLen]byte

// ToAddress attempts to convert a byte slice into an address
func ToAddress(b []byte) (Address, error) {
	var addr Address
	if len(b) != AddressLen {
		return addr, fmt.Errorf("%w: expected %d bytes but got %d", errWrongAddressLen, AddressLen, len(b))
	}
	copy(addr[:], b)
	return addr, nil
}

// AddressFromString parses a hex encoded address, with or without the 0x
// prefix.
func AddressFromString(s string) (Address, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return Address{}, err
	}
	return ToAddress(b)
}

// AccountFromPublicKey derives the account address of an uncompressed
// secp256k1 public key.
func AccountFromPublicKey(uncompressed []byte) Address {
	hash := hashing.ComputeHash256Array(uncompressed)
	var addr Address
	addr[0] = byte(AccountAddress)
	copy(addr[1:], hash[12:])
	return addr
}

func (a Address) Type() AddressType {
	return AddressType(a[0])
}

func (a Address) IsContract() bool {
	return a.Type() != AccountAddress
}

// RoutingKey is the big-endian signed integer stored in the last four bytes
// of the address.
func (a Address) RoutingKey() int32 {
	return int32(binary.BigEndian.Uint32(a[17:]))
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := AddressFromString(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
