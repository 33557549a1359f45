// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressFromString(t *testing.T) {
	require := require.New(t)

	const s = "02e7e4e1a7d6d3ec16a6e33bd7a24f06eff1b6a31e"
	addr, err := AddressFromString(s)
	require.NoError(err)
	require.Equal(s, addr.String())
	require.Equal(PublicContractAddress, addr.Type())
	require.True(addr.IsContract())

	withPrefix, err := AddressFromString("0x" + s)
	require.NoError(err)
	require.Equal(addr, withPrefix)

	_, err = AddressFromString("02e7")
	require.ErrorIs(err, errWrongAddressLen)
}

func TestAddressRoutingKey(t *testing.T) {
	require := require.New(t)

	var addr Address
	addr[17], addr[18], addr[19], addr[20] = 0xff, 0xff, 0xff, 0xfe
	require.Equal(int32(-2), addr.RoutingKey())

	addr[17], addr[18], addr[19], addr[20] = 0x00, 0x00, 0x01, 0x00
	require.Equal(int32(256), addr.RoutingKey())
}

func TestAddressJSON(t *testing.T) {
	require := require.New(t)

	type holder struct {
		Address Address `json:"address"`
		ID      ID      `json:"identifier"`
	}
	original := holder{
		Address: Address{0x00, 1, 2, 3},
		ID:      ID{0xaa, 0xbb},
	}
	b, err := json.Marshal(original)
	require.NoError(err)
	require.JSONEq(`{
		"address": "000102030000000000000000000000000000000000",
		"identifier": "aabb000000000000000000000000000000000000000000000000000000000000"
	}`, string(b))

	var decoded holder
	require.NoError(json.Unmarshal(b, &decoded))
	require.Equal(original, decoded)
}

func TestAccountFromPublicKey(t *testing.T) {
	require := require.New(t)

	addr := AccountFromPublicKey([]byte{0x04, 1, 2, 3})
	require.Equal(AccountAddress, addr.Type())
	require.False(addr.IsContract())
	require.Equal("ACCOUNT", addr.Type().String())
}

func TestToID(t *testing.T) {
	_, err := ToID(make([]byte, 31))
	require.ErrorIs(t, err, errWrongIDLen)
}
