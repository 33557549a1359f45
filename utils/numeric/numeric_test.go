// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package numeric

import (
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	maxUint256, ok := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	require.True(t, ok)

	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "int", input: 42, expected: "42"},
		{name: "negative int64", input: int64(-7), expected: "-7"},
		{name: "uint64 max", input: uint64(math.MaxUint64), expected: "18446744073709551615"},
		{name: "uint8", input: uint8(18), expected: "18"},
		{name: "big.Int", input: maxUint256, expected: maxUint256.String()},
		{name: "uint256", input: uint256.NewInt(1_000_000), expected: "1000000"},
		{name: "hexutil.Big", input: (*hexutil.Big)(big.NewInt(255)), expected: "255"},
		{name: "decimal string", input: "1.15", expected: "1.15"},
		{name: "hex string", input: "0x1bc16d674ec80000", expected: "2000000000000000000"},
		{name: "float", input: 0.5, expected: "0.5"},
		{name: "decimal", input: decimal.New(15, -1), expected: "1.5"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := Wrap(test.input)
			require.NoError(t, err)
			require.Equal(t, test.expected, d.String())
		})
	}
}

func TestWrapRejectsUnknownTypes(t *testing.T) {
	require := require.New(t)

	_, err := Wrap(struct{}{})
	require.ErrorIs(err, ErrUnsupportedType)

	_, err = Wrap("twelve")
	require.ErrorIs(err, ErrUnsupportedType)

	_, err = Wrap("0xzz")
	require.ErrorIs(err, ErrUnsupportedType)

	var nilBig *big.Int
	_, err = Wrap(nilBig)
	require.ErrorIs(err, ErrUnsupportedType)
}

func TestToBigInt(t *testing.T) {
	require := require.New(t)

	i, err := ToBigInt(decimal.RequireFromString("1000000000000000000000"))
	require.NoError(err)
	require.Equal("1000000000000000000000", i.String())

	_, err = ToBigInt(decimal.RequireFromString("1.5"))
	require.ErrorIs(err, ErrNotInteger)

	u, err := ToUint64(decimal.NewFromInt(21000))
	require.NoError(err)
	require.Equal(uint64(21000), u)

	_, err = ToUint64(decimal.NewFromInt(-1))
	require.ErrorIs(err, ErrNegative)
}

func TestScalePipes(t *testing.T) {
	require := require.New(t)

	raw := decimal.RequireFromString("1234500000000000000")
	scaled := Scale(raw, 18)
	require.Equal("1.2345", scaled.String())
	require.True(raw.Equal(Unscale(scaled, 18)))

	// Sub-unit precision is dropped when converting back to raw units.
	require.Equal("1", Unscale(decimal.RequireFromString("0.0000019"), 6).String())

	s, err := ScaleValue(big.NewInt(2_500_000), 6)
	require.NoError(err)
	require.Equal("2.5", s.String())
}

func TestMulFloor(t *testing.T) {
	require := require.New(t)

	multiplier := decimal.NewFromFloat(1.15)
	require.Equal("115000", MulFloor(decimal.NewFromInt(100000), multiplier).String())
	require.Equal("24150", MulFloor(decimal.NewFromInt(21000), multiplier).String())
	require.Equal("38332", MulFloor(decimal.NewFromInt(33333), multiplier).String())
}
