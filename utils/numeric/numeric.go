// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package numeric normalizes the numeric values returned by chain clients
// into a single arbitrary-precision decimal type.
package numeric

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

var (
	ErrUnsupportedType = errors.New("unsupported numeric type")
	ErrNotInteger      = errors.New("value is not an integer")
	ErrNegative        = errors.New("value is negative")
)

// Wrap converts [v] into a decimal. Strings may be base 10 (with an optional
// fractional part) or 0x-prefixed hex.
func Wrap(v any) (decimal.Decimal, error) {
	switch v := v.(type) {
	case decimal.Decimal:
		return v, nil
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, fmt.Errorf("%w: nil *decimal.Decimal", ErrUnsupportedType)
		}
		return *v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int8:
		return decimal.NewFromInt(int64(v)), nil
	case int16:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(v)), 0), nil
	case uint8:
		return decimal.NewFromInt(int64(v)), nil
	case uint16:
		return decimal.NewFromInt(int64(v)), nil
	case uint32:
		return decimal.NewFromInt(int64(v)), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case *big.Int:
		if v == nil {
			return decimal.Zero, fmt.Errorf("%w: nil *big.Int", ErrUnsupportedType)
		}
		return decimal.NewFromBigInt(v, 0), nil
	case big.Int:
		return decimal.NewFromBigInt(&v, 0), nil
	case *hexutil.Big:
		if v == nil {
			return decimal.Zero, fmt.Errorf("%w: nil *hexutil.Big", ErrUnsupportedType)
		}
		return decimal.NewFromBigInt(v.ToInt(), 0), nil
	case *uint256.Int:
		if v == nil {
			return decimal.Zero, fmt.Errorf("%w: nil *uint256.Int", ErrUnsupportedType)
		}
		return decimal.NewFromBigInt(v.ToBig(), 0), nil
	case string:
		return parseString(v)
	case fmt.Stringer:
		return parseString(v.String())
	default:
		return decimal.Zero, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// MustWrap is Wrap for values known to be numeric. It panics on error.
func MustWrap(v any) decimal.Decimal {
	d, err := Wrap(v)
	if err != nil {
		panic(err)
	}
	return d
}

func parseString(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if hex := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"); hex != s {
		i, ok := new(big.Int).SetString(hex, 16)
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: invalid hex %q", ErrUnsupportedType, s)
		}
		return decimal.NewFromBigInt(i, 0), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", ErrUnsupportedType, err)
	}
	return d, nil
}

// ToBigInt returns the canonical integer wire form of [d]. Fractional values
// are rejected rather than silently truncated.
func ToBigInt(d decimal.Decimal) (*big.Int, error) {
	if !d.IsInteger() {
		return nil, fmt.Errorf("%w: %s", ErrNotInteger, d)
	}
	return d.BigInt(), nil
}

// ToUint64 is ToBigInt restricted to non-negative values that fit in 64 bits.
func ToUint64(d decimal.Decimal) (uint64, error) {
	i, err := ToBigInt(d)
	if err != nil {
		return 0, err
	}
	if i.Sign() < 0 {
		return 0, fmt.Errorf("%w: %s", ErrNegative, d)
	}
	if !i.IsUint64() {
		return 0, fmt.Errorf("%s overflows uint64", d)
	}
	return i.Uint64(), nil
}
