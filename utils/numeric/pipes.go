// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package numeric

import "github.com/shopspring/decimal"

// Scale converts a raw on-chain integer amount into token units:
// v / 10^decimals.
func Scale(v decimal.Decimal, decimals int32) decimal.Decimal {
	return v.Shift(-decimals)
}

// Unscale converts token units into the raw on-chain integer amount:
// trunc(v * 10^decimals).
func Unscale(v decimal.Decimal, decimals int32) decimal.Decimal {
	return v.Shift(decimals).Truncate(0)
}

// ScaleValue wraps [v] and scales it by [decimals].
func ScaleValue(v any, decimals int32) (decimal.Decimal, error) {
	d, err := Wrap(v)
	if err != nil {
		return decimal.Zero, err
	}
	return Scale(d, decimals), nil
}

// MulFloor multiplies [v] by [multiplier] and rounds toward negative
// infinity.
func MulFloor(v, multiplier decimal.Decimal) decimal.Decimal {
	return v.Mul(multiplier).Floor()
}
