// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tx

import "encoding/json"

const (
	// GasPerByte is charged for every byte a transaction carries over the
	// network.
	GasPerByte = 5

	marginNumerator   = 125
	marginDenominator = 100
)

// NetworkCost is the gas charged for sending [size] bytes.
func NetworkCost(size int) uint64 {
	return uint64(size) * GasPerByte
}

// DataNetworkCost is the network cost of the JSON encoding of [values].
func DataNetworkCost(values ...any) (uint64, error) {
	size := 0
	for _, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return 0, err
		}
		size += len(b)
	}
	return NetworkCost(size), nil
}

// WithMargin adds a 25% safety margin to [gas], rounding down.
func WithMargin(gas uint64) uint64 {
	return gas * marginNumerator / marginDenominator
}
