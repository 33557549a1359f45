// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"

	"github.com/ava-labs/chainsdk/evm/txpipeline"
)

// Method is a state changing function.
type Method struct {
	function
}

func (m *Method) Payable() bool {
	return m.method.IsPayable()
}

// Intent returns the not yet submitted call of the method on [addr].
// Encoding errors surface when the intent is consumed.
func (m *Method) Intent(addr common.Address, args Args, options ...txpipeline.IntentOption) *txpipeline.Intent {
	args = maps.Clone(args)
	return txpipeline.NewIntent(addr, func(common.Address) ([]byte, error) {
		return m.Pack(args)
	}, options...)
}

// EstimateGas returns the raw gas estimate of calling the method from
// [from].
func (m *Method) EstimateGas(
	ctx context.Context,
	reader txpipeline.Reader,
	addr common.Address,
	args Args,
	from common.Address,
	options ...txpipeline.IntentOption,
) (decimal.Decimal, error) {
	return m.Intent(addr, args, options...).EstimateGas(ctx, reader, from)
}
