// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpipeline

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/ava-labs/chainsdk/chains"
	"github.com/ava-labs/chainsdk/utils/numeric"
)

var (
	errIntentConsumed = errors.New("intent already consumed")
	errMissingData    = errors.New("intent has no calldata builder")
)

// DataFunc produces the calldata of a transaction sent by [from].
type DataFunc func(from common.Address) ([]byte, error)

type IntentOption func(*Intent)

// WithValidation runs [f] before anything is sent. An error aborts the
// submission.
func WithValidation(f func(ctx context.Context) error) IntentOption {
	return func(i *Intent) {
		i.validate = f
	}
}

// WithValue attaches native currency, in wei, to the transaction.
func WithValue(f func(ctx context.Context) (decimal.Decimal, error)) IntentOption {
	return func(i *Intent) {
		i.value = f
	}
}

// WithGas skips gas estimation and uses the amount returned by [f]. The
// pipeline multiplier is still applied.
func WithGas(f func(ctx context.Context) (decimal.Decimal, error)) IntentOption {
	return func(i *Intent) {
		i.gas = f
	}
}

// Intent is a state changing contract call that has not been sent yet. An
// Intent is consumed by the first call to GetData or Pipeline.Execute.
type Intent struct {
	to       common.Address
	data     DataFunc
	validate func(ctx context.Context) error
	value    func(ctx context.Context) (decimal.Decimal, error)
	gas      func(ctx context.Context) (decimal.Decimal, error)

	consumed atomic.Bool
}

func NewIntent(to common.Address, data DataFunc, options ...IntentOption) *Intent {
	i := &Intent{
		to:   to,
		data: data,
	}
	for _, option := range options {
		option(i)
	}
	return i
}

func (i *Intent) To() common.Address {
	return i.to
}

func (i *Intent) consume() error {
	if !i.consumed.CompareAndSwap(false, true) {
		return errIntentConsumed
	}
	return nil
}

// GetData returns the calldata as if it were sent from the empty address.
func (i *Intent) GetData() ([]byte, error) {
	if err := i.consume(); err != nil {
		return nil, err
	}
	return i.buildData(chains.EmptyAddress)
}

func (i *Intent) buildData(from common.Address) ([]byte, error) {
	if i.data == nil {
		return nil, errMissingData
	}
	return i.data(from)
}

func (i *Intent) resolveValue(ctx context.Context) (decimal.Decimal, error) {
	if i.value == nil {
		return decimal.Zero, nil
	}
	return i.value(ctx)
}

// EstimateGas dry runs the intent from [from] and returns the raw estimate.
// It does not consume the intent.
func (i *Intent) EstimateGas(ctx context.Context, reader Reader, from common.Address) (decimal.Decimal, error) {
	value, err := i.resolveValue(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("couldn't resolve value: %w", err)
	}
	data, err := i.buildData(from)
	if err != nil {
		return decimal.Zero, fmt.Errorf("couldn't build calldata: %w", err)
	}
	return estimate(ctx, reader, from, i.to, data, value)
}

func estimate(
	ctx context.Context,
	reader Reader,
	from common.Address,
	to common.Address,
	data []byte,
	value decimal.Decimal,
) (decimal.Decimal, error) {
	wei, err := numeric.ToBigInt(value)
	if err != nil {
		return decimal.Zero, err
	}
	gas, err := reader.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: wei,
		Data:  data,
	})
	if err != nil {
		return decimal.Zero, err
	}
	return numeric.Wrap(gas)
}
