// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package erc20 is a typed client of ERC-20 tokens built on the generic
// contract facade.
package erc20

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/ava-labs/chainsdk/chains"
	"github.com/ava-labs/chainsdk/evm/batch"
	"github.com/ava-labs/chainsdk/evm/contract"
	"github.com/ava-labs/chainsdk/evm/txpipeline"
	"github.com/ava-labs/chainsdk/utils/logging"
	"github.com/ava-labs/chainsdk/utils/numeric"
)

const ABI = `[
	{"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"transferFrom","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
]`

var errUnexpectedOutput = errors.New("unexpected output")

// Token exposes the ERC-20 functions of any token contract. Every function
// is resolved when the Token is created.
type Token struct {
	contract *contract.Contract

	name        *contract.View
	symbol      *contract.View
	decimals    *contract.View
	totalSupply *contract.View
	balanceOf   *contract.View
	allowance   *contract.View

	transfer     *contract.Method
	approve      *contract.Method
	transferFrom *contract.Method
}

func New(clients contract.Clients, log logging.Logger) (*Token, error) {
	c, err := contract.New([]byte(ABI), clients, log)
	if err != nil {
		return nil, err
	}

	t := &Token{contract: c}
	for name, view := range map[string]**contract.View{
		"name":        &t.name,
		"symbol":      &t.symbol,
		"decimals":    &t.decimals,
		"totalSupply": &t.totalSupply,
		"balanceOf":   &t.balanceOf,
		"allowance":   &t.allowance,
	} {
		if *view, err = c.View(name); err != nil {
			return nil, err
		}
	}
	for name, method := range map[string]**contract.Method{
		"transfer":     &t.transfer,
		"approve":      &t.approve,
		"transferFrom": &t.transferFrom,
	} {
		if *method, err = c.Method(name); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Token) Contract() *contract.Contract {
	return t.contract
}

func (t *Token) Name(ctx context.Context, chain *chains.Descriptor, token common.Address) (string, error) {
	values, err := t.call(ctx, chain, token, t.name, nil)
	if err != nil {
		return "", err
	}
	return asString(values)
}

func (t *Token) Symbol(ctx context.Context, chain *chains.Descriptor, token common.Address) (string, error) {
	values, err := t.call(ctx, chain, token, t.symbol, nil)
	if err != nil {
		return "", err
	}
	return asString(values)
}

func (t *Token) Decimals(ctx context.Context, chain *chains.Descriptor, token common.Address) (uint8, error) {
	values, err := t.call(ctx, chain, token, t.decimals, nil)
	if err != nil {
		return 0, err
	}
	return asUint8(values)
}

func (t *Token) TotalSupply(ctx context.Context, chain *chains.Descriptor, token common.Address) (decimal.Decimal, error) {
	values, err := t.call(ctx, chain, token, t.totalSupply, nil)
	if err != nil {
		return decimal.Zero, err
	}
	return asDecimal(values)
}

func (t *Token) BalanceOf(ctx context.Context, chain *chains.Descriptor, token, account common.Address) (decimal.Decimal, error) {
	values, err := t.call(ctx, chain, token, t.balanceOf, contract.Args{"account": account})
	if err != nil {
		return decimal.Zero, err
	}
	return asDecimal(values)
}

func (t *Token) Allowance(ctx context.Context, chain *chains.Descriptor, token, owner, spender common.Address) (decimal.Decimal, error) {
	values, err := t.call(ctx, chain, token, t.allowance, contract.Args{
		"owner":   owner,
		"spender": spender,
	})
	if err != nil {
		return decimal.Zero, err
	}
	return asDecimal(values)
}

func (t *Token) call(
	ctx context.Context,
	chain *chains.Descriptor,
	token common.Address,
	view *contract.View,
	args contract.Args,
) ([]interface{}, error) {
	return t.contract.Call(ctx, chain, token, view.Name(), args)
}

// BatchDecimals queues the decimals lookup of [token] on [req].
func (t *Token) BatchDecimals(
	req *batch.Request,
	token common.Address,
	onSuccess func(ctx context.Context, decimals uint8) error,
	onError batch.ErrorFunc,
) error {
	_, err := t.decimals.Batch(req, token, nil, func(ctx context.Context, values []interface{}) error {
		decimals, err := asUint8(values)
		if err != nil {
			return err
		}
		return onSuccess(ctx, decimals)
	}, onError)
	return err
}

// BatchBalanceOf queues the balance lookup of [account] on [req].
func (t *Token) BatchBalanceOf(
	req *batch.Request,
	token common.Address,
	account common.Address,
	onSuccess func(ctx context.Context, balance decimal.Decimal) error,
	onError batch.ErrorFunc,
) error {
	_, err := t.balanceOf.Batch(req, token, contract.Args{"account": account}, func(ctx context.Context, values []interface{}) error {
		balance, err := asDecimal(values)
		if err != nil {
			return err
		}
		return onSuccess(ctx, balance)
	}, onError)
	return err
}

// Transfer sends [amount] base units of [token] to [to].
func (t *Token) Transfer(token, to common.Address, amount decimal.Decimal, options ...txpipeline.IntentOption) *txpipeline.Intent {
	return t.transfer.Intent(token, contract.Args{
		"to":     to,
		"amount": amount,
	}, options...)
}

func (t *Token) Approve(token, spender common.Address, amount decimal.Decimal, options ...txpipeline.IntentOption) *txpipeline.Intent {
	return t.approve.Intent(token, contract.Args{
		"spender": spender,
		"amount":  amount,
	}, options...)
}

func (t *Token) TransferFrom(token, from, to common.Address, amount decimal.Decimal, options ...txpipeline.IntentOption) *txpipeline.Intent {
	return t.transferFrom.Intent(token, contract.Args{
		"from":   from,
		"to":     to,
		"amount": amount,
	}, options...)
}

func asString(values []interface{}) (string, error) {
	if len(values) != 1 {
		return "", fmt.Errorf("%w: %d values", errUnexpectedOutput, len(values))
	}
	s, ok := values[0].(string)
	if !ok {
		return "", fmt.Errorf("%w: %T", errUnexpectedOutput, values[0])
	}
	return s, nil
}

func asUint8(values []interface{}) (uint8, error) {
	if len(values) != 1 {
		return 0, fmt.Errorf("%w: %d values", errUnexpectedOutput, len(values))
	}
	v, ok := values[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("%w: %T", errUnexpectedOutput, values[0])
	}
	return v, nil
}

func asDecimal(values []interface{}) (decimal.Decimal, error) {
	if len(values) != 1 {
		return decimal.Zero, fmt.Errorf("%w: %d values", errUnexpectedOutput, len(values))
	}
	return numeric.Wrap(values[0])
}
