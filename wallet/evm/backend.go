// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package evm implements the wallets used to submit transactions to EVM
// chains.
package evm

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"

	"github.com/ava-labs/chainsdk/evm/txpipeline"
	"github.com/ava-labs/chainsdk/utils/numeric"
)

// Backend is the node connection of a wallet. *ethclient.Client implements
// it.
type Backend interface {
	txpipeline.Reader

	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// balance caches the native balance of an account.
type balance struct {
	lock  sync.RWMutex
	value decimal.Decimal
}

func (b *balance) get() decimal.Decimal {
	b.lock.RLock()
	defer b.lock.RUnlock()

	return b.value
}

func (b *balance) reload(ctx context.Context, backend Backend, account common.Address) error {
	wei, err := backend.BalanceAt(ctx, account, nil)
	if err != nil {
		return err
	}
	value, err := numeric.Wrap(wei)
	if err != nil {
		return err
	}

	b.lock.Lock()
	defer b.lock.Unlock()

	b.value = value
	return nil
}
