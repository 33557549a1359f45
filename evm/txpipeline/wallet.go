// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpipeline

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Reader is the read side of a chain connection. *ethclient.Client
// implements it.
type Reader interface {
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// Request is a fully resolved transaction handed to a wallet.
type Request struct {
	From  common.Address
	To    common.Address
	Data  []byte
	Value *big.Int
	Gas   uint64
}

// Wallet is a connected account.
type Wallet interface {
	Address() common.Address
	Reader() Reader
	// ReloadBalance refreshes the cached native balance of the account.
	ReloadBalance(ctx context.Context) error
}

// LocalSigner holds its key material. The pipeline submits the signed
// transaction through the wallet's Reader.
type LocalSigner interface {
	Wallet
	SignTransaction(ctx context.Context, req Request) (*types.Transaction, error)
}

// ExternalSender delegates signing and submission to something outside of
// the process, such as a node managed account.
type ExternalSender interface {
	Wallet
	SendTransaction(ctx context.Context, req Request) (common.Hash, error)
}
