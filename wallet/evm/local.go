// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package evm

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ava-labs/chainsdk/evm/txpipeline"
	"github.com/ava-labs/chainsdk/utils/logging"
)

var _ txpipeline.LocalSigner = (*Local)(nil)

// Local signs transactions with a private key held in memory.
type Local struct {
	log     logging.Logger
	key     *ecdsa.PrivateKey
	address common.Address
	chainID *big.Int
	signer  types.Signer
	backend Backend
	balance balance
}

// NewLocal returns a wallet for [key] on the chain served by [backend].
func NewLocal(ctx context.Context, log logging.Logger, key *ecdsa.PrivateKey, backend Backend) (*Local, error) {
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch chain id: %w", err)
	}
	return &Local{
		log:     log,
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		chainID: chainID,
		signer:  types.LatestSignerForChainID(chainID),
		backend: backend,
	}, nil
}

// NewLocalFromHex is NewLocal for a hex encoded key, with or without the 0x
// prefix.
func NewLocalFromHex(ctx context.Context, log logging.Logger, hexKey string, backend Backend) (*Local, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return NewLocal(ctx, log, key, backend)
}

func (l *Local) Address() common.Address {
	return l.address
}

func (l *Local) ChainID() *big.Int {
	return new(big.Int).Set(l.chainID)
}

func (l *Local) Reader() txpipeline.Reader {
	return l.backend
}

// Balance returns the balance, in wei, as of the last reload.
func (l *Local) Balance() decimal.Decimal {
	return l.balance.get()
}

func (l *Local) ReloadBalance(ctx context.Context) error {
	return l.balance.reload(ctx, l.backend, l.address)
}

// SignTransaction signs [req] with the pending nonce of the account. A
// dynamic fee transaction is built when the head block carries a base fee.
func (l *Local) SignTransaction(ctx context.Context, req txpipeline.Request) (*types.Transaction, error) {
	nonce, err := l.backend.PendingNonceAt(ctx, l.address)
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch nonce: %w", err)
	}
	head, err := l.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't fetch head: %w", err)
	}

	to := req.To
	value := req.Value
	if value == nil {
		value = new(big.Int)
	}

	var unsigned *types.Transaction
	if head.BaseFee != nil {
		tip, err := l.backend.SuggestGasTipCap(ctx)
		if err != nil {
			return nil, fmt.Errorf("couldn't suggest tip: %w", err)
		}
		feeCap := new(big.Int).Add(tip, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
		unsigned = types.NewTx(&types.DynamicFeeTx{
			ChainID:   l.chainID,
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: feeCap,
			Gas:       req.Gas,
			To:        &to,
			Value:     value,
			Data:      req.Data,
		})
	} else {
		gasPrice, err := l.backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("couldn't suggest gas price: %w", err)
		}
		unsigned = types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      req.Gas,
			To:       &to,
			Value:    value,
			Data:     req.Data,
		})
	}

	tx, err := types.SignTx(unsigned, l.signer, l.key)
	if err != nil {
		return nil, err
	}
	l.log.Debug("signed transaction",
		zap.Stringer("txHash", tx.Hash()),
		zap.Uint64("nonce", nonce),
		zap.Uint8("type", tx.Type()),
	)
	return tx, nil
}
