// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ava-labs/chainsdk/utils/logging"
	"github.com/ava-labs/chainsdk/utils/numeric"
	"github.com/ava-labs/chainsdk/wallet/status"
)

type Option func(*Pipeline)

func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// Pipeline submits intents through connected wallets and waits for their
// receipts.
type Pipeline struct {
	log        logging.Logger
	config     Config
	multiplier decimal.Decimal
	metrics    *Metrics
}

func New(log logging.Logger, config Config, options ...Option) (*Pipeline, error) {
	if err := config.Verify(); err != nil {
		return nil, err
	}
	p := &Pipeline{
		log:        log,
		config:     config,
		multiplier: config.multiplier(),
	}
	for _, option := range options {
		option(p)
	}
	return p, nil
}

// Execute consumes [intent], sends it from [wallet] and waits for the
// receipt. [observer] is told about the start of the submission and then
// about exactly one outcome. Every outcome is followed by a best effort
// balance refresh of [wallet].
func (p *Pipeline) Execute(
	ctx context.Context,
	intent *Intent,
	wallet Wallet,
	observer status.Observer,
) (*types.Receipt, error) {
	if err := intent.consume(); err != nil {
		return nil, err
	}

	observer.Start()
	if p.metrics != nil {
		p.metrics.submitted.Inc()
	}

	receipt, txHash, err := p.execute(ctx, intent, wallet)
	if err == nil {
		observer.Success(txHash.Hex())
		if p.metrics != nil {
			p.metrics.succeeded.Inc()
		}
		p.reloadBalance(ctx, wallet)
		return receipt, nil
	}

	var reason string
	if errors.Is(err, ErrReverted) && receipt != nil {
		reason = serializeLogs(receipt.Logs)
	} else {
		reason = Reason(err)
	}
	p.log.Debug("transaction submission failed",
		zap.Stringer("to", intent.to),
		zap.Stringer("txHash", txHash),
		zap.Error(err),
	)
	observer.Failed(reason)
	if p.metrics != nil {
		p.metrics.failed.Inc()
	}
	p.reloadBalance(ctx, wallet)
	return receipt, &TxError{
		Reason: reason,
		TxHash: txHash,
		Err:    err,
	}
}

func (p *Pipeline) execute(ctx context.Context, intent *Intent, wallet Wallet) (*types.Receipt, common.Hash, error) {
	if intent.validate != nil {
		if err := intent.validate(ctx); err != nil {
			return nil, common.Hash{}, fmt.Errorf("validation failed: %w", err)
		}
	}

	value, err := intent.resolveValue(ctx)
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("couldn't resolve value: %w", err)
	}
	wei, err := numeric.ToBigInt(value)
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("invalid value %s: %w", value, err)
	}

	from := wallet.Address()
	data, err := intent.buildData(from)
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("couldn't build calldata: %w", err)
	}

	reader := wallet.Reader()
	var gas decimal.Decimal
	if intent.gas != nil {
		gas, err = intent.gas(ctx)
	} else {
		gas, err = estimate(ctx, reader, from, intent.to, data, value)
	}
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("couldn't resolve gas: %w", err)
	}
	gasLimit, err := numeric.ToUint64(numeric.MulFloor(gas, p.multiplier))
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("invalid gas %s: %w", gas, err)
	}

	request := Request{
		From:  from,
		To:    intent.to,
		Data:  data,
		Value: wei,
		Gas:   gasLimit,
	}
	txHash, err := send(ctx, wallet, reader, request)
	if err != nil {
		return nil, txHash, err
	}
	p.log.Info("transaction sent",
		zap.Stringer("from", from),
		zap.Stringer("to", intent.to),
		zap.Stringer("txHash", txHash),
		zap.Uint64("gas", gasLimit),
	)

	receipt, err := p.waitForReceipt(ctx, reader, txHash)
	if err != nil {
		return nil, txHash, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, txHash, ErrReverted
	}
	return receipt, txHash, nil
}

func send(ctx context.Context, wallet Wallet, reader Reader, request Request) (common.Hash, error) {
	switch wallet := wallet.(type) {
	case LocalSigner:
		tx, err := wallet.SignTransaction(ctx, request)
		if err != nil {
			return common.Hash{}, fmt.Errorf("couldn't sign transaction: %w", err)
		}
		if err := reader.SendTransaction(ctx, tx); err != nil {
			return tx.Hash(), err
		}
		return tx.Hash(), nil
	case ExternalSender:
		return wallet.SendTransaction(ctx, request)
	default:
		return common.Hash{}, fmt.Errorf("%w: %T", errUnsupportedWallet, wallet)
	}
}

// waitForReceipt makes up to BlockMintingTolerance+1 attempts at fetching
// the receipt of [txHash].
func (p *Pipeline) waitForReceipt(ctx context.Context, reader Reader, txHash common.Hash) (*types.Receipt, error) {
	for blocks := 0; ; blocks++ {
		receipt, err := p.awaitReceipt(ctx, reader, txHash)
		if err == nil {
			return receipt, nil
		}
		if blocks >= p.config.BlockMintingTolerance {
			return nil, err
		}

		p.log.Debug("receipt attempt failed",
			zap.Stringer("txHash", txHash),
			zap.Int("attempt", blocks+1),
			zap.Error(err),
		)
		timer := time.NewTimer(p.config.BlockMintingToleranceInterval)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
}

// awaitReceipt polls for the receipt until it has the configured number of
// confirmations or ReceiptTimeout passes. A receipt that is not found yet is
// not an error.
func (p *Pipeline) awaitReceipt(ctx context.Context, reader Reader, txHash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.ReceiptTimeout)
	defer cancel()

	ticker := time.NewTicker(p.config.ReceiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := reader.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil:
			confirmed, err := p.confirmed(ctx, reader, receipt)
			if err != nil {
				return nil, err
			}
			if confirmed {
				return receipt, nil
			}
		case !errors.Is(err, ethereum.NotFound):
			return nil, err
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w %s after %s", ErrReceiptTimeout, txHash, p.config.ReceiptTimeout)
		}
	}
}

func (p *Pipeline) confirmed(ctx context.Context, reader Reader, receipt *types.Receipt) (bool, error) {
	if p.config.Confirmations <= 1 || receipt.BlockNumber == nil {
		return true, nil
	}
	head, err := reader.BlockNumber(ctx)
	if err != nil {
		return false, err
	}
	mined := receipt.BlockNumber.Uint64()
	return head >= mined && head-mined+1 >= p.config.Confirmations, nil
}

func (p *Pipeline) reloadBalance(ctx context.Context, wallet Wallet) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.config.BalanceReloadTimeout)
	defer cancel()

	if err := wallet.ReloadBalance(ctx); err != nil {
		p.log.Warn("couldn't reload balance",
			zap.Stringer("address", wallet.Address()),
			zap.Error(err),
		)
	}
}

func serializeLogs(logs []*types.Log) string {
	if logs == nil {
		logs = []*types.Log{}
	}
	b, err := json.Marshal(logs)
	if err != nil {
		return ErrReverted.Error()
	}
	return string(b)
}
