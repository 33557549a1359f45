// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpipeline

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultEstimateGasMultiplier         = 1.15
	DefaultReceiptTimeout                = 10 * time.Second
	DefaultReceiptPollInterval           = time.Second
	DefaultConfirmations                 = 1
	DefaultBlockMintingTolerance         = 5
	DefaultBlockMintingToleranceInterval = 2 * time.Second
	DefaultBalanceReloadTimeout          = 5 * time.Second
)

var errInvalidMultiplier = errors.New("gas multiplier must be positive")

type Config struct {
	// EstimateGasMultiplier is applied to every gas amount before the
	// transaction is submitted. The product is rounded down.
	EstimateGasMultiplier float64 `json:"estimateGasMultiplier"`
	// ReceiptTimeout bounds a single attempt at fetching the receipt.
	ReceiptTimeout time.Duration `json:"receiptTimeout"`
	// ReceiptPollInterval is the delay between receipt lookups within an
	// attempt.
	ReceiptPollInterval time.Duration `json:"receiptPollInterval"`
	// Confirmations is the number of blocks, including the one the
	// transaction was mined in, that must exist before the receipt is
	// accepted.
	Confirmations uint64 `json:"confirmations"`
	// BlockMintingTolerance is the number of failed receipt attempts that
	// are retried before giving up.
	BlockMintingTolerance int `json:"blockMintingTolerance"`
	// BlockMintingToleranceInterval is the delay after a failed receipt
	// attempt.
	BlockMintingToleranceInterval time.Duration `json:"blockMintingToleranceInterval"`
	// BalanceReloadTimeout bounds the balance refresh done after every
	// submission.
	BalanceReloadTimeout time.Duration `json:"balanceReloadTimeout"`
}

func DefaultConfig() Config {
	return Config{
		EstimateGasMultiplier:         DefaultEstimateGasMultiplier,
		ReceiptTimeout:                DefaultReceiptTimeout,
		ReceiptPollInterval:           DefaultReceiptPollInterval,
		Confirmations:                 DefaultConfirmations,
		BlockMintingTolerance:         DefaultBlockMintingTolerance,
		BlockMintingToleranceInterval: DefaultBlockMintingToleranceInterval,
		BalanceReloadTimeout:          DefaultBalanceReloadTimeout,
	}
}

func (c Config) Verify() error {
	if c.EstimateGasMultiplier <= 0 {
		return errInvalidMultiplier
	}
	return nil
}

func (c Config) multiplier() decimal.Decimal {
	return decimal.NewFromFloat(c.EstimateGasMultiplier)
}
