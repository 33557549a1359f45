// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config loads the tuning of every component from flags, the
// environment and a config file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/ava-labs/chainsdk/chains"
	"github.com/ava-labs/chainsdk/evm/batch"
	"github.com/ava-labs/chainsdk/evm/txpipeline"
	"github.com/ava-labs/chainsdk/pbc/finality"
	"github.com/ava-labs/chainsdk/utils/logging"
)

var errUnknownChain = errors.New("unknown chain")

type Config struct {
	Chain    *chains.Descriptor `json:"chain"`
	Logging  logging.Config     `json:"logging"`
	Batch    batch.Config       `json:"batch"`
	Pipeline txpipeline.Config  `json:"pipeline"`
	Finality finality.Config    `json:"finality"`
}

// GetConfig reads a Config out of [v]. Every section is verified.
func GetConfig(v *viper.Viper) (Config, error) {
	chain, err := getChain(v)
	if err != nil {
		return Config{}, err
	}
	logs, err := getLoggingConfig(v)
	if err != nil {
		return Config{}, err
	}

	pipeline := txpipeline.Config{
		EstimateGasMultiplier:         v.GetFloat64(TxGasMultiplierKey),
		ReceiptTimeout:                v.GetDuration(TxReceiptTimeoutKey),
		ReceiptPollInterval:           v.GetDuration(TxReceiptPollIntervalKey),
		Confirmations:                 v.GetUint64(TxConfirmationsKey),
		BlockMintingTolerance:         v.GetInt(TxBlockMintingToleranceKey),
		BlockMintingToleranceInterval: v.GetDuration(TxBlockMintingToleranceIntervalKey),
		BalanceReloadTimeout:          v.GetDuration(TxBalanceReloadTimeoutKey),
	}
	if err := pipeline.Verify(); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", TxGasMultiplierKey, err)
	}

	policy, err := finality.ParsePolicy(v.GetString(FinalityPolicyKey))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", FinalityPolicyKey, err)
	}
	finalityConfig := finality.Config{
		Budget:    v.GetDuration(FinalityBudgetKey),
		Delay:     v.GetDuration(FinalityDelayKey),
		Policy:    policy,
		MaxDepth:  v.GetInt(FinalityMaxDepthKey),
		MaxNodes:  v.GetInt(FinalityMaxNodesKey),
		PollRate:  v.GetFloat64(FinalityPollRateKey),
		PollBurst: v.GetInt(FinalityPollBurstKey),
	}
	if err := finalityConfig.Verify(); err != nil {
		return Config{}, fmt.Errorf("invalid finality config: %w", err)
	}

	return Config{
		Chain:   chain,
		Logging: logs,
		Batch: batch.Config{
			Timeout:       v.GetDuration(BatchTimeoutKey),
			CallbackLimit: v.GetInt(BatchCallbackLimitKey),
		},
		Pipeline: pipeline,
		Finality: finalityConfig,
	}, nil
}

// getChain returns a copy of the configured chain, with its RPC endpoints
// replaced if any were given.
func getChain(v *viper.Viper) (*chains.Descriptor, error) {
	id := v.GetUint64(ChainIDKey)
	d, ok := chains.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", errUnknownChain, id)
	}
	chain := *d
	if urls := v.GetStringSlice(RPCURLsKey); len(urls) > 0 {
		chain.RPC = urls
	}
	if err := chain.Verify(); err != nil {
		return nil, err
	}
	return &chain, nil
}

func getLoggingConfig(v *viper.Viper) (logging.Config, error) {
	config := logging.DefaultConfig()
	var err error
	config.LogLevel, err = logging.ToLevel(v.GetString(LogLevelKey))
	if err != nil {
		return config, err
	}
	config.DisplayLevel, err = logging.ToLevel(v.GetString(LogDisplayLevelKey))
	if err != nil {
		return config, err
	}
	config.LogFormat, err = logging.ToFormat(v.GetString(LogFormatKey), os.Stdout.Fd())
	if err != nil {
		return config, err
	}
	config.Directory = os.ExpandEnv(v.GetString(LogDirKey))
	config.MaxSize = v.GetInt(LogMaxSizeKey)
	config.MaxFiles = v.GetInt(LogMaxFilesKey)
	config.MaxAge = v.GetInt(LogMaxAgeKey)
	config.Compress = v.GetBool(LogCompressKey)
	return config, nil
}
