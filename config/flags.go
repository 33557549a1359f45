// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ava-labs/chainsdk/chains"
	"github.com/ava-labs/chainsdk/evm/batch"
	"github.com/ava-labs/chainsdk/evm/txpipeline"
	"github.com/ava-labs/chainsdk/pbc/finality"
	"github.com/ava-labs/chainsdk/utils/logging"
)

// BuildFlagSet returns the flags understood by GetConfig, with their
// defaults.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("chainsdk", pflag.ContinueOnError)
	fs.String(ConfigFileKey, "", "Path to a config file. Flags and environment variables take precedence")

	fs.Uint64(ChainIDKey, chains.BSC.ID, "ID of the chain to connect to")
	fs.StringSlice(RPCURLsKey, nil, "RPC endpoints in fallback order. Defaults to the endpoints of the chain")

	logs := logging.DefaultConfig()
	fs.String(LogLevelKey, logs.LogLevel.String(), "The log level written to the log directory")
	fs.String(LogDisplayLevelKey, logs.DisplayLevel.String(), "The log level written to stdout")
	fs.String(LogFormatKey, "auto", "The structure of log format. Options are: auto, plain, colors, json")
	fs.String(LogDirKey, "", "Directory for rotated log files. Empty disables file logging")
	fs.Int(LogMaxSizeKey, logs.MaxSize, "The maximum file size in megabytes of the log file before it gets rotated")
	fs.Int(LogMaxFilesKey, logs.MaxFiles, "The maximum number of old log files to retain")
	fs.Int(LogMaxAgeKey, logs.MaxAge, "The maximum number of days to retain old log files based on the timestamp encoded in their filename")
	fs.Bool(LogCompressKey, false, "Enables the compression of rotated log files through gzip")

	fs.Duration(BatchTimeoutKey, batch.DefaultTimeout, "Timeout of a batched JSON-RPC request")
	fs.Int(BatchCallbackLimitKey, 0, "Maximum number of call handlers run at once. 0 is unlimited")

	fs.Float64(TxGasMultiplierKey, txpipeline.DefaultEstimateGasMultiplier, "Multiplier applied to estimated gas")
	fs.Duration(TxReceiptTimeoutKey, txpipeline.DefaultReceiptTimeout, "Timeout of a single receipt attempt")
	fs.Duration(TxReceiptPollIntervalKey, txpipeline.DefaultReceiptPollInterval, "Delay between receipt lookups")
	fs.Uint64(TxConfirmationsKey, txpipeline.DefaultConfirmations, "Number of blocks a receipt must be buried under")
	fs.Int(TxBlockMintingToleranceKey, txpipeline.DefaultBlockMintingTolerance, "Number of failed receipt attempts to retry")
	fs.Duration(TxBlockMintingToleranceIntervalKey, txpipeline.DefaultBlockMintingToleranceInterval, "Delay after a failed receipt attempt")
	fs.Duration(TxBalanceReloadTimeoutKey, txpipeline.DefaultBalanceReloadTimeout, "Timeout of the balance refresh after a submission")

	fs.Duration(FinalityBudgetKey, finality.DefaultBudget, "Time every transaction and event has to finalize")
	fs.Duration(FinalityDelayKey, finality.DefaultDelay, "Delay between polls of an executed transaction")
	fs.String(FinalityPolicyKey, finality.DefaultPolicy.String(), "Event tree traversal. Options are: parallel, depth-first")
	fs.Int(FinalityMaxDepthKey, finality.DefaultMaxDepth, "Maximum depth of a followed event tree")
	fs.Int(FinalityMaxNodesKey, finality.DefaultMaxNodes, "Maximum number of transactions and events followed per submission")
	fs.Float64(FinalityPollRateKey, 0, "Polls per second shared by all waits. 0 is unlimited")
	fs.Int(FinalityPollBurstKey, 1, "Burst of the poll rate limit")
	return fs
}

// BuildViper parses [args] with [fs] and layers the environment and the
// optional config file below them.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if v.IsSet(ConfigFileKey) {
		if path := v.GetString(ConfigFileKey); path != "" {
			v.SetConfigFile(os.ExpandEnv(path))
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}
	return v, nil
}
