// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

// EnvPrefix is prepended, upper cased, to the environment variable of every
// key. Dashes become underscores: CHAINSDK_LOG_LEVEL.
const EnvPrefix = "chainsdk"

const (
	ConfigFileKey = "config-file"

	ChainIDKey = "chain-id"
	RPCURLsKey = "rpc-urls"

	LogLevelKey        = "log-level"
	LogDisplayLevelKey = "log-display-level"
	LogFormatKey       = "log-format"
	LogDirKey          = "log-dir"
	LogMaxSizeKey      = "log-rotater-max-size"
	LogMaxFilesKey     = "log-rotater-max-files"
	LogMaxAgeKey       = "log-rotater-max-age"
	LogCompressKey     = "log-rotater-compress-enabled"

	BatchTimeoutKey       = "batch-timeout"
	BatchCallbackLimitKey = "batch-callback-limit"

	TxGasMultiplierKey                 = "tx-gas-multiplier"
	TxReceiptTimeoutKey                = "tx-receipt-timeout"
	TxReceiptPollIntervalKey           = "tx-receipt-poll-interval"
	TxConfirmationsKey                 = "tx-confirmations"
	TxBlockMintingToleranceKey         = "tx-block-minting-tolerance"
	TxBlockMintingToleranceIntervalKey = "tx-block-minting-tolerance-interval"
	TxBalanceReloadTimeoutKey          = "tx-balance-reload-timeout"

	FinalityBudgetKey    = "finality-budget"
	FinalityDelayKey     = "finality-delay"
	FinalityPolicyKey    = "finality-policy"
	FinalityMaxDepthKey  = "finality-max-depth"
	FinalityMaxNodesKey  = "finality-max-nodes"
	FinalityPollRateKey  = "finality-poll-rate"
	FinalityPollBurstKey = "finality-poll-burst"
)
