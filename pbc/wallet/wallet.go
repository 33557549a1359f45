// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wallet

import (
	"context"

	"github.com/ava-labs/chainsdk/chains"
	"github.com/ava-labs/chainsdk/ids"
)

// Payload is an unsigned contract interaction.
type Payload struct {
	Address ids.Address
	RPC     []byte
}

// SubmitResult reports whether the node accepted a transaction. Shard and
// TransactionHash are only set when PutSuccessful is true.
type SubmitResult struct {
	PutSuccessful   bool
	Shard           string
	TransactionHash ids.ID
}

// ConnectedWallet signs and submits transactions for one account on one
// sharded chain.
type ConnectedWallet interface {
	Address() ids.Address
	Chain() *chains.Descriptor
	IsConnected() bool
	Connect(ctx context.Context) error
	Disconnect() error
	// SignAndSendTransaction returns an error only if the transaction could
	// not be built or submitted. A refusal by the node is reported through
	// SubmitResult.PutSuccessful.
	SignAndSendTransaction(ctx context.Context, payload Payload, cost uint64) (SubmitResult, error)
}
