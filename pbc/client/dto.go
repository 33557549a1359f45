// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import "github.com/ava-labs/chainsdk/ids"

// StateOutput selects how much of a contract's state the node serializes.
type StateOutput string

const (
	// StateDefault includes the state and the AVL trees.
	StateDefault StateOutput = "DEFAULT"
	// StateBinary includes the state without the AVL trees.
	StateBinary StateOutput = "BINARY"
	StateNone   StateOutput = "NONE"
)

// ContractType is the kind of contract reported by the node.
type ContractType string

const (
	SystemContract ContractType = "SYSTEM"
	PublicContract ContractType = "PUBLIC"
	ZKContract     ContractType = "ZERO_KNOWLEDGE"
)

type AccountCoin struct {
	Balance string `json:"balance"`
}

type AccountData struct {
	// Address is filled in by the client, the node does not echo it.
	Address      ids.Address   `json:"address"`
	Nonce        uint64        `json:"nonce"`
	MPCTokens    string        `json:"mpcTokens,omitempty"`
	AccountCoins []AccountCoin `json:"accountCoins,omitempty"`
}

type ContractData struct {
	Type          ContractType `json:"type"`
	Address       ids.Address  `json:"address"`
	JarHash       string       `json:"jarHash"`
	StorageLength uint64       `json:"storageLength"`
	ABI           []byte       `json:"abi"`
	// SerializedContract is only present when state was requested.
	SerializedContract []byte `json:"serializedContract,omitempty"`
}

// StateData is the answer of a state traversal.
type StateData struct {
	Data []byte `json:"data"`
}

type FailureCause struct {
	ErrorMessage string `json:"errorMessage"`
	StackTrace   string `json:"stackTrace"`
}

// EventPointer names an event spawned by an executed transaction.
type EventPointer struct {
	Identifier       ids.ID `json:"identifier"`
	DestinationShard string `json:"destinationShard"`
}

type ExecutedTransaction struct {
	TransactionPayload []byte         `json:"transactionPayload"`
	Block              string         `json:"block"`
	BlockTime          int64          `json:"blockTime"`
	ProductionTime     int64          `json:"productionTime"`
	Identifier         ids.ID         `json:"identifier"`
	ExecutionSucceeded bool           `json:"executionSucceeded"`
	FailureCause       *FailureCause  `json:"failureCause,omitempty"`
	Events             []EventPointer `json:"events"`
	Finalized          bool           `json:"finalized"`
	IsEvent            bool           `json:"isEvent"`
}

// TransactionPointer is returned by the node for an accepted submission.
type TransactionPointer struct {
	Identifier         ids.ID `json:"identifier"`
	DestinationShardID string `json:"destinationShardId"`
}

type AvlValue struct {
	Data []byte `json:"data"`
}

type AvlSize struct {
	Size int `json:"size"`
}

type AvlEntry struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

type putTransactionRequest struct {
	Payload []byte `json:"payload"`
}

type traverseStep struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type traverseRequest struct {
	Path []traverseStep `json:"path"`
}
