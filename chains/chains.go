// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chains holds the static descriptors of every chain the SDK can talk
// to. Descriptors are immutable once constructed.
package chains

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// EmptyAddress is used as the sender when previewing calldata without a
	// connected wallet.
	EmptyAddress = common.Address{}
	DeadAddress  = common.HexToAddress("0x000000000000000000000000000000000000dEaD")

	errNoRPC         = errors.New("no RPC endpoints")
	errInvalidRPC    = errors.New("invalid RPC endpoint")
	errNoShardInfo   = errors.New("sharded chain without shard info")
	errUnexpectedSIF = errors.New("EVM chain with shard info")
	errNoChainIDStr  = errors.New("sharded chain without chain id string")
)

type Kind uint8

const (
	EVM Kind = iota
	Sharded
)

func (k Kind) String() string {
	switch k {
	case EVM:
		return "evm"
	case Sharded:
		return "sharded"
	default:
		return "unknown"
	}
}

// SystemContracts are well known contracts of a sharded chain, hex encoded.
type SystemContracts struct {
	WASMDeploy string `json:"wasmDeploy"`
	ZKDeploy   string `json:"zkDeploy"`
}

// ShardedInfo is the extra metadata carried by sharded chain descriptors.
type ShardedInfo struct {
	// Shards in routing order. An empty list routes everything to the master
	// endpoint.
	Shards []string `json:"shards"`
	// ChainIDString is mixed into every transaction signing hash.
	ChainIDString   string          `json:"chainIDString"`
	SystemContracts SystemContracts `json:"systemContracts"`
}

type Descriptor struct {
	ID      uint64 `json:"id"`
	Network string `json:"network"`
	Name    string `json:"name"`
	// RPC endpoints in fallback order.
	RPC         []string      `json:"rpc"`
	Symbol      string        `json:"symbol"`
	BlockTime   time.Duration `json:"blockTime"`
	ExplorerURL string        `json:"explorerURL"`
	Kind        Kind          `json:"kind"`
	Sharded     *ShardedInfo  `json:"sharded,omitempty"`
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s (%d)", d.Name, d.ID)
}

func (d *Descriptor) IsSharded() bool {
	return d.Kind == Sharded
}

// PrimaryRPC returns the first configured endpoint.
func (d *Descriptor) PrimaryRPC() string {
	if len(d.RPC) == 0 {
		return ""
	}
	return d.RPC[0]
}

// TxURL returns the explorer page of [txHash].
func (d *Descriptor) TxURL(txHash string) string {
	return strings.TrimSuffix(d.ExplorerURL, "/") + "/tx/" + txHash
}

// Verify returns an error if the descriptor is not usable.
func (d *Descriptor) Verify() error {
	if len(d.RPC) == 0 {
		return fmt.Errorf("%w: chain %d", errNoRPC, d.ID)
	}
	for _, rpc := range d.RPC {
		u, err := url.Parse(rpc)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: chain %d: %q", errInvalidRPC, d.ID, rpc)
		}
	}
	switch d.Kind {
	case Sharded:
		if d.Sharded == nil {
			return fmt.Errorf("%w: chain %d", errNoShardInfo, d.ID)
		}
		if d.Sharded.ChainIDString == "" {
			return fmt.Errorf("%w: chain %d", errNoChainIDStr, d.ID)
		}
	default:
		if d.Sharded != nil {
			return fmt.Errorf("%w: chain %d", errUnexpectedSIF, d.ID)
		}
	}
	return nil
}
