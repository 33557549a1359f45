// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chains

import (
	"sort"
	"time"
)

var (
	Ethereum = &Descriptor{
		ID:          1,
		Network:     "ethereum",
		Name:        "Ethereum",
		RPC:         []string{"https://eth.llamarpc.com", "https://rpc.ankr.com/eth"},
		Symbol:      "ETH",
		BlockTime:   12 * time.Second,
		ExplorerURL: "https://etherscan.io/",
	}
	Sepolia = &Descriptor{
		ID:          11155111,
		Network:     "sepolia",
		Name:        "Sepolia",
		RPC:         []string{"https://rpc.sepolia.org", "https://rpc2.sepolia.org"},
		Symbol:      "ETH",
		BlockTime:   12 * time.Second,
		ExplorerURL: "https://sepolia.etherscan.io/",
	}
	BSC = &Descriptor{
		ID:      56,
		Network: "binance",
		Name:    "Binance Smart Chain",
		RPC: []string{
			"https://bsc-dataseed.binance.org/",
			"https://bsc-dataseed1.defibit.io/",
			"https://bscrpc.com",
			"https://bsc-dataseed1.ninicoin.io/",
			"https://bsc-dataseed2.binance.org/",
			"https://bsc-dataseed2.defibit.io/",
			"https://bsc-dataseed3.ninicoin.io/",
		},
		Symbol:      "BNB",
		BlockTime:   3 * time.Second,
		ExplorerURL: "https://bscscan.com/",
	}
	BSCTestnet = &Descriptor{
		ID:      97,
		Network: "bnb-testnet",
		Name:    "BNB Testnet",
		RPC: []string{
			"https://data-seed-prebsc-1-s1.binance.org:8545",
			"https://data-seed-prebsc-2-s1.binance.org:8545",
			"https://data-seed-prebsc-2-s2.binance.org:8545",
		},
		Symbol:      "TBNB",
		BlockTime:   3 * time.Second,
		ExplorerURL: "https://testnet.bscscan.com/",
	}
	Polygon = &Descriptor{
		ID:          137,
		Network:     "matic",
		Name:        "Polygon",
		RPC:         []string{"https://polygon-rpc.com"},
		Symbol:      "MATIC",
		BlockTime:   2 * time.Second,
		ExplorerURL: "https://polygonscan.com/",
	}
	Mumbai = &Descriptor{
		ID:          80001,
		Network:     "mumbai",
		Name:        "Mumbai Polygon Testnet",
		RPC:         []string{"https://rpc.ankr.com/polygon_mumbai"},
		Symbol:      "MATIC",
		BlockTime:   2 * time.Second,
		ExplorerURL: "https://mumbai.polygonscan.com/",
	}
	AvalancheCChain = &Descriptor{
		ID:          43114,
		Network:     "avalanche",
		Name:        "Avalanche C-Chain",
		RPC:         []string{"https://api.avax.network/ext/bc/C/rpc"},
		Symbol:      "AVAX",
		BlockTime:   2 * time.Second,
		ExplorerURL: "https://snowtrace.io/",
	}
	Fuji = &Descriptor{
		ID:          43113,
		Network:     "fuji",
		Name:        "Avalanche Fuji Testnet",
		RPC:         []string{"https://api.avax-test.network/ext/bc/C/rpc"},
		Symbol:      "AVAX",
		BlockTime:   2 * time.Second,
		ExplorerURL: "https://testnet.snowtrace.io/",
	}
	DMC = &Descriptor{
		ID:          1130,
		Network:     "dmc-mainnet",
		Name:        "DefiChain MetaChain",
		RPC:         []string{"https://dmc.mydefichain.com/mainnet", "https://dmc01.mydefichain.com/mainnet"},
		Symbol:      "DFI",
		BlockTime:   5 * time.Second,
		ExplorerURL: "https://mainnet-dmc.mydefichain.com:8441/",
	}
	DMCTestnet = &Descriptor{
		ID:          1131,
		Network:     "dmc-testnet",
		Name:        "DefiChain MetaChain Testnet",
		RPC:         []string{"https://dmc.mydefichain.com/testnet", "https://dmc01.mydefichain.com/testnet"},
		Symbol:      "DFI",
		BlockTime:   10 * time.Second,
		ExplorerURL: "https://testnet3-dmc.mydefichain.com:8445/",
	}
	Arbitrum = &Descriptor{
		ID:          42161,
		Network:     "arbitrum",
		Name:        "Arbitrum One",
		RPC:         []string{"https://arb1.arbitrum.io/rpc"},
		Symbol:      "ETH",
		BlockTime:   250 * time.Millisecond,
		ExplorerURL: "https://arbiscan.io/",
	}
	Optimism = &Descriptor{
		ID:          10,
		Network:     "optimism",
		Name:        "OP Mainnet",
		RPC:         []string{"https://mainnet.optimism.io"},
		Symbol:      "ETH",
		BlockTime:   2 * time.Second,
		ExplorerURL: "https://optimistic.etherscan.io/",
	}

	PartisiaTestnet = &Descriptor{
		ID:          18500,
		Network:     "pbc-testnet",
		Name:        "Partisia Blockchain Testnet",
		RPC:         []string{"https://node1.testnet.partisiablockchain.com"},
		Symbol:      "MPC",
		BlockTime:   time.Second,
		ExplorerURL: "https://browser.testnet.partisiablockchain.com/",
		Kind:        Sharded,
		Sharded: &ShardedInfo{
			Shards:        []string{"Shard0", "Shard1", "Shard2"},
			ChainIDString: "Partisia Blockchain Testnet",
			SystemContracts: SystemContracts{
				WASMDeploy: "0197a0e238e924025bad144aa0c4913e46308f9a4d",
				ZKDeploy:   "018bc1ccbb672b87710327713c97d43204905082cb",
			},
		},
	}
	PartisiaMainnet = &Descriptor{
		ID:          8500,
		Network:     "pbc-mainnet",
		Name:        "Partisia Blockchain",
		RPC:         []string{"https://reader.partisiablockchain.com"},
		Symbol:      "MPC",
		BlockTime:   time.Second,
		ExplorerURL: "https://browser.partisiablockchain.com/",
		Kind:        Sharded,
		Sharded: &ShardedInfo{
			Shards:        []string{"Shard0", "Shard1", "Shard2"},
			ChainIDString: "Partisia Blockchain",
		},
	}

	byID = index(
		Ethereum,
		Sepolia,
		BSC,
		BSCTestnet,
		Polygon,
		Mumbai,
		AvalancheCChain,
		Fuji,
		DMC,
		DMCTestnet,
		Arbitrum,
		Optimism,
		PartisiaTestnet,
		PartisiaMainnet,
	)
)

func index(descriptors ...*Descriptor) map[uint64]*Descriptor {
	m := make(map[uint64]*Descriptor, len(descriptors))
	for _, d := range descriptors {
		if _, ok := m[d.ID]; ok {
			panic("duplicate chain id")
		}
		m[d.ID] = d
	}
	return m
}

// Lookup returns the built-in descriptor of chain [id].
func Lookup(id uint64) (*Descriptor, bool) {
	d, ok := byID[id]
	return d, ok
}

// All returns every built-in descriptor sorted by chain id.
func All() []*Descriptor {
	all := make([]*Descriptor, 0, len(byID))
	for _, d := range byID {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})
	return all
}

// EVMChains returns the built-in EVM descriptors sorted by chain id.
func EVMChains() []*Descriptor {
	return filter(EVM)
}

// ShardedChains returns the built-in sharded descriptors sorted by chain id.
func ShardedChains() []*Descriptor {
	return filter(Sharded)
}

func filter(kind Kind) []*Descriptor {
	var out []*Descriptor
	for _, d := range All() {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
