// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package connection owns the long lived per-chain RPC clients.
package connection

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/ava-labs/chainsdk/chains"
	"github.com/ava-labs/chainsdk/utils/logging"
)

var (
	ErrNoReachableEndpoint = errors.New("no reachable RPC endpoint")
	errWrongChain          = errors.New("endpoint serves a different chain")
	errNotEVM              = errors.New("not an EVM chain")
)

// Dialer opens an RPC client to [url].
type Dialer func(ctx context.Context, url string) (*rpc.Client, error)

// Client is a connected read client of one chain.
type Client struct {
	Chain *chains.Descriptor
	URL   string
	RPC   *rpc.Client
	Eth   *ethclient.Client
}

// Manager caches one Client per chain id for the lifetime of the process.
type Manager struct {
	log  logging.Logger
	dial Dialer

	lock    sync.Mutex
	clients map[uint64]*Client
}

// NewManager returns a manager dialing with [dial], or rpc.DialContext when
// [dial] is nil.
func NewManager(log logging.Logger, dial Dialer) *Manager {
	if dial == nil {
		dial = rpc.DialContext
	}
	return &Manager{
		log:     log,
		dial:    dial,
		clients: make(map[uint64]*Client),
	}
}

// Client returns the cached client of [chain], connecting to the first of
// its endpoints that answers with the expected chain id.
func (m *Manager) Client(ctx context.Context, chain *chains.Descriptor) (*Client, error) {
	if chain.Kind != chains.EVM {
		return nil, fmt.Errorf("%w: %s", errNotEVM, chain)
	}

	if c, ok := m.cached(chain.ID); ok {
		return c, nil
	}

	// Endpoints are walked unlocked so a slow chain doesn't stall lookups
	// of the others.
	var errs []error
	for _, url := range chain.RPC {
		c, err := m.connect(ctx, chain, url)
		if err != nil {
			m.log.Warn("skipping RPC endpoint",
				zap.Stringer("chain", chain),
				zap.String("url", url),
				zap.Error(err),
			)
			errs = append(errs, err)
			continue
		}
		m.log.Debug("connected",
			zap.Stringer("chain", chain),
			zap.String("url", url),
		)
		return m.store(c), nil
	}
	return nil, fmt.Errorf("%w for %s: %w", ErrNoReachableEndpoint, chain, errors.Join(errs...))
}

func (m *Manager) cached(chainID uint64) (*Client, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()

	c, ok := m.clients[chainID]
	return c, ok
}

// store caches [c] unless a concurrent lookup already connected the same
// chain, in which case [c] is closed and the cached client is returned.
func (m *Manager) store(c *Client) *Client {
	m.lock.Lock()
	defer m.lock.Unlock()

	if existing, ok := m.clients[c.Chain.ID]; ok {
		c.RPC.Close()
		return existing
	}
	m.clients[c.Chain.ID] = c
	return c
}

func (m *Manager) connect(ctx context.Context, chain *chains.Descriptor, url string) (*Client, error) {
	rpcClient, err := m.dial(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	var chainID hexutil.Uint64
	if err := rpcClient.CallContext(ctx, &chainID, "eth_chainId"); err != nil {
		rpcClient.Close()
		return nil, fmt.Errorf("eth_chainId on %s: %w", url, err)
	}
	if uint64(chainID) != chain.ID {
		rpcClient.Close()
		return nil, fmt.Errorf("%w: %s reports %d, expected %d", errWrongChain, url, uint64(chainID), chain.ID)
	}
	return &Client{
		Chain: chain,
		URL:   url,
		RPC:   rpcClient,
		Eth:   ethclient.NewClient(rpcClient),
	}, nil
}

// Close closes every cached client.
func (m *Manager) Close() {
	m.lock.Lock()
	defer m.lock.Unlock()

	for id, c := range m.clients {
		c.RPC.Close()
		delete(m.clients, id)
	}
}
