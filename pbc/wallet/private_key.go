// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wallet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/ava-labs/chainsdk/chains"
	"github.com/ava-labs/chainsdk/ids"
	"github.com/ava-labs/chainsdk/pbc/client"
	"github.com/ava-labs/chainsdk/pbc/tx"
	"github.com/ava-labs/chainsdk/utils/crypto/secp256k1"
	"github.com/ava-labs/chainsdk/utils/logging"
	"github.com/ava-labs/chainsdk/utils/timer/mockable"
)

var (
	_ ConnectedWallet = (*PrivateKeyWallet)(nil)

	ErrNotConnected    = errors.New("wallet is not connected")
	errNoAccountData   = errors.New("account data unavailable")
	errNotShardedChain = errors.New("not a sharded chain")
)

// ClientFactory builds the node client used by a connected wallet.
type ClientFactory func(chain *chains.Descriptor) (client.Client, error)

type Option func(*PrivateKeyWallet)

// WithClientFactory overrides how the node client is built on Connect.
func WithClientFactory(factory ClientFactory) Option {
	return func(w *PrivateKeyWallet) {
		w.newClient = factory
	}
}

// WithHTTPClient sets the http client used by the default client factory.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(w *PrivateKeyWallet) {
		w.httpClient = httpClient
	}
}

// PrivateKeyWallet signs transactions with a key held in memory.
type PrivateKeyWallet struct {
	Clock mockable.Clock

	log        logging.Logger
	key        *secp256k1.PrivateKey
	address    ids.Address
	chain      *chains.Descriptor
	httpClient *http.Client
	newClient  ClientFactory

	lock   sync.RWMutex
	client client.Client
}

func NewPrivateKeyWallet(
	log logging.Logger,
	key *secp256k1.PrivateKey,
	chain *chains.Descriptor,
	opts ...Option,
) (*PrivateKeyWallet, error) {
	if !chain.IsSharded() || chain.Sharded == nil {
		return nil, fmt.Errorf("%w: %s", errNotShardedChain, chain)
	}
	w := &PrivateKeyWallet{
		log:     log,
		key:     key,
		address: tx.Address(key.PublicKey()),
		chain:   chain,
	}
	w.newClient = func(chain *chains.Descriptor) (client.Client, error) {
		return client.NewClientForChain(w.log, chain, w.httpClient)
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *PrivateKeyWallet) Address() ids.Address {
	return w.address
}

func (w *PrivateKeyWallet) Chain() *chains.Descriptor {
	return w.chain
}

func (w *PrivateKeyWallet) IsConnected() bool {
	w.lock.RLock()
	defer w.lock.RUnlock()

	return w.client != nil
}

func (w *PrivateKeyWallet) Connect(context.Context) error {
	c, err := w.newClient(w.chain)
	if err != nil {
		return err
	}

	w.lock.Lock()
	defer w.lock.Unlock()

	w.client = c
	return nil
}

func (w *PrivateKeyWallet) Disconnect() error {
	w.lock.Lock()
	defer w.lock.Unlock()

	w.client = nil
	return nil
}

// Client returns the node client of a connected wallet.
func (w *PrivateKeyWallet) Client() (client.Client, error) {
	w.lock.RLock()
	defer w.lock.RUnlock()

	if w.client == nil {
		return nil, ErrNotConnected
	}
	return w.client, nil
}

func (w *PrivateKeyWallet) SignAndSendTransaction(ctx context.Context, payload Payload, cost uint64) (SubmitResult, error) {
	c, err := w.Client()
	if err != nil {
		return SubmitResult{}, err
	}

	account, err := c.GetAccountData(ctx, w.address)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("couldn't fetch account %s: %w", w.address, err)
	}
	if !account.OK() {
		return SubmitResult{}, fmt.Errorf("%w: account %s, status %d", errNoAccountData, w.address, account.StatusCode)
	}

	signed, err := tx.Sign(w.key, &tx.Transaction{
		Inner: tx.Inner{
			Nonce:   account.Data.Nonce,
			ValidTo: tx.ValidTo(w.Clock.Time(), tx.DefaultTTL),
			Cost:    cost,
		},
		Address: payload.Address,
		RPC:     payload.RPC,
	}, w.chain.Sharded.ChainIDString)
	if err != nil {
		return SubmitResult{}, err
	}

	pointer, err := c.PutTransaction(ctx, signed)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("couldn't submit transaction: %w", err)
	}
	if !pointer.OK() {
		w.log.Warn("node refused transaction",
			zap.Stringer("to", payload.Address),
			zap.Int("status", pointer.StatusCode),
		)
		return SubmitResult{}, nil
	}

	w.log.Debug("submitted transaction",
		zap.Stringer("to", payload.Address),
		zap.Stringer("txHash", pointer.Data.Identifier),
		zap.String("shard", pointer.Data.DestinationShardID),
		zap.Uint64("nonce", account.Data.Nonce),
	)
	return SubmitResult{
		PutSuccessful:   true,
		Shard:           pointer.Data.DestinationShardID,
		TransactionHash: pointer.Data.Identifier,
	}, nil
}
