// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package evm

import (
	"context"
	"errors"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ava-labs/chainsdk/evm/txpipeline"
	"github.com/ava-labs/chainsdk/utils/logging"
	"github.com/ava-labs/chainsdk/utils/rpc"
)

var (
	_ txpipeline.ExternalSender = (*Remote)(nil)

	errNoAccounts = errors.New("node manages no accounts")
)

type sendTxArgs struct {
	From  common.Address `json:"from"`
	To    common.Address `json:"to"`
	Gas   hexutil.Uint64 `json:"gas"`
	Value *hexutil.Big   `json:"value"`
	Data  hexutil.Bytes  `json:"data"`
}

// Remote is an account managed by a node. Transactions are signed and sent by
// the node through eth_sendTransaction.
type Remote struct {
	log       logging.Logger
	address   common.Address
	backend   Backend
	requester rpc.EndpointRequester
	balance   balance
}

// NewRemote returns the wallet of [address], managed by the node at [uri].
// Reads go through [backend].
func NewRemote(log logging.Logger, uri string, client *http.Client, address common.Address, backend Backend) *Remote {
	log.Debug("using node managed account",
		zap.String("uri", rpc.Redact(uri)),
		zap.Stringer("address", address),
	)
	return &Remote{
		log:       log,
		address:   address,
		backend:   backend,
		requester: rpc.NewEndpointRequester(uri, client),
	}
}

// DiscoverRemote returns the wallet of the first account managed by the node
// at [uri].
func DiscoverRemote(ctx context.Context, log logging.Logger, uri string, client *http.Client, backend Backend) (*Remote, error) {
	var accounts []common.Address
	requester := rpc.NewEndpointRequester(uri, client)
	if err := requester.SendRequest(ctx, "eth_accounts", []interface{}{}, &accounts); err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, errNoAccounts
	}
	return NewRemote(log, uri, client, accounts[0], backend), nil
}

func (r *Remote) Address() common.Address {
	return r.address
}

func (r *Remote) Reader() txpipeline.Reader {
	return r.backend
}

func (r *Remote) Balance() decimal.Decimal {
	return r.balance.get()
}

func (r *Remote) ReloadBalance(ctx context.Context) error {
	return r.balance.reload(ctx, r.backend, r.address)
}

func (r *Remote) SendTransaction(ctx context.Context, req txpipeline.Request) (common.Hash, error) {
	value := req.Value
	if value == nil {
		value = new(big.Int)
	}
	args := sendTxArgs{
		From:  r.address,
		To:    req.To,
		Gas:   hexutil.Uint64(req.Gas),
		Value: (*hexutil.Big)(value),
		Data:  req.Data,
	}

	var txHash common.Hash
	err := r.requester.SendRequest(ctx, "eth_sendTransaction", []interface{}{args}, &txHash)
	return txHash, err
}
