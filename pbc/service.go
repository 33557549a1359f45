// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pbc reads contract state from a sharded chain and sends
// transactions to it, waiting for their whole event tree to finalize.
package pbc

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ava-labs/chainsdk/cache/lru"
	"github.com/ava-labs/chainsdk/chains"
	"github.com/ava-labs/chainsdk/ids"
	"github.com/ava-labs/chainsdk/pbc/client"
	"github.com/ava-labs/chainsdk/pbc/finality"
	"github.com/ava-labs/chainsdk/pbc/state"
	"github.com/ava-labs/chainsdk/pbc/tx"
	"github.com/ava-labs/chainsdk/pbc/wallet"
	"github.com/ava-labs/chainsdk/utils/crypto/secp256k1"
	"github.com/ava-labs/chainsdk/utils/logging"
	"github.com/ava-labs/chainsdk/utils/wrappers"
	"github.com/ava-labs/chainsdk/wallet/status"
)

const DefaultContractCacheSize = 1024

var (
	errContractNotFound = errors.New("contract not found")
	errUnexpectedStatus = errors.New("unexpected status")
	errNotTree          = errors.New("field is not an AVL tree")
	errUnknownField     = errors.New("unknown field")
)

type contractKey struct {
	chainID uint64
	address ids.Address
}

// ContractInfo is the metadata of a deployed contract.
type ContractInfo struct {
	Type client.ContractType
	ABI  []byte
}

// Service is the entry point for contract reads and writes on one sharded
// chain.
type Service struct {
	log       logging.Logger
	chain     *chains.Descriptor
	client    client.Client
	tracker   *finality.Tracker
	contracts *lru.Cache[contractKey, ContractInfo]
}

func NewService(
	log logging.Logger,
	chain *chains.Descriptor,
	c client.Client,
	tracker *finality.Tracker,
) *Service {
	return &Service{
		log:       log,
		chain:     chain,
		client:    c,
		tracker:   tracker,
		contracts: lru.NewCache[contractKey, ContractInfo](DefaultContractCacheSize),
	}
}

func (s *Service) Chain() *chains.Descriptor {
	return s.chain
}

func (s *Service) Client() client.Client {
	return s.client
}

// Contract returns the metadata of the contract at [address]. Metadata is
// cached for the life of the Service.
func (s *Service) Contract(ctx context.Context, address ids.Address) (ContractInfo, error) {
	if info, ok := s.contracts.Get(s.key(address)); ok {
		return info, nil
	}
	data, err := s.contractData(ctx, address, false)
	if err != nil {
		return ContractInfo{}, err
	}
	return s.remember(address, data), nil
}

// FetchContractState reads the current state of the contract at [address]
// and decodes it as a value of type [schema].
func (s *Service) FetchContractState(ctx context.Context, address ids.Address, schema *state.TypeSpec) (*ContractState, error) {
	raw, info, err := s.rawState(ctx, address)
	if err != nil {
		return nil, err
	}
	return s.decode(address, info, raw, schema)
}

func (s *Service) decode(address ids.Address, info ContractInfo, raw []byte, schema *state.TypeSpec) (*ContractState, error) {
	value, err := state.Decode(schema, raw)
	if err != nil {
		return nil, fmt.Errorf("couldn't decode state of %s: %w", address, err)
	}
	return &ContractState{
		Address: address,
		Type:    info.Type,
		Raw:     raw,
		Value:   value,
		schema:  schema,
		service: s,
	}, nil
}

// rawState returns the serialized state of [address]. System contracts carry
// their state in the contract blob, every other contract is read through the
// state traverse endpoint.
func (s *Service) rawState(ctx context.Context, address ids.Address) ([]byte, ContractInfo, error) {
	info, ok := s.contracts.Get(s.key(address))
	if !ok || info.Type == client.SystemContract {
		data, err := s.contractData(ctx, address, true)
		if err != nil {
			return nil, ContractInfo{}, err
		}
		info = s.remember(address, data)
		if info.Type == client.SystemContract {
			return data.SerializedContract, info, nil
		}
	}

	resp, err := s.client.GetContractStateTraverse(ctx, address)
	if err != nil {
		return nil, ContractInfo{}, fmt.Errorf("couldn't read state of %s: %w", address, err)
	}
	if !resp.OK() {
		return nil, ContractInfo{}, fmt.Errorf("%w %d reading state of %s", errUnexpectedStatus, resp.StatusCode, address)
	}
	return resp.Data.Data, info, nil
}

func (s *Service) contractData(ctx context.Context, address ids.Address, withState bool) (*client.ContractData, error) {
	resp, err := s.client.GetContractData(ctx, address, withState, false)
	if err != nil {
		return nil, fmt.Errorf("couldn't read contract %s: %w", address, err)
	}
	switch {
	case resp.NotFound():
		return nil, fmt.Errorf("%w: %s", errContractNotFound, address)
	case !resp.OK():
		return nil, fmt.Errorf("%w %d reading contract %s", errUnexpectedStatus, resp.StatusCode, address)
	}
	return resp.Data, nil
}

func (s *Service) remember(address ids.Address, data *client.ContractData) ContractInfo {
	info := ContractInfo{
		Type: data.Type,
		ABI:  data.ABI,
	}
	s.contracts.Put(s.key(address), info)
	return info
}

func (s *Service) key(address ids.Address) contractKey {
	return contractKey{
		chainID: s.chain.ID,
		address: address,
	}
}

// Call reads the state [v] needs and runs it.
func (s *Service) Call(ctx context.Context, v View) (any, error) {
	st, err := s.FetchContractState(ctx, v.Address, v.Schema)
	if err != nil {
		return nil, err
	}
	return v.run(ctx, st)
}

// CallMulti runs [views] over a single read of every contract they
// reference. Results are returned in the order of [views].
func (s *Service) CallMulti(ctx context.Context, views ...View) ([]any, error) {
	m := s.NewMultiCall()
	for _, v := range views {
		if _, err := m.Add(v); err != nil {
			return nil, err
		}
	}
	return m.Execute(ctx)
}

// Send invokes [rpc] on the contract at [address] from [w], waits for the
// transaction and all its events to finalize, verifies the finalized tree and
// returns the identifier of the transaction. A [cost] of 0 is replaced by
// the network cost of the transaction plus a margin.
func (s *Service) Send(
	ctx context.Context,
	w wallet.ConnectedWallet,
	address ids.Address,
	rpc []byte,
	cost uint64,
	observer status.Observer,
) (ids.ID, error) {
	if cost == 0 {
		cost = EstimateCost(rpc)
	}
	payload := wallet.Payload{
		Address: address,
		RPC:     rpc,
	}
	if observer != nil {
		observer.Start()
	}
	result, err := s.sendAndVerify(ctx, w, payload, cost)
	if observer != nil {
		if err != nil {
			observer.Failed(err.Error())
		} else {
			observer.Success(result.TransactionHash.String())
		}
	}
	if err != nil {
		if result.PutSuccessful {
			return result.TransactionHash, fmt.Errorf("transaction %s failed: %w", result.TransactionHash, err)
		}
		return ids.Empty, err
	}
	s.log.Info("transaction finalized",
		zap.Stringer("txHash", result.TransactionHash),
		zap.String("shard", result.Shard),
		zap.Stringer("contract", address),
	)
	return result.TransactionHash, nil
}

// sendAndVerify reports the transaction as finalized only once every node of
// its finalized tree was fetched again and found successful.
func (s *Service) sendAndVerify(ctx context.Context, w wallet.ConnectedWallet, payload wallet.Payload, cost uint64) (wallet.SubmitResult, error) {
	result, err := s.tracker.SendAndWait(ctx, w, payload, cost, nil)
	if err != nil {
		return result, err
	}
	return result, s.tracker.Verify(ctx, finality.Pointer{
		Shard:      result.Shard,
		Identifier: result.TransactionHash,
	})
}

// EstimateCost is the network cost, with a margin, of a signed transaction
// carrying [rpc].
func EstimateCost(rpc []byte) uint64 {
	// signature, inner transaction, address, length prefixed rpc
	size := secp256k1.SignatureLen + tx.InnerLen + ids.AddressLen + wrappers.IntLen + len(rpc)
	return tx.WithMargin(tx.NetworkCost(size))
}
