// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ava-labs/chainsdk/chains"
	"github.com/ava-labs/chainsdk/evm/batch"
	"github.com/ava-labs/chainsdk/evm/connection"
	"github.com/ava-labs/chainsdk/utils/logging"
)

// Clients hands out the read client of a chain. *connection.Manager
// implements it.
type Clients interface {
	Client(ctx context.Context, chain *chains.Descriptor) (*connection.Client, error)
}

// Contract binds a Catalog to the chain clients used to call it.
type Contract struct {
	*Catalog

	log       logging.Logger
	clients   Clients
	instances *connection.Registry[*Instance]
}

func New(abiJSON []byte, clients Clients, log logging.Logger) (*Contract, error) {
	catalog, err := Parse(abiJSON)
	if err != nil {
		return nil, err
	}
	log.Debug("parsed contract catalog",
		zap.Int("numViews", len(catalog.Views)),
		zap.Int("numMethods", len(catalog.Methods)),
	)
	return &Contract{
		Catalog:   catalog,
		log:       log,
		clients:   clients,
		instances: connection.NewRegistry[*Instance](),
	}, nil
}

// Call runs the view [name] of the contract at [addr] on [chain].
func (c *Contract) Call(
	ctx context.Context,
	chain *chains.Descriptor,
	addr common.Address,
	name string,
	args Args,
) ([]interface{}, error) {
	view, err := c.View(name)
	if err != nil {
		return nil, err
	}
	client, err := c.clients.Client(ctx, chain)
	if err != nil {
		return nil, err
	}
	return view.Call(ctx, client.Eth, addr, args)
}

// Batch queues the view [name] of the contract at [addr] on [req].
func (c *Contract) Batch(
	req *batch.Request,
	addr common.Address,
	name string,
	args Args,
	onSuccess ResultFunc,
	onError batch.ErrorFunc,
) (uuid.UUID, error) {
	view, err := c.View(name)
	if err != nil {
		return uuid.Nil, err
	}
	return view.Batch(req, addr, args, onSuccess, onError)
}

// EstimateGas returns the raw gas estimate of the method [name].
func (c *Contract) EstimateGas(
	ctx context.Context,
	chain *chains.Descriptor,
	addr common.Address,
	name string,
	args Args,
	from common.Address,
) (decimal.Decimal, error) {
	method, err := c.Method(name)
	if err != nil {
		return decimal.Zero, err
	}
	client, err := c.clients.Client(ctx, chain)
	if err != nil {
		return decimal.Zero, err
	}
	return method.EstimateGas(ctx, client.Eth, addr, args, from)
}

// ReadOnlyInstance returns the views of the contract at [addr] on [chain].
// One Instance exists per chain and address.
func (c *Contract) ReadOnlyInstance(chain *chains.Descriptor, addr common.Address) *Instance {
	key := connection.Key{
		ChainID: chain.ID,
		Address: addr,
	}
	_, instance, _ := c.instances.Intern(key, func() (*Instance, error) {
		return &Instance{
			contract: c,
			chain:    chain,
			address:  addr,
		}, nil
	})
	return instance
}

// Instance is a Contract with the chain and address fixed.
type Instance struct {
	contract *Contract
	chain    *chains.Descriptor
	address  common.Address
}

func (i *Instance) Chain() *chains.Descriptor {
	return i.chain
}

func (i *Instance) Address() common.Address {
	return i.address
}

func (i *Instance) Call(ctx context.Context, name string, args Args) ([]interface{}, error) {
	return i.contract.Call(ctx, i.chain, i.address, name, args)
}

func (i *Instance) Batch(
	req *batch.Request,
	name string,
	args Args,
	onSuccess ResultFunc,
	onError batch.ErrorFunc,
) (uuid.UUID, error) {
	return i.contract.Batch(req, i.address, name, args, onSuccess, onError)
}
