// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"

	"github.com/ava-labs/chainsdk/evm/batch"
)

// ResultFunc receives the decoded return values of a view.
type ResultFunc func(ctx context.Context, values []interface{}) error

// callArgs is the transaction object of an eth_call.
type callArgs struct {
	To   common.Address `json:"to"`
	Data hexutil.Bytes  `json:"data"`
}

// View is a read-only function.
type View struct {
	function
}

// CallRaw performs one eth_call and returns the undecoded result.
func (v *View) CallRaw(ctx context.Context, caller ethereum.ContractCaller, addr common.Address, args Args) ([]byte, error) {
	data, err := v.Pack(args)
	if err != nil {
		return nil, err
	}
	return caller.CallContract(ctx, ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}, nil)
}

// Call performs one eth_call and decodes the result.
func (v *View) Call(ctx context.Context, caller ethereum.ContractCaller, addr common.Address, args Args) ([]interface{}, error) {
	raw, err := v.CallRaw(ctx, caller, addr, args)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 && len(v.method.Outputs) > 0 {
		return nil, fmt.Errorf("%s: %w", v.method.Sig, batch.ErrEmptyResponse)
	}
	return v.Unpack(raw)
}

// Batch queues the call on [req]. The decoded result is delivered to
// [onSuccess] once [req] is executed; a decode failure is returned from the
// execution of [req]. Arguments that cannot be encoded are reported
// immediately.
func (v *View) Batch(
	req *batch.Request,
	addr common.Address,
	args Args,
	onSuccess ResultFunc,
	onError batch.ErrorFunc,
) (uuid.UUID, error) {
	data, err := v.Pack(args)
	if err != nil {
		return uuid.Nil, err
	}
	call := batch.Call{
		Method: "eth_call",
		Args: []interface{}{
			callArgs{To: addr, Data: data},
			"latest",
		},
	}
	return req.Add(call, func(ctx context.Context, result json.RawMessage) error {
		var raw hexutil.Bytes
		if err := json.Unmarshal(result, &raw); err != nil {
			return fmt.Errorf("%s: %w", v.method.Sig, err)
		}
		values, err := v.Unpack(raw)
		if err != nil {
			return fmt.Errorf("couldn't decode %s: %w", v.method.Sig, err)
		}
		if onSuccess == nil {
			return nil
		}
		return onSuccess(ctx, values)
	}, onError)
}
