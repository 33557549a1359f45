// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tx implements the binary transaction format of the sharded chain.
package tx

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ava-labs/chainsdk/ids"
	"github.com/ava-labs/chainsdk/utils/wrappers"
)

const (
	// InnerLen is the size of the nonce, validTo and cost header.
	InnerLen = 3 * wrappers.LongLen

	// DefaultTTL is how long a signed transaction stays valid.
	DefaultTTL = 300 * time.Second

	maxTxSize = 10 * 1024 * 1024
)

var errTrailingBytes = errors.New("trailing bytes after transaction")

// Inner is the replay protection and fee header of a transaction.
type Inner struct {
	Nonce uint64
	// ValidTo is a unix timestamp in milliseconds.
	ValidTo uint64
	Cost    uint64
}

// Transaction is an unsigned transaction to [Address].
type Transaction struct {
	Inner
	Address ids.Address
	RPC     []byte
}

// Bytes returns the serialized transaction:
//
//	nonce (8, BE) | validTo (8, BE) | cost (8, BE) | address (21) | len(rpc) (4, BE) | rpc
func (t *Transaction) Bytes() ([]byte, error) {
	p := wrappers.Packer{
		MaxSize: maxTxSize,
		Bytes:   make([]byte, 0, InnerLen+ids.AddressLen+wrappers.IntLen+len(t.RPC)),
	}
	p.PackLong(t.Nonce)
	p.PackLong(t.ValidTo)
	p.PackLong(t.Cost)
	p.PackFixedBytes(t.Address[:])
	p.PackLimitedBytes(t.RPC, math.MaxInt32)
	return p.Bytes, p.Err()
}

// Parse is the inverse of Transaction.Bytes.
func Parse(b []byte) (*Transaction, error) {
	p := wrappers.Packer{Bytes: b}
	t := &Transaction{
		Inner: Inner{
			Nonce:   p.UnpackLong(),
			ValidTo: p.UnpackLong(),
			Cost:    p.UnpackLong(),
		},
	}
	copy(t.Address[:], p.UnpackFixedBytes(ids.AddressLen))
	t.RPC = p.UnpackBytes()
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("couldn't parse transaction: %w", err)
	}
	if p.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d", errTrailingBytes, p.Remaining())
	}
	return t, nil
}

// ValidTo returns the expiry of a transaction signed at [now].
func ValidTo(now time.Time, ttl time.Duration) uint64 {
	return uint64(now.Add(ttl).UnixMilli())
}
