// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ava-labs/chainsdk/ids"
	"github.com/ava-labs/chainsdk/pbc/client"
	"github.com/ava-labs/chainsdk/utils/logging"
)

var errUnexpectedStatus = errors.New("unexpected status")

// Entry is a decoded key value pair of an AVL tree.
type Entry struct {
	Key   any
	Value any
}

// AvlReader reads one AVL tree of a contract. Keys are serialized with the
// key type before being sent, and returned bytes are decoded with the key
// and value types.
type AvlReader struct {
	log     logging.Logger
	client  client.Client
	address ids.Address
	treeID  AvlTreeID
	key     *TypeSpec
	value   *TypeSpec
}

// NewAvlReader returns a reader of the tree [treeID] owned by [address].
// [tree] must be an AvlTreeMap spec.
func NewAvlReader(
	log logging.Logger,
	c client.Client,
	address ids.Address,
	treeID AvlTreeID,
	tree *TypeSpec,
) (*AvlReader, error) {
	if tree == nil || tree.Kind != AvlTreeMap || tree.Key == nil || tree.Value == nil {
		return nil, fmt.Errorf("%w: expected AvlTreeMap but got %v", errMissingSpec, tree)
	}
	return &AvlReader{
		log:     log,
		client:  c,
		address: address,
		treeID:  treeID,
		key:     tree.Key,
		value:   tree.Value,
	}, nil
}

func (r *AvlReader) TreeID() AvlTreeID {
	return r.treeID
}

// Get returns the value stored under [key]. The second return value is false
// if the tree does not contain [key].
func (r *AvlReader) Get(ctx context.Context, key any) (any, bool, error) {
	keyBytes, err := Encode(r.key, key)
	if err != nil {
		return nil, false, fmt.Errorf("couldn't serialize key: %w", err)
	}
	resp, err := r.client.GetAvlValue(ctx, r.address, int32(r.treeID), keyBytes)
	if err != nil {
		return nil, false, err
	}
	switch {
	case resp.NotFound():
		return nil, false, nil
	case !resp.OK():
		return nil, false, fmt.Errorf("%w %d reading tree %d of %s", errUnexpectedStatus, resp.StatusCode, r.treeID, r.address)
	}
	value, err := Decode(r.value, resp.Data.Data)
	if err != nil {
		return nil, false, fmt.Errorf("couldn't decode value: %w", err)
	}
	return value, true, nil
}

// Size returns the number of entries in the tree.
func (r *AvlReader) Size(ctx context.Context) (int, error) {
	resp, err := r.client.GetAvlSize(ctx, r.address, int32(r.treeID))
	if err != nil {
		return 0, err
	}
	if !resp.OK() {
		return 0, fmt.Errorf("%w %d reading size of tree %d of %s", errUnexpectedStatus, resp.StatusCode, r.treeID, r.address)
	}
	return resp.Data.Size, nil
}

// First returns up to [n] entries from the start of the tree.
func (r *AvlReader) First(ctx context.Context, n int) ([]Entry, error) {
	return r.next(ctx, nil, n)
}

// Next returns up to [n] entries strictly after [from].
func (r *AvlReader) Next(ctx context.Context, from any, n int) ([]Entry, error) {
	keyBytes, err := Encode(r.key, from)
	if err != nil {
		return nil, fmt.Errorf("couldn't serialize key: %w", err)
	}
	return r.next(ctx, keyBytes, n)
}

// All returns every entry of the tree.
func (r *AvlReader) All(ctx context.Context) ([]Entry, error) {
	size, err := r.Size(ctx)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	return r.First(ctx, size)
}

func (r *AvlReader) next(ctx context.Context, from []byte, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	resp, err := r.client.GetAvlNext(ctx, r.address, int32(r.treeID), from, n)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w %d iterating tree %d of %s", errUnexpectedStatus, resp.StatusCode, r.treeID, r.address)
	}

	raw := *resp.Data
	entries := make([]Entry, len(raw))
	for i, e := range raw {
		k, err := Decode(r.key, e.Key)
		if err != nil {
			return nil, fmt.Errorf("couldn't decode key %d: %w", i, err)
		}
		v, err := Decode(r.value, e.Value)
		if err != nil {
			return nil, fmt.Errorf("couldn't decode value %d: %w", i, err)
		}
		entries[i] = Entry{
			Key:   k,
			Value: v,
		}
	}
	r.log.Debug("read tree entries",
		zap.Stringer("address", r.address),
		zap.Int32("treeID", int32(r.treeID)),
		zap.Int("count", len(entries)),
	)
	return entries, nil
}
