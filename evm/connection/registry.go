// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package connection

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ava-labs/chainsdk/utils"
)

// Key identifies a contract on a chain.
type Key struct {
	ChainID uint64
	Address common.Address
}

// Handle is a stable index into a Registry.
type Handle uint32

// Registry interns one value per Key. Values are stored in an append-only
// arena and addressed by Handle; a Handle stays valid for the lifetime of the
// Registry.
type Registry[V any] struct {
	lock  sync.RWMutex
	index map[Key]Handle
	keys  []Key
	arena []V
}

func NewRegistry[V any]() *Registry[V] {
	return &Registry[V]{
		index: make(map[Key]Handle),
	}
}

// Intern returns the value registered for [key], building and registering it
// first if needed. [build] is called at most once per key.
func (r *Registry[V]) Intern(key Key, build func() (V, error)) (Handle, V, error) {
	r.lock.RLock()
	h, ok := r.index[key]
	if ok {
		v := r.arena[h]
		r.lock.RUnlock()
		return h, v, nil
	}
	r.lock.RUnlock()

	r.lock.Lock()
	defer r.lock.Unlock()

	if h, ok := r.index[key]; ok {
		return h, r.arena[h], nil
	}
	v, err := build()
	if err != nil {
		return 0, utils.Zero[V](), err
	}
	h = Handle(len(r.arena))
	r.arena = append(r.arena, v)
	r.keys = append(r.keys, key)
	r.index[key] = h
	return h, v, nil
}

func (r *Registry[V]) Lookup(key Key) (Handle, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	h, ok := r.index[key]
	return h, ok
}

func (r *Registry[V]) Get(h Handle) (V, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if int(h) >= len(r.arena) {
		return utils.Zero[V](), false
	}
	return r.arena[h], true
}

func (r *Registry[V]) Key(h Handle) (Key, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if int(h) >= len(r.keys) {
		return Key{}, false
	}
	return r.keys[h], true
}

func (r *Registry[V]) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.arena)
}
