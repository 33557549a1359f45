// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package connection

import (
	"errors"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestRegistryInterns(t *testing.T) {
	require := require.New(t)

	r := NewRegistry[string]()
	token := common.HexToAddress("0x55d398326f99059fF775485246999027B3197955")
	bsc := Key{ChainID: 56, Address: token}
	bscTestnet := Key{ChainID: 97, Address: token}

	builds := 0
	build := func(v string) func() (string, error) {
		return func() (string, error) {
			builds++
			return v, nil
		}
	}

	h1, v, err := r.Intern(bsc, build("bsc"))
	require.NoError(err)
	require.Equal("bsc", v)

	h2, v, err := r.Intern(bscTestnet, build("testnet"))
	require.NoError(err)
	require.Equal("testnet", v)
	require.NotEqual(h1, h2)

	again, v, err := r.Intern(bsc, build("ignored"))
	require.NoError(err)
	require.Equal(h1, again)
	require.Equal("bsc", v)
	require.Equal(2, builds)

	got, ok := r.Get(h2)
	require.True(ok)
	require.Equal("testnet", got)

	key, ok := r.Key(h1)
	require.True(ok)
	require.Equal(bsc, key)

	h, ok := r.Lookup(bscTestnet)
	require.True(ok)
	require.Equal(h2, h)

	_, ok = r.Get(Handle(10))
	require.False(ok)
	_, ok = r.Key(Handle(10))
	require.False(ok)
	require.Equal(2, r.Len())
}

func TestRegistryBuildError(t *testing.T) {
	require := require.New(t)

	r := NewRegistry[int]()
	errBuild := errors.New("bad abi")
	_, _, err := r.Intern(Key{ChainID: 1}, func() (int, error) { return 0, errBuild })
	require.ErrorIs(err, errBuild)
	require.Zero(r.Len())
}

func TestRegistryConcurrentIntern(t *testing.T) {
	require := require.New(t)

	r := NewRegistry[int]()
	key := Key{ChainID: 137}

	var (
		wg      sync.WaitGroup
		lock    sync.Mutex
		handles = map[Handle]struct{}{}
	)
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, _, err := r.Intern(key, func() (int, error) { return i, nil })
			require.NoError(err)
			lock.Lock()
			handles[h] = struct{}{}
			lock.Unlock()
		}()
	}
	wg.Wait()
	require.Len(handles, 1)
	require.Equal(1, r.Len())
}
