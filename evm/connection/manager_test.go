// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package connection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/chainsdk/chains"
	"github.com/ava-labs/chainsdk/utils/logging"
)

var errRefused = errors.New("connection refused")

type chainIDService struct {
	id uint64
}

func (s chainIDService) ChainId() hexutil.Uint64 { //nolint:revive
	return hexutil.Uint64(s.id)
}

// inProcDialer serves a fake node per URL.
func inProcDialer(t *testing.T, nodes map[string]uint64, dials map[string]int) Dialer {
	t.Helper()
	return func(_ context.Context, url string) (*rpc.Client, error) {
		dials[url]++
		id, ok := nodes[url]
		if !ok {
			return nil, errRefused
		}
		server := rpc.NewServer()
		require.NoError(t, server.RegisterName("eth", chainIDService{id: id}))
		t.Cleanup(server.Stop)
		return rpc.DialInProc(server), nil
	}
}

func TestManagerFallsBackInOrder(t *testing.T) {
	require := require.New(t)

	chain := &chains.Descriptor{
		ID:  97,
		RPC: []string{"http://down", "http://wrong-chain", "http://good", "http://unused"},
	}
	dials := map[string]int{}
	m := NewManager(logging.NoLog{}, inProcDialer(t, map[string]uint64{
		"http://wrong-chain": 56,
		"http://good":        97,
		"http://unused":      97,
	}, dials))
	defer m.Close()

	c, err := m.Client(context.Background(), chain)
	require.NoError(err)
	require.Equal("http://good", c.URL)
	require.NotNil(c.Eth)
	require.Equal(map[string]int{"http://down": 1, "http://wrong-chain": 1, "http://good": 1}, dials)

	// Cached for subsequent lookups.
	c2, err := m.Client(context.Background(), chain)
	require.NoError(err)
	require.Same(c, c2)
	require.Equal(1, dials["http://good"])
}

func TestManagerNoReachableEndpoint(t *testing.T) {
	require := require.New(t)

	chain := &chains.Descriptor{ID: 1, RPC: []string{"http://a", "http://b"}}
	m := NewManager(logging.NoLog{}, inProcDialer(t, map[string]uint64{"http://b": 5}, map[string]int{}))

	_, err := m.Client(context.Background(), chain)
	require.ErrorIs(err, ErrNoReachableEndpoint)
	require.ErrorIs(err, errRefused)
	require.ErrorIs(err, errWrongChain)
}

func TestManagerRejectsShardedChains(t *testing.T) {
	m := NewManager(logging.NoLog{}, nil)
	_, err := m.Client(context.Background(), chains.PartisiaTestnet)
	require.ErrorIs(t, err, errNotEVM)
}

func TestManagerSlowChainDoesNotBlockOthers(t *testing.T) {
	require := require.New(t)

	var (
		entered = make(chan struct{})
		release = make(chan struct{})
		fast    = inProcDialer(t, map[string]uint64{"http://fast": 2}, map[string]int{})
	)
	m := NewManager(logging.NoLog{}, func(ctx context.Context, url string) (*rpc.Client, error) {
		if url == "http://slow" {
			close(entered)
			<-release
			return nil, errRefused
		}
		return fast(ctx, url)
	})
	defer m.Close()

	slowErr := make(chan error, 1)
	go func() {
		_, err := m.Client(context.Background(), &chains.Descriptor{ID: 1, RPC: []string{"http://slow"}})
		slowErr <- err
	}()
	<-entered

	done := make(chan error, 1)
	go func() {
		_, err := m.Client(context.Background(), &chains.Descriptor{ID: 2, RPC: []string{"http://fast"}})
		done <- err
	}()
	select {
	case err := <-done:
		require.NoError(err)
	case <-time.After(2 * time.Second):
		close(release)
		require.FailNow("lookup blocked behind another chain's dial")
	}

	close(release)
	require.ErrorIs(<-slowErr, ErrNoReachableEndpoint)
}

func TestManagerKeepsFirstStoredClient(t *testing.T) {
	require := require.New(t)

	chain := &chains.Descriptor{ID: 97, RPC: []string{"http://a", "http://b"}}
	dial := inProcDialer(t, map[string]uint64{"http://a": 97, "http://b": 97}, map[string]int{})
	m := NewManager(logging.NoLog{}, dial)
	defer m.Close()

	first, err := m.connect(context.Background(), chain, "http://a")
	require.NoError(err)
	second, err := m.connect(context.Background(), chain, "http://b")
	require.NoError(err)

	require.Same(first, m.store(first))
	require.Same(first, m.store(second))

	c, err := m.Client(context.Background(), chain)
	require.NoError(err)
	require.Same(first, c)
}
