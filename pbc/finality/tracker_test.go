// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package finality

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/chainsdk/ids"
	"github.com/ava-labs/chainsdk/pbc/client"
	"github.com/ava-labs/chainsdk/pbc/wallet"
	"github.com/ava-labs/chainsdk/utils/logging"
	"github.com/ava-labs/chainsdk/wallet/status"
)

var (
	root        = Pointer{Shard: "Shard0", Identifier: ids.ID{0x01}}
	childA      = Pointer{Shard: "Shard1", Identifier: ids.ID{0x0a}}
	childB      = Pointer{Shard: "Shard2", Identifier: ids.ID{0x0b}}
	grandchildA = Pointer{Shard: "Shard2", Identifier: ids.ID{0xa1}}

	errTransport = errors.New("connection reset")
)

type record struct {
	events []Pointer
	// foundAfter is the number of polls answered with 404 first.
	foundAfter int
	// transportErrors is the number of polls failing before any answer.
	transportErrors int
	failed          bool
	never           bool
}

// fakeChain answers executed transaction lookups from a fixed tree.
type fakeChain struct {
	t       *testing.T
	lock    sync.Mutex
	records map[Pointer]*record
	polls   map[Pointer]int
}

func newFakeChain(t *testing.T, records map[Pointer]*record) *fakeChain {
	return &fakeChain{
		t:       t,
		records: records,
		polls:   make(map[Pointer]int),
	}
}

func (f *fakeChain) client(ctrl *gomock.Controller) client.Client {
	c := client.NewMockClient(ctrl)
	c.EXPECT().GetExecutedTransaction(gomock.Any(), gomock.Any(), gomock.Any(), true).DoAndReturn(f.get).AnyTimes()
	return c
}

func (f *fakeChain) get(_ context.Context, shard string, id ids.ID, _ bool) (client.Response[client.ExecutedTransaction], error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	p := Pointer{Shard: shard, Identifier: id}
	f.polls[p]++
	r, ok := f.records[p]
	if !ok {
		f.t.Errorf("unexpected lookup of %s", p)
		return client.Response[client.ExecutedTransaction]{StatusCode: http.StatusNotFound}, nil
	}
	polls := f.polls[p]
	if polls <= r.transportErrors {
		return client.Response[client.ExecutedTransaction]{}, errTransport
	}
	if r.never || polls <= r.transportErrors+r.foundAfter {
		return client.Response[client.ExecutedTransaction]{StatusCode: http.StatusNotFound}, nil
	}

	executed := &client.ExecutedTransaction{
		Identifier:         id,
		ExecutionSucceeded: !r.failed,
		Finalized:          true,
	}
	if r.failed {
		executed.FailureCause = &client.FailureCause{
			ErrorMessage: "out of gas",
			StackTrace:   "at contract",
		}
	}
	for _, event := range r.events {
		executed.Events = append(executed.Events, client.EventPointer{
			Identifier:       event.Identifier,
			DestinationShard: event.Shard,
		})
	}
	return client.Response[client.ExecutedTransaction]{
		StatusCode: http.StatusOK,
		Data:       executed,
	}, nil
}

func (f *fakeChain) pollsOf(p Pointer) int {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.polls[p]
}

func testConfig(policy Policy) Config {
	config := DefaultConfig()
	config.Budget = time.Second
	config.Delay = time.Millisecond
	config.Policy = policy
	return config
}

func newTestTracker(t *testing.T, c client.Client, config Config, options ...Option) *Tracker {
	tracker, err := New(logging.NoLog{}, c, config, options...)
	require.NoError(t, err)
	return tracker
}

func successTree() map[Pointer]*record {
	return map[Pointer]*record{
		root:        {events: []Pointer{childA, childB}},
		childA:      {events: []Pointer{grandchildA}},
		childB:      {},
		grandchildA: {foundAfter: 3},
	}
}

func TestWaitFollowsEventTree(t *testing.T) {
	for _, policy := range []Policy{Parallel, DepthFirst} {
		t.Run(policy.String(), func(t *testing.T) {
			require := require.New(t)
			ctrl := gomock.NewController(t)

			chain := newFakeChain(t, successTree())
			tracker := newTestTracker(t, chain.client(ctrl), testConfig(policy))

			require.NoError(tracker.Wait(context.Background(), root))
			require.Equal(1, chain.pollsOf(root))
			require.Equal(1, chain.pollsOf(childA))
			require.Equal(1, chain.pollsOf(childB))
			// three misses and then the hit
			require.Equal(4, chain.pollsOf(grandchildA))
		})
	}
}

func TestWaitFailureCitesFailedChild(t *testing.T) {
	tests := []struct {
		policy Policy
		childA *record
	}{
		{
			// the parallel walk does not wait for a child that never shows up
			policy: Parallel,
			childA: &record{never: true},
		},
		{
			policy: DepthFirst,
			childA: &record{},
		},
	}
	for _, test := range tests {
		t.Run(test.policy.String(), func(t *testing.T) {
			require := require.New(t)
			ctrl := gomock.NewController(t)

			chain := newFakeChain(t, map[Pointer]*record{
				root:   {events: []Pointer{childA, childB}},
				childA: test.childA,
				childB: {failed: true},
			})
			config := testConfig(test.policy)
			config.Budget = time.Minute
			tracker := newTestTracker(t, chain.client(ctrl), config)

			err := tracker.Wait(context.Background(), root)
			require.ErrorIs(err, ErrFailed)

			var failed *FailedError
			require.ErrorAs(err, &failed)
			require.Equal(childB, failed.Pointer)
			require.Equal("out of gas", failed.Message)
			require.Equal("at contract", failed.StackTrace)
			require.Contains(err.Error(), `failed at shard "Shard2"`)
		})
	}
}

func TestWaitNotFinalized(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	chain := newFakeChain(t, map[Pointer]*record{
		root:   {events: []Pointer{childA}},
		childA: {never: true},
	})
	config := testConfig(Parallel)
	config.Budget = 3 * time.Millisecond
	tracker := newTestTracker(t, chain.client(ctrl), config)

	err := tracker.Wait(context.Background(), root)
	require.ErrorIs(err, ErrNotFinalized)

	var notFinalized *NotFinalizedError
	require.ErrorAs(err, &notFinalized)
	require.Equal(root, notFinalized.Submission)
	require.Equal(childA, notFinalized.Pointer)
	// the first poll and three retries
	require.Equal(4, chain.pollsOf(childA))
}

func TestWaitRetriesTransportErrors(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	chain := newFakeChain(t, map[Pointer]*record{
		root: {transportErrors: 2},
	})
	tracker := newTestTracker(t, chain.client(ctrl), testConfig(DepthFirst))

	require.NoError(tracker.Wait(context.Background(), root))
	require.Equal(3, chain.pollsOf(root))
}

func TestWaitCancelled(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	chain := newFakeChain(t, map[Pointer]*record{
		root: {never: true},
	})
	config := testConfig(Parallel)
	config.Budget = time.Hour
	config.Delay = 10 * time.Millisecond
	tracker := newTestTracker(t, chain.client(ctrl), config)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.ErrorIs(tracker.Wait(ctx, root), context.DeadlineExceeded)
}

func TestWaitBounds(t *testing.T) {
	t.Run("nodes", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		chain := newFakeChain(t, successTree())
		config := testConfig(DepthFirst)
		config.MaxNodes = 2
		tracker := newTestTracker(t, chain.client(ctrl), config)

		require.ErrorIs(t, tracker.Wait(context.Background(), root), errTooManyNodes)
	})
	t.Run("depth", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		chain := newFakeChain(t, successTree())
		config := testConfig(Parallel)
		config.MaxDepth = 1
		tracker := newTestTracker(t, chain.client(ctrl), config)

		require.ErrorIs(t, tracker.Wait(context.Background(), root), errTooDeep)
	})
}

func TestSendAndWait(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	chain := newFakeChain(t, successTree())
	tracker := newTestTracker(t, chain.client(ctrl), testConfig(Parallel))

	payload := wallet.Payload{
		Address: ids.Address{byte(ids.PublicContractAddress)},
		RPC:     []byte{0x01},
	}
	submitted := wallet.SubmitResult{
		PutSuccessful:   true,
		Shard:           root.Shard,
		TransactionHash: root.Identifier,
	}
	w := wallet.NewMockConnectedWallet(ctrl)
	w.EXPECT().SignAndSendTransaction(gomock.Any(), payload, uint64(1000)).Return(submitted, nil)

	observer := status.NewTracker(logging.NoLog{}, nil)
	result, err := tracker.SendAndWait(context.Background(), w, payload, 1000, observer)
	require.NoError(err)
	require.Equal(submitted, result)
	require.Equal(status.State{
		LastResult:      true,
		LastTransaction: root.Identifier.String(),
	}, observer.State())
	require.Equal(4, chain.pollsOf(grandchildA))
}

func TestSendAndWaitRejected(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	// no lookups are expected
	c := client.NewMockClient(ctrl)
	tracker := newTestTracker(t, c, testConfig(Parallel))

	w := wallet.NewMockConnectedWallet(ctrl)
	w.EXPECT().SignAndSendTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(wallet.SubmitResult{}, nil)

	observer := status.NewTracker(logging.NoLog{}, nil)
	_, err := tracker.SendAndWait(context.Background(), w, wallet.Payload{}, 0, observer)
	require.ErrorIs(err, ErrSubmissionRejected)
	require.Equal(status.State{}, observer.State())
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		records map[Pointer]*record
		err     error
	}{
		{
			name: "success",
			records: map[Pointer]*record{
				root:   {events: []Pointer{childA}},
				childA: {},
			},
		},
		{
			name: "missing transaction",
			records: map[Pointer]*record{
				root: {never: true},
			},
			err: ErrTransactionNotFound,
		},
		{
			name: "missing event",
			records: map[Pointer]*record{
				root:   {events: []Pointer{childA}},
				childA: {never: true},
			},
			err: ErrEventNotFound,
		},
		{
			name: "failed event",
			records: map[Pointer]*record{
				root:   {events: []Pointer{childA, childB}},
				childA: {},
				childB: {failed: true},
			},
			err: ErrFailed,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)
			ctrl := gomock.NewController(t)

			chain := newFakeChain(t, test.records)
			tracker := newTestTracker(t, chain.client(ctrl), testConfig(Parallel))

			err := tracker.Verify(context.Background(), root)
			require.ErrorIs(err, test.err)
			for p := range test.records {
				require.LessOrEqual(chain.pollsOf(p), 1)
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	registry := prometheus.NewRegistry()
	metrics, err := NewMetrics("finality", registry)
	require.NoError(err)

	chain := newFakeChain(t, map[Pointer]*record{
		root:   {events: []Pointer{childB}, foundAfter: 2},
		childB: {failed: true},
	})
	tracker := newTestTracker(t, chain.client(ctrl), testConfig(DepthFirst), WithMetrics(metrics))

	require.ErrorIs(tracker.Wait(context.Background(), root), ErrFailed)
	require.Equal(4.0, testutil.ToFloat64(metrics.polls))
	require.Equal(2.0, testutil.ToFloat64(metrics.notFound))
	require.Equal(1.0, testutil.ToFloat64(metrics.failures))
}

func TestConfig(t *testing.T) {
	require := require.New(t)

	config := DefaultConfig()
	require.NoError(config.Verify())
	require.Equal(300, config.MaxTries())

	config.Delay = 0
	require.ErrorIs(config.Verify(), errInvalidDelay)

	config = DefaultConfig()
	config.Budget = time.Millisecond
	require.ErrorIs(config.Verify(), errInvalidBudget)

	config = DefaultConfig()
	config.MaxNodes = 0
	require.ErrorIs(config.Verify(), errInvalidBounds)

	config = DefaultConfig()
	config.Policy = Policy(7)
	require.ErrorIs(config.Verify(), errUnknownPolicy)
}

func TestParsePolicy(t *testing.T) {
	require := require.New(t)

	for _, policy := range []Policy{Parallel, DepthFirst} {
		parsed, err := ParsePolicy(policy.String())
		require.NoError(err)
		require.Equal(policy, parsed)
	}

	var policy Policy
	require.NoError(policy.UnmarshalText([]byte("Depth-First")))
	require.Equal(DepthFirst, policy)

	_, err := ParsePolicy("breadth-first")
	require.ErrorIs(err, errUnknownPolicy)
}

func TestPollRateLimit(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	chain := newFakeChain(t, successTree())
	config := testConfig(Parallel)
	config.PollRate = 1000
	config.PollBurst = 2
	tracker := newTestTracker(t, chain.client(ctrl), config)
	require.NotNil(tracker.limiter)

	require.NoError(tracker.Wait(context.Background(), root))
}
