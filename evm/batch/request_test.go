// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/chainsdk/utils/logging"
)

var errRevert = errors.New("execution reverted")

// countingCaller records every transport round trip.
type countingCaller struct {
	calls  atomic.Int32
	handle func(ctx context.Context, elems []rpc.BatchElem) error
}

func (c *countingCaller) BatchCallContext(ctx context.Context, elems []rpc.BatchElem) error {
	c.calls.Add(1)
	return c.handle(ctx, elems)
}

// revertError mimics the error object of a node rejecting a call.
type revertError struct{}

func (revertError) Error() string          { return errRevert.Error() }
func (revertError) ErrorCode() int         { return 3 }
func (revertError) ErrorData() interface{} { return "0x08c379a0" }

// echoService is served over an in-process go-ethereum RPC server under the
// "eth" namespace.
type echoService struct{}

func (echoService) Call(args map[string]interface{}, _ string) (hexutil.Bytes, error) {
	to, _ := args["to"].(string)
	switch to {
	case "fail":
		return nil, revertError{}
	case "empty":
		return hexutil.Bytes{}, nil
	default:
		return hexutil.Bytes(to), nil
	}
}

func newInProcClient(t *testing.T) *rpc.Client {
	t.Helper()
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", echoService{}))
	client := rpc.DialInProc(server)
	t.Cleanup(func() {
		client.Close()
		server.Stop()
	})
	return client
}

func ethCall(to string) Call {
	return Call{
		Method: "eth_call",
		Args:   []interface{}{map[string]interface{}{"to": to}, "latest"},
	}
}

func TestEmptyBatchSkipsTransport(t *testing.T) {
	require := require.New(t)

	caller := &countingCaller{handle: func(context.Context, []rpc.BatchElem) error {
		return nil
	}}
	r := NewRequest(caller, logging.NoLog{})
	require.NoError(r.Execute(context.Background(), time.Second))
	require.Zero(caller.calls.Load())
}

func TestBatchIsolatesFailingCall(t *testing.T) {
	require := require.New(t)

	const (
		numCalls = 5
		failing  = 2
	)

	client := newInProcClient(t)
	r := NewRequest(client, logging.NoLog{})

	var (
		lock      sync.Mutex
		successes = map[int]string{}
		failures  = map[int]error{}
	)
	for i := 0; i < numCalls; i++ {
		i := i
		to := fmt.Sprintf("call-%d", i)
		if i == failing {
			to = "fail"
		}
		_, err := r.Add(
			ethCall(to),
			func(_ context.Context, result json.RawMessage) error {
				var b hexutil.Bytes
				if err := json.Unmarshal(result, &b); err != nil {
					return err
				}
				lock.Lock()
				defer lock.Unlock()
				successes[i] = string(b)
				return nil
			},
			func(err error) {
				lock.Lock()
				defer lock.Unlock()
				failures[i] = err
			},
		)
		require.NoError(err)
	}
	require.Equal(numCalls, r.Len())

	require.NoError(r.Execute(context.Background(), time.Second))

	require.Len(successes, numCalls-1)
	require.Len(failures, 1)
	for i := 0; i < numCalls; i++ {
		if i == failing {
			continue
		}
		require.Equal(fmt.Sprintf("call-%d", i), successes[i])
	}

	var callErr *CallError
	require.True(errors.As(failures[failing], &callErr))
	require.Equal("eth_call", callErr.Method)
	require.Equal(3, callErr.Code)
	require.Equal("0x08c379a0", callErr.Data)
	require.Contains(callErr.Message, errRevert.Error())
}

func TestBatchEmptyHexIsPerCallFailure(t *testing.T) {
	require := require.New(t)

	client := newInProcClient(t)
	r := NewRequest(client, logging.NoLog{})

	var (
		emptyErr  error
		succeeded atomic.Bool
	)
	_, err := r.Add(ethCall("empty"), nil, func(err error) { emptyErr = err })
	require.NoError(err)
	_, err = r.Add(ethCall("ok"), func(context.Context, json.RawMessage) error {
		succeeded.Store(true)
		return nil
	}, nil)
	require.NoError(err)

	require.NoError(r.Execute(context.Background(), time.Second))
	require.ErrorIs(emptyErr, ErrEmptyResponse)
	require.True(succeeded.Load())
}

func TestBatchSuccessHandlerErrorDoesNotStopSiblings(t *testing.T) {
	require := require.New(t)

	client := newInProcClient(t)
	r := NewRequest(client, logging.NoLog{})

	errDecode := errors.New("decode failed")
	var ran atomic.Int32
	for i := 0; i < 4; i++ {
		i := i
		_, err := r.Add(ethCall(fmt.Sprintf("v%d", i)), func(context.Context, json.RawMessage) error {
			ran.Add(1)
			if i == 0 {
				return errDecode
			}
			return nil
		}, nil)
		require.NoError(err)
	}

	err := r.Execute(context.Background(), time.Second)
	require.ErrorIs(err, errDecode)
	require.Equal(int32(4), ran.Load())
}

func TestBatchTransportTimeout(t *testing.T) {
	require := require.New(t)

	caller := &countingCaller{handle: func(ctx context.Context, _ []rpc.BatchElem) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	r := NewRequest(caller, logging.NoLog{})

	called := false
	_, err := r.Add(ethCall("slow"), func(context.Context, json.RawMessage) error {
		called = true
		return nil
	}, func(error) {
		called = true
	})
	require.NoError(err)

	err = r.Execute(context.Background(), 10*time.Millisecond)
	require.ErrorIs(err, ErrTimeout)
	require.False(called)
	require.Equal(int32(1), caller.calls.Load())
}

func TestBatchExecutesOnce(t *testing.T) {
	require := require.New(t)

	caller := &countingCaller{handle: func(_ context.Context, elems []rpc.BatchElem) error {
		for _, elem := range elems {
			*elem.Result.(*json.RawMessage) = json.RawMessage(`"0x01"`)
		}
		return nil
	}}
	r := NewRequest(caller, logging.NoLog{})
	_, err := r.Add(ethCall("a"), nil, nil)
	require.NoError(err)

	require.NoError(r.Execute(context.Background(), time.Second))
	require.ErrorIs(r.Execute(context.Background(), time.Second), errAlreadyExecuted)

	_, err = r.Add(ethCall("b"), nil, nil)
	require.ErrorIs(err, errAlreadyExecuted)
	require.Equal(int32(1), caller.calls.Load())
}

func TestBatchMissingResult(t *testing.T) {
	require := require.New(t)

	caller := &countingCaller{handle: func(context.Context, []rpc.BatchElem) error {
		return nil
	}}
	var got error
	r := NewRequest(caller, logging.NoLog{}, WithDefaultErrorHandler(func(err error) {
		got = err
	}))
	_, err := r.Add(ethCall("a"), nil, nil)
	require.NoError(err)

	require.NoError(r.Execute(context.Background(), time.Second))
	require.ErrorIs(got, ErrMissingResult)
}

func TestBatchMalformedCallRoutedToHandler(t *testing.T) {
	require := require.New(t)

	caller := &countingCaller{handle: func(context.Context, []rpc.BatchElem) error {
		return nil
	}}
	r := NewRequest(caller, logging.NoLog{})

	var got error
	_, err := r.Add(Call{Method: "eth_call", Args: []interface{}{make(chan int)}}, nil, func(err error) {
		got = err
	})
	require.NoError(err)
	require.ErrorIs(got, ErrMalformedCall)
	require.Zero(r.Len())

	require.NoError(r.Execute(context.Background(), time.Second))
	require.Zero(caller.calls.Load())
}

func TestBatchErrorHandlerMayUseRequest(t *testing.T) {
	require := require.New(t)

	caller := &countingCaller{handle: func(_ context.Context, elems []rpc.BatchElem) error {
		for _, elem := range elems {
			*elem.Result.(*json.RawMessage) = json.RawMessage(`"0x01"`)
		}
		return nil
	}}
	r := NewRequest(caller, logging.NoLog{})

	var (
		queued int
		done   = make(chan struct{})
	)
	go func() {
		defer close(done)
		_, _ = r.Add(Call{}, nil, func(error) {
			queued = r.Len()
			_, _ = r.Add(ethCall("a"), nil, nil)
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.FailNow("Add blocked while running the error handler")
	}
	require.Zero(queued)
	require.Equal(1, r.Len())
}

func TestBatchMetrics(t *testing.T) {
	require := require.New(t)

	registry := prometheus.NewRegistry()
	m, err := NewMetrics("batch", registry)
	require.NoError(err)

	client := newInProcClient(t)
	r := NewRequest(client, logging.NoLog{}, WithMetrics(m), WithCallbackLimit(1))
	_, err = r.Add(ethCall("fail"), nil, func(error) {})
	require.NoError(err)
	_, err = r.Add(ethCall("ok"), nil, nil)
	require.NoError(err)
	require.NoError(r.Execute(context.Background(), time.Second))

	families, err := registry.Gather()
	require.NoError(err)
	values := map[string]float64{}
	for _, family := range families {
		metric := family.GetMetric()[0]
		if c := metric.GetCounter(); c != nil {
			values[family.GetName()] = c.GetValue()
		}
	}
	require.Equal(1.0, values["batch_batches"])
	require.Equal(2.0, values["batch_calls"])
	require.Equal(1.0, values["batch_call_failures"])
}
