// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/chainsdk/utils/logging"
)

// Caller is the transport a Request is submitted over. *rpc.Client
// implements it.
type Caller interface {
	BatchCallContext(ctx context.Context, b []rpc.BatchElem) error
}

// Call is a single JSON-RPC request.
type Call struct {
	Method string
	Args   []interface{}
}

// SuccessFunc receives the raw JSON result of a call.
type SuccessFunc func(ctx context.Context, result json.RawMessage) error

// ErrorFunc receives the failure of a call. It is never called for the
// transport failure of the whole batch.
type ErrorFunc func(err error)

type pendingCall struct {
	id        uuid.UUID
	call      Call
	onSuccess SuccessFunc
	onError   ErrorFunc
}

type Option func(*Request)

// WithMetrics reports batch activity to [m].
func WithMetrics(m *Metrics) Option {
	return func(r *Request) {
		r.metrics = m
	}
}

// WithDefaultErrorHandler is used for calls added without their own error
// handler. By default such failures are logged.
func WithDefaultErrorHandler(f ErrorFunc) Option {
	return func(r *Request) {
		r.defaultOnError = f
	}
}

// WithCallbackLimit bounds the number of callbacks run at once. Zero or
// negative means unbounded.
func WithCallbackLimit(limit int) Option {
	return func(r *Request) {
		r.callbackLimit = limit
	}
}

// Request collects calls and submits them in a single round trip. A Request
// can be executed once; calls made afterwards must go into a new Request.
type Request struct {
	log            logging.Logger
	caller         Caller
	metrics        *Metrics
	defaultOnError ErrorFunc
	callbackLimit  int

	lock     sync.Mutex
	calls    []*pendingCall
	ids      map[uuid.UUID]struct{}
	executed bool
}

func NewRequest(caller Caller, log logging.Logger, options ...Option) *Request {
	r := &Request{
		log:    log,
		caller: caller,
		ids:    make(map[uuid.UUID]struct{}),
	}
	for _, option := range options {
		option(r)
	}
	if r.defaultOnError == nil {
		r.defaultOnError = func(err error) {
			r.log.Warn("batched call failed",
				zap.Error(err),
			)
		}
	}
	return r
}

// Add queues [call]. Nothing is sent until Execute. A call whose arguments
// cannot be encoded is rejected through its error handler and not queued.
func (r *Request) Add(call Call, onSuccess SuccessFunc, onError ErrorFunc) (uuid.UUID, error) {
	r.lock.Lock()
	if r.executed {
		r.lock.Unlock()
		return uuid.Nil, errAlreadyExecuted
	}
	if onError == nil {
		onError = r.defaultOnError
	}

	id := r.newID()
	callErr := validate(id, call)
	if callErr == nil {
		r.ids[id] = struct{}{}
		r.calls = append(r.calls, &pendingCall{
			id:        id,
			call:      call,
			onSuccess: onSuccess,
			onError:   onError,
		})
	}
	r.lock.Unlock()

	// handlers may use the request again
	if callErr != nil {
		onError(callErr)
	}
	return id, nil
}

func validate(id uuid.UUID, call Call) *CallError {
	if call.Method == "" {
		return &CallError{ID: id, Err: fmt.Errorf("%w: missing method", ErrMalformedCall)}
	}
	if _, err := json.Marshal(call.Args); err != nil {
		return &CallError{ID: id, Method: call.Method, Err: fmt.Errorf("%w: %w", ErrMalformedCall, err)}
	}
	return nil
}

// Assumes [r.lock] is held
func (r *Request) newID() uuid.UUID {
	for {
		id := uuid.New()
		if _, ok := r.ids[id]; !ok {
			return id
		}
	}
}

// Len returns the number of queued calls.
func (r *Request) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()

	return len(r.calls)
}

// Execute submits every queued call in one transport round trip and then runs
// the handler of each call concurrently. Execute returns once every handler
// has returned.
//
// An empty Request returns immediately without touching the transport. The
// returned error is either the failure of the whole batch or the first error
// returned by a success handler.
func (r *Request) Execute(ctx context.Context, timeout time.Duration) error {
	r.lock.Lock()
	if r.executed {
		r.lock.Unlock()
		return errAlreadyExecuted
	}
	r.executed = true
	calls := r.calls
	r.calls = nil
	r.lock.Unlock()

	if len(calls) == 0 {
		return nil
	}

	elems := make([]rpc.BatchElem, len(calls))
	results := make([]json.RawMessage, len(calls))
	for i, c := range calls {
		elems[i] = rpc.BatchElem{
			Method: c.call.Method,
			Args:   c.call.Args,
			Result: &results[i],
		}
	}

	start := time.Now()
	if err := r.submit(ctx, timeout, elems); err != nil {
		return err
	}
	if r.metrics != nil {
		r.metrics.batches.Inc()
		r.metrics.calls.Add(float64(len(calls)))
		r.metrics.latency.Observe(time.Since(start).Seconds())
	}
	r.log.Debug("batch answered",
		zap.Int("numCalls", len(calls)),
		zap.Duration("duration", time.Since(start)),
	)

	var eg errgroup.Group
	if r.callbackLimit > 0 {
		eg.SetLimit(r.callbackLimit)
	}
	for i, c := range calls {
		var (
			c      = c
			elem   = elems[i]
			result = results[i]
		)
		eg.Go(func() error {
			if err := classify(c, elem, result); err != nil {
				if r.metrics != nil {
					r.metrics.callFailures.Inc()
				}
				c.onError(err)
				return nil
			}
			if c.onSuccess == nil {
				return nil
			}
			if err := c.onSuccess(ctx, result); err != nil {
				return fmt.Errorf("%s call %s: %w", c.call.Method, c.id, err)
			}
			return nil
		})
	}
	return eg.Wait()
}

func (r *Request) submit(ctx context.Context, timeout time.Duration, elems []rpc.BatchElem) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err := r.caller.BatchCallContext(ctx, elems)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w after %s: %w", ErrTimeout, timeout, err)
	default:
		return fmt.Errorf("batch of %d calls failed: %w", len(elems), err)
	}
}

var emptyHex = []byte(`"0x"`)

// classify returns the per-call failure described by a batch element, if
// any.
func classify(c *pendingCall, elem rpc.BatchElem, result json.RawMessage) error {
	if elem.Error != nil {
		callErr := &CallError{
			ID:      c.id,
			Method:  c.call.Method,
			Message: elem.Error.Error(),
			Err:     elem.Error,
		}
		var rpcErr rpc.Error
		if errors.As(elem.Error, &rpcErr) {
			callErr.Code = rpcErr.ErrorCode()
		}
		var dataErr rpc.DataError
		if errors.As(elem.Error, &dataErr) {
			callErr.Data = dataErr.ErrorData()
		}
		return callErr
	}
	switch trimmed := bytes.TrimSpace(result); {
	case len(trimmed) == 0:
		return &CallError{ID: c.id, Method: c.call.Method, Err: ErrMissingResult}
	case bytes.Equal(trimmed, emptyHex):
		return &CallError{ID: c.id, Method: c.call.Method, Err: ErrEmptyResponse}
	default:
		return nil
	}
}
