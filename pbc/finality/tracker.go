// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package finality follows a submitted transaction, and every event it
// spawned across shards, until all of them executed or one of them failed.
package finality

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ava-labs/chainsdk/pbc/client"
	"github.com/ava-labs/chainsdk/pbc/wallet"
	"github.com/ava-labs/chainsdk/utils/logging"
	"github.com/ava-labs/chainsdk/wallet/status"
)

type Option func(*Tracker)

func WithMetrics(m *Metrics) Option {
	return func(t *Tracker) {
		t.metrics = m
	}
}

type Tracker struct {
	log     logging.Logger
	config  Config
	client  client.Client
	limiter *rate.Limiter
	metrics *Metrics
}

func New(log logging.Logger, c client.Client, config Config, options ...Option) (*Tracker, error) {
	if err := config.Verify(); err != nil {
		return nil, err
	}
	t := &Tracker{
		log:    log,
		config: config,
		client: c,
	}
	if config.PollRate > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(config.PollRate), max(config.PollBurst, 1))
	}
	for _, option := range options {
		option(t)
	}
	return t, nil
}

// SendAndWait signs and submits [payload] through [w] and then waits until
// the transaction and every event it spawned executed successfully.
// [observer], if not nil, is told about the start and the outcome.
func (t *Tracker) SendAndWait(
	ctx context.Context,
	w wallet.ConnectedWallet,
	payload wallet.Payload,
	cost uint64,
	observer status.Observer,
) (wallet.SubmitResult, error) {
	if observer != nil {
		observer.Start()
	}
	result, err := t.sendAndWait(ctx, w, payload, cost)
	if observer != nil {
		if err != nil {
			observer.Failed(err.Error())
		} else {
			observer.Success(result.TransactionHash.String())
		}
	}
	return result, err
}

func (t *Tracker) sendAndWait(ctx context.Context, w wallet.ConnectedWallet, payload wallet.Payload, cost uint64) (wallet.SubmitResult, error) {
	result, err := w.SignAndSendTransaction(ctx, payload, cost)
	if err != nil {
		return result, err
	}
	if !result.PutSuccessful {
		return result, ErrSubmissionRejected
	}
	return result, t.Wait(ctx, Pointer{
		Shard:      result.Shard,
		Identifier: result.TransactionHash,
	})
}

// Wait polls [root] until it and every event it transitively spawned
// executed successfully. Every transaction and event gets its own polling
// budget.
func (t *Tracker) Wait(ctx context.Context, root Pointer) error {
	w := &walk{
		tracker: t,
		root:    root,
	}
	var err error
	switch t.config.Policy {
	case DepthFirst:
		err = w.depthFirst(ctx)
	default:
		err = w.parallel(ctx)
	}
	if err != nil {
		t.log.Debug("transaction did not finalize",
			zap.Stringer("root", root),
			zap.Error(err),
		)
		return err
	}
	t.log.Debug("transaction finalized",
		zap.Stringer("root", root),
		zap.Int32("nodes", w.nodes.Load()),
	)
	return nil
}

type node struct {
	pointer Pointer
	depth   int
}

func (n node) children(events []client.EventPointer) []node {
	children := make([]node, len(events))
	for i, event := range events {
		children[i] = node{
			pointer: Pointer{
				Shard:      event.DestinationShard,
				Identifier: event.Identifier,
			},
			depth: n.depth + 1,
		}
	}
	return children
}

// push adds [children] to [stack] so that the first child is popped first.
func push(stack, children []node) []node {
	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, children[i])
	}
	return stack
}

type walk struct {
	tracker *Tracker
	root    Pointer
	nodes   atomic.Int32
}

// visit accounts for [n] against the tree bounds.
func (w *walk) visit(n node) error {
	if n.depth > w.tracker.config.MaxDepth {
		return fmt.Errorf("%w: %s at depth %d", errTooDeep, n.pointer, n.depth)
	}
	if count := int(w.nodes.Add(1)); count > w.tracker.config.MaxNodes {
		return fmt.Errorf("%w: %d", errTooManyNodes, count)
	}
	return nil
}

func (w *walk) parallel(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	var follow func(n node)
	follow = func(n node) {
		eg.Go(func() error {
			if err := w.visit(n); err != nil {
				return err
			}
			executed, err := w.tracker.await(ctx, w.root, n.pointer)
			if err != nil {
				return err
			}
			for _, child := range n.children(executed.Events) {
				follow(child)
			}
			return nil
		})
	}
	follow(node{pointer: w.root})
	return eg.Wait()
}

func (w *walk) depthFirst(ctx context.Context) error {
	stack := []node{{pointer: w.root}}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := w.visit(n); err != nil {
			return err
		}

		executed, err := w.tracker.await(ctx, w.root, n.pointer)
		if err != nil {
			return err
		}
		stack = push(stack, n.children(executed.Events))
	}
	return nil
}

// await polls [p] until it is found. Transport errors are retried like a
// missing transaction.
func (t *Tracker) await(ctx context.Context, root, p Pointer) (*client.ExecutedTransaction, error) {
	maxTries := t.config.MaxTries()
	for try := 0; ; try++ {
		executed, found, err := t.poll(ctx, p)
		if err != nil {
			return nil, err
		}
		if found {
			return executed, nil
		}

		if try >= maxTries {
			return nil, &NotFinalizedError{
				Submission: root,
				Pointer:    p,
			}
		}
		if err := sleep(ctx, t.config.Delay); err != nil {
			return nil, err
		}
	}
}

// poll fetches [p] once. It returns an error only for an unsuccessful
// execution or a cancelled context.
func (t *Tracker) poll(ctx context.Context, p Pointer) (*client.ExecutedTransaction, bool, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, false, err
		}
	}
	if t.metrics != nil {
		t.metrics.polls.Inc()
	}

	resp, err := t.client.GetExecutedTransaction(ctx, p.Shard, p.Identifier, true)
	switch {
	case err != nil:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, false, ctxErr
		}
		t.log.Debug("failed to fetch executed transaction",
			zap.Stringer("pointer", p),
			zap.Error(err),
		)
	case resp.OK():
		if !resp.Data.ExecutionSucceeded {
			if t.metrics != nil {
				t.metrics.failures.Inc()
			}
			return nil, false, newFailedError(p, resp.Data)
		}
		return resp.Data, true, nil
	}

	if t.metrics != nil {
		t.metrics.notFound.Inc()
	}
	return nil, false, nil
}

func newFailedError(p Pointer, executed *client.ExecutedTransaction) *FailedError {
	err := &FailedError{Pointer: p}
	if cause := executed.FailureCause; cause != nil {
		err.Message = cause.ErrorMessage
		err.StackTrace = cause.StackTrace
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
