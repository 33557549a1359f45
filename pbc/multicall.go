// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pbc

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/chainsdk/ids"
)

var errAlreadyExecuted = errors.New("multi-call already executed")

// MultiCall runs several views over one read of each contract they
// reference. A MultiCall can be executed once.
type MultiCall struct {
	service *Service

	lock     sync.Mutex
	views    []View
	executed bool
}

func (s *Service) NewMultiCall() *MultiCall {
	return &MultiCall{service: s}
}

// Add queues [v] and returns the index of its result.
func (m *MultiCall) Add(v View) (int, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.executed {
		return 0, errAlreadyExecuted
	}
	m.views = append(m.views, v)
	return len(m.views) - 1, nil
}

type fetched struct {
	bytes []byte
	info  ContractInfo
}

// Execute reads every referenced contract once, concurrently, and then runs
// the views. The first error aborts the call.
func (m *MultiCall) Execute(ctx context.Context) ([]any, error) {
	m.lock.Lock()
	if m.executed {
		m.lock.Unlock()
		return nil, errAlreadyExecuted
	}
	m.executed = true
	views := m.views
	m.lock.Unlock()

	var (
		addresses []ids.Address
		states    = make(map[ids.Address]*fetched)
	)
	for _, v := range views {
		if _, ok := states[v.Address]; !ok {
			states[v.Address] = &fetched{}
			addresses = append(addresses, v.Address)
		}
	}

	s := m.service
	fetch, fetchCtx := errgroup.WithContext(ctx)
	for _, address := range addresses {
		address := address
		raw := states[address]
		fetch.Go(func() error {
			b, info, err := s.rawState(fetchCtx, address)
			raw.bytes = b
			raw.info = info
			return err
		})
	}
	if err := fetch.Wait(); err != nil {
		return nil, err
	}

	results := make([]any, len(views))
	run, runCtx := errgroup.WithContext(ctx)
	for i, v := range views {
		i, v := i, v
		raw := states[v.Address]
		run.Go(func() error {
			st, err := s.decode(v.Address, raw.info, raw.bytes, v.Schema)
			if err != nil {
				return err
			}
			results[i], err = v.run(runCtx, st)
			return err
		})
	}
	if err := run.Wait(); err != nil {
		return nil, err
	}

	s.log.Debug("executed multi-call",
		zap.Int("views", len(views)),
		zap.Int("contracts", len(addresses)),
	)
	return results, nil
}
