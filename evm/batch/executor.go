// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package batch

import (
	"context"
	"sync"
	"time"

	"github.com/ava-labs/chainsdk/utils/logging"
)

const DefaultTimeout = 10 * time.Second

type Config struct {
	// Timeout bounds how long a batch waits for its transport response.
	Timeout time.Duration `json:"timeout"`
	// CallbackLimit bounds concurrently running call handlers. Zero is
	// unbounded.
	CallbackLimit int `json:"callbackLimit"`
}

func DefaultConfig() Config {
	return Config{
		Timeout: DefaultTimeout,
	}
}

// Builder registers calls on a Request.
type Builder func(*Request) error

// Executor gathers builders from independent parts of an application and
// runs them all in one batch.
type Executor struct {
	log     logging.Logger
	caller  Caller
	config  Config
	options []Option

	lock     sync.Mutex
	builders []Builder
}

func NewExecutor(caller Caller, log logging.Logger, config Config, options ...Option) *Executor {
	return &Executor{
		log:     log,
		caller:  caller,
		config:  config,
		options: options,
	}
}

func (e *Executor) Add(builders ...Builder) {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.builders = append(e.builders, builders...)
}

// Execute builds a fresh Request from the registered builders and executes
// it. The builders are kept, so Execute may be called repeatedly to refresh
// the same set of values.
func (e *Executor) Execute(ctx context.Context) error {
	e.lock.Lock()
	builders := make([]Builder, len(e.builders))
	copy(builders, e.builders)
	e.lock.Unlock()

	options := e.options
	if e.config.CallbackLimit > 0 {
		options = append(options[:len(options):len(options)], WithCallbackLimit(e.config.CallbackLimit))
	}
	request := NewRequest(e.caller, e.log, options...)
	for _, build := range builders {
		if err := build(request); err != nil {
			return err
		}
	}

	timeout := e.config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return request.Execute(ctx, timeout)
}
