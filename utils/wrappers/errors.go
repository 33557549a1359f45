// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wrappers

import (
	"errors"
	"sync"
)

// Errs keeps track of errors from independent operations. It is safe for
// concurrent use.
type Errs struct {
	lock sync.Mutex
	errs []error
}

func (errs *Errs) Errored() bool {
	errs.lock.Lock()
	defer errs.lock.Unlock()

	return len(errs.errs) > 0
}

// Add records every non-nil error in [errors]
func (errs *Errs) Add(errors ...error) {
	errs.lock.Lock()
	defer errs.lock.Unlock()

	for _, err := range errors {
		if err != nil {
			errs.errs = append(errs.errs, err)
		}
	}
}

// Err returns nil if no error was added, otherwise all added errors joined
// together.
func (errs *Errs) Err() error {
	errs.lock.Lock()
	defer errs.lock.Unlock()

	return errors.Join(errs.errs...)
}

// First returns the first error added, if any.
func (errs *Errs) First() error {
	errs.lock.Lock()
	defer errs.lock.Unlock()

	if len(errs.errs) == 0 {
		return nil
	}
	return errs.errs[0]
}
