// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package finality

import (
	"errors"
	"fmt"

	"github.com/ava-labs/chainsdk/ids"
)

var (
	ErrSubmissionRejected  = errors.New("blockchain refused transaction. Do you have enough gas?")
	ErrNotFinalized        = errors.New("not finalized")
	ErrFailed              = errors.New("execution failed")
	ErrTransactionNotFound = errors.New("transaction was not found after execution")
	ErrEventNotFound       = errors.New("event was not found after execution")

	errTooDeep      = errors.New("event tree is too deep")
	errTooManyNodes = errors.New("event tree has too many nodes")
)

// Pointer locates a transaction or an event.
type Pointer struct {
	Shard      string `json:"shard"`
	Identifier ids.ID `json:"identifier"`
}

func (p Pointer) String() string {
	return fmt.Sprintf("%s@%s", p.Identifier, p.Shard)
}

// NotFinalizedError is returned when a transaction or one of its events was
// not observed within the budget. It may still execute later, Submission can
// be used to poll again.
type NotFinalizedError struct {
	Submission Pointer
	Pointer    Pointer
}

func (e *NotFinalizedError) Error() string {
	return fmt.Sprintf("transaction %q not finalized at shard %q", e.Pointer.Identifier, e.Pointer.Shard)
}

func (*NotFinalizedError) Unwrap() error {
	return ErrNotFinalized
}

// FailedError is returned when a transaction or one of its events executed
// unsuccessfully.
type FailedError struct {
	Pointer    Pointer
	Message    string
	StackTrace string
}

func (e *FailedError) Error() string {
	msg := fmt.Sprintf("transaction %q failed at shard %q", e.Pointer.Identifier, e.Pointer.Shard)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (*FailedError) Unwrap() error {
	return ErrFailed
}
