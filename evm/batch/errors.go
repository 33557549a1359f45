// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package batch

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrEmptyResponse is reported for calls answered with the empty hex
	// value "0x", which nodes return when calling an address without code or
	// a function that does not exist.
	ErrEmptyResponse = errors.New("empty response")
	ErrMissingResult = errors.New("missing result")
	ErrTimeout       = errors.New("batch request timeout")
	ErrMalformedCall = errors.New("malformed call")

	errAlreadyExecuted = errors.New("batch already executed")
)

// CallError is the failure delivered to the error handler of a single call.
// It satisfies go-ethereum's rpc.Error and rpc.DataError.
type CallError struct {
	ID      uuid.UUID
	Method  string
	Code    int
	Message string
	Data    interface{}
	Err     error
}

func (e *CallError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s call %s failed (code %d): %s", e.Method, e.ID, e.Code, e.Message)
	default:
		return fmt.Sprintf("%s call %s failed: %v", e.Method, e.ID, e.Err)
	}
}

func (e *CallError) Unwrap() error {
	return e.Err
}

func (e *CallError) ErrorCode() int {
	return e.Code
}

func (e *CallError) ErrorData() interface{} {
	return e.Data
}
