// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpipeline

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/rpc/v2/json2"
)

var (
	ErrReverted       = errors.New("transaction reverted")
	ErrReceiptTimeout = errors.New("timed out waiting for receipt")

	errUnsupportedWallet = errors.New("wallet can neither sign nor send transactions")
)

// TxError is returned for every failed submission. Reason is the message
// reported to the status observer.
type TxError struct {
	Reason string
	// TxHash is empty if the failure happened before the transaction was
	// sent.
	TxHash common.Hash
	Err    error
}

func (e *TxError) Error() string {
	if e.TxHash == (common.Hash{}) {
		return e.Reason
	}
	return fmt.Sprintf("transaction %s: %s", e.TxHash, e.Reason)
}

func (e *TxError) Unwrap() error {
	return e.Err
}

// Reason returns the most specific message carried by [err]. Structured
// error data with a "message" field wins. Otherwise the message of the
// JSON-RPC error, or the error text itself, is returned unmodified.
func Reason(err error) string {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if msg := dataMessage(dataErr.ErrorData()); msg != "" {
			return msg
		}
	}
	var jsonErr *json2.Error
	if errors.As(err, &jsonErr) {
		if msg := dataMessage(jsonErr.Data); msg != "" {
			return msg
		}
		return jsonErr.Message
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.Error()
	}
	return err.Error()
}

func dataMessage(data interface{}) string {
	switch data := data.(type) {
	case map[string]interface{}:
		msg, _ := data["message"].(string)
		return msg
	case string:
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			return ""
		}
		return payload.Message
	case json.RawMessage:
		return dataMessage(string(data))
	default:
		return ""
	}
}
