// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gorilla/rpc/v2/json2"
	"github.com/stretchr/testify/require"
)

type dataError struct {
	msg  string
	data interface{}
}

func (e *dataError) Error() string          { return e.msg }
func (e *dataError) ErrorCode() int         { return 3 }
func (e *dataError) ErrorData() interface{} { return e.data }

func TestReason(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name: "structured data message",
			err: fmt.Errorf("eth_sendTransaction: %w", &dataError{
				msg:  "execution reverted",
				data: map[string]interface{}{"message": "ERC20: transfer amount exceeds balance"},
			}),
			expected: "ERC20: transfer amount exceeds balance",
		},
		{
			name: "embedded json data",
			err: &dataError{
				msg:  "internal error",
				data: `{"code":-32000,"message":"nonce too low"}`,
			},
			expected: "nonce too low",
		},
		{
			name: "revert data without message",
			err: &dataError{
				msg:  "execution reverted",
				data: "0x08c379a0",
			},
			expected: "execution reverted",
		},
		{
			name: "json2 error",
			err: fmt.Errorf("send failed: %w", &json2.Error{
				Code:    json2.E_SERVER,
				Message: "insufficient funds for gas * price + value",
			}),
			expected: "insufficient funds for gas * price + value",
		},
		{
			name: "json2 error with data",
			err: &json2.Error{
				Code:    json2.E_SERVER,
				Message: "server error",
				Data:    map[string]interface{}{"message": "replacement transaction underpriced"},
			},
			expected: "replacement transaction underpriced",
		},
		{
			name:     "opaque error is passed through",
			err:      errors.New("Returned error: {\"message\":\"unmodified\"}"),
			expected: "Returned error: {\"message\":\"unmodified\"}",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, Reason(test.err))
		})
	}
}

func TestTxErrorMessage(t *testing.T) {
	require := require.New(t)

	err := &TxError{Reason: "boom", Err: errTest}
	require.Equal("boom", err.Error())
	require.ErrorIs(err, errTest)
}
