// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tx

import (
	"encoding/binary"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/chainsdk/ids"
	"github.com/ava-labs/chainsdk/utils/crypto/secp256k1"
	"github.com/ava-labs/chainsdk/utils/wrappers"
)

const testChainID = "Partisia Blockchain Testnet"

func testAddress() ids.Address {
	addr := ids.Address{byte(ids.PublicContractAddress)}
	for i := 1; i < ids.AddressLen; i++ {
		addr[i] = byte(i)
	}
	return addr
}

func testTransaction() *Transaction {
	return &Transaction{
		Inner: Inner{
			Nonce:   5,
			ValidTo: 1700000000000,
			Cost:    100,
		},
		Address: testAddress(),
		RPC:     []byte{0x01, 0x02, 0x03},
	}
}

func TestTransactionLayout(t *testing.T) {
	require := require.New(t)

	tx := testTransaction()
	b, err := tx.Bytes()
	require.NoError(err)
	require.Equal(
		"00000000000000050000018bcfe568000000000000000064020102030405060708090a0b0c0d0e0f101112131400000003010203",
		hex.EncodeToString(b),
	)

	// read the layout back by hand
	require.Equal(uint64(5), binary.BigEndian.Uint64(b[0:8]))
	require.Equal(uint64(1700000000000), binary.BigEndian.Uint64(b[8:16]))
	require.Equal(uint64(100), binary.BigEndian.Uint64(b[16:24]))
	require.Equal(tx.Address[:], b[24:45])
	rpcLen := binary.BigEndian.Uint32(b[45:49])
	require.Equal(uint32(3), rpcLen)
	require.Equal(tx.RPC, b[49:49+rpcLen])
	require.Len(b, 49+int(rpcLen))
}

func TestParseRoundTrip(t *testing.T) {
	require := require.New(t)

	tx := testTransaction()
	b, err := tx.Bytes()
	require.NoError(err)

	parsed, err := Parse(b)
	require.NoError(err)
	require.Equal(tx, parsed)

	_, err = Parse(b[:len(b)-1])
	require.ErrorIs(err, wrappers.ErrInsufficientLength)

	_, err = Parse(append(b, 0x00))
	require.ErrorIs(err, errTrailingBytes)
}

func TestSigningHash(t *testing.T) {
	require := require.New(t)

	b, err := testTransaction().Bytes()
	require.NoError(err)
	require.Equal(
		"61070139d25997ad203899d999bb2859d8c58547034c548b8677b6ec7874ccd7",
		hex.EncodeToString(SigningHash(b, testChainID)),
	)
	require.NotEqual(SigningHash(b, testChainID), SigningHash(b, "Partisia Blockchain"))
}

func TestSignRecover(t *testing.T) {
	require := require.New(t)

	key, err := secp256k1.NewPrivateKey()
	require.NoError(err)

	tx := testTransaction()
	signed, err := Sign(key, tx, testChainID)
	require.NoError(err)

	serialized, err := tx.Bytes()
	require.NoError(err)
	require.Len(signed, secp256k1.SignatureLen+len(serialized))
	require.Equal(serialized, signed[secp256k1.SignatureLen:])
	require.LessOrEqual(signed[0], byte(1))

	signer, parsed, err := Recover(signed, testChainID)
	require.NoError(err)
	require.Equal(Address(key.PublicKey()), signer)
	require.Equal(ids.AccountAddress, signer.Type())
	require.Equal(tx, parsed)

	// a different chain id recovers a different key
	other, _, err := Recover(signed, "Partisia Blockchain")
	if err == nil {
		require.NotEqual(signer, other)
	}

	_, _, err = Recover(signed[:10], testChainID)
	require.ErrorIs(err, errShortSignedTx)
}

func TestGas(t *testing.T) {
	require := require.New(t)

	require.Equal(uint64(50), NetworkCost(10))
	require.Equal(uint64(125), WithMargin(100))
	require.Equal(uint64(1), WithMargin(1))
	require.Equal(uint64(12), WithMargin(10))

	cost, err := DataNetworkCost("ab", 12)
	require.NoError(err)
	// "ab" plus quotes is 4 bytes, 12 is 2 bytes
	require.Equal(uint64(30), cost)
}

func TestValidTo(t *testing.T) {
	now := time.UnixMilli(1_000)
	require.Equal(t, uint64(301_000), ValidTo(now, DefaultTTL))
}

func putAddress(b []byte, offset int, addr ids.Address) {
	copy(b[offset:], addr[:])
}

func putRPC(b []byte, offset int, rpc []byte) []byte {
	binary.BigEndian.PutUint32(b[offset:], uint32(len(rpc)))
	return append(b[:offset+4], rpc...)
}

func TestParseExecutedTransaction(t *testing.T) {
	require := require.New(t)

	receiver := testAddress()
	sender := ids.Address{byte(ids.AccountAddress), 0xaa}
	payload := make([]byte, 114)
	putAddress(payload, 89, receiver)
	payload = putRPC(payload, 110, []byte{0x07, 0x08})

	e, err := ParseExecuted(payload, false, "Shard1", sender)
	require.NoError(err)
	require.Equal(&Event{
		Type:     TransactionEvent,
		Shard:    "Shard1",
		Receiver: receiver,
		Sender:   sender,
		Data:     []byte{0x07, 0x08},
	}, e)

	_, err = ParseExecuted(payload[:100], false, "Shard1", sender)
	require.ErrorIs(err, wrappers.ErrInsufficientLength)
}

func TestParseExecutedEvents(t *testing.T) {
	parent := ids.ID{0x11, 0x22}
	parentEvent := ids.ID{0x33}
	receiver := testAddress()
	sender := ids.Address{byte(ids.AccountAddress), 0xaa}

	newEvent := func(size int, kind byte) []byte {
		b := make([]byte, size)
		copy(b[11:], parent[:])
		b[43] = kind
		return b
	}

	action := newEvent(99, 0)
	putAddress(action, 44, sender)
	putAddress(action, 74, receiver)
	action = putRPC(action, 95, []byte{0x01})

	callback := newEvent(130, 1)
	putAddress(callback, 44, receiver)
	putAddress(callback, 97, sender)
	callback = putRPC(callback, 126, []byte{0x02})

	response := newEvent(103, 2)
	response[44] = 6
	putAddress(response, 45, receiver)
	copy(response[66:], parentEvent[:])
	response = putRPC(response, 99, []byte{0x03})

	stateUpdate := newEvent(67, 2)
	stateUpdate[44] = 3
	putAddress(stateUpdate, 46, receiver)

	unknown := newEvent(67, 2)
	unknown[44] = 9

	tests := []struct {
		name     string
		payload  []byte
		shard    string
		expected *Event
		err      error
	}{
		{
			name:    "contract action",
			payload: action,
			shard:   "Shard2",
			expected: &Event{
				Type:              ContractActionCall,
				Shard:             "Shard2",
				Receiver:          receiver,
				Sender:            sender,
				Data:              []byte{0x01},
				ParentTransaction: parent,
			},
		},
		{
			name:    "callback call",
			payload: callback,
			shard:   "Shard0",
			expected: &Event{
				Type:              CallbackCall,
				Shard:             "Shard0",
				Receiver:          receiver,
				Sender:            sender,
				Data:              []byte{0x02},
				ParentTransaction: parent,
			},
		},
		{
			name:    "callback response",
			payload: response,
			shard:   "Shard1",
			expected: &Event{
				Type:              CallbackResponse,
				Shard:             "Shard1",
				Receiver:          receiver,
				Data:              []byte{0x03},
				ParentTransaction: parent,
				ParentEvent:       parentEvent,
			},
		},
		{
			name:    "state update without shard",
			payload: stateUpdate,
			expected: &Event{
				Type:              StateUpdate,
				Shard:             "Shard2",
				Receiver:          receiver,
				ParentTransaction: parent,
			},
		},
		{
			name:    "unknown system event",
			payload: unknown,
			shard:   "Shard0",
			err:     errUnknownEvent,
		},
		{
			name:    "truncated",
			payload: action[:60],
			shard:   "Shard0",
			err:     wrappers.ErrInsufficientLength,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			e, err := ParseExecuted(test.payload, true, test.shard, ids.EmptyAddress)
			require.ErrorIs(err, test.err)
			require.Equal(test.expected, e)
		})
	}
}

func TestEventTypeString(t *testing.T) {
	require := require.New(t)

	require.Equal("Transaction", TransactionEvent.String())
	require.Equal("StateUpdate", StateUpdate.String())
	require.Equal("Unknown", EventType(42).String())
}
