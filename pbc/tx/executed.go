// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tx

import (
	"errors"
	"fmt"

	"github.com/ava-labs/chainsdk/ids"
	"github.com/ava-labs/chainsdk/utils/crypto/secp256k1"
	"github.com/ava-labs/chainsdk/utils/wrappers"
)

// EventType classifies the payload of an executed transaction.
type EventType byte

const (
	TransactionEvent EventType = iota
	ContractActionCall
	CallbackCall
	CallbackResponse
	StateUpdate
)

func (t EventType) String() string {
	switch t {
	case TransactionEvent:
		return "Transaction"
	case ContractActionCall:
		return "ContractActionCall"
	case CallbackCall:
		return "CallbackCall"
	case CallbackResponse:
		return "CallbackResponse"
	case StateUpdate:
		return "StateUpdate"
	default:
		return "Unknown"
	}
}

// Offsets into an executed event payload.
const (
	eventHeaderLen = 1 + 10
	// the parent transaction hash follows the header
	eventKindOffset = eventHeaderLen + ids.IDLen

	actionSenderOffset   = eventKindOffset + 1
	actionReceiverOffset = actionSenderOffset + ids.AddressLen + wrappers.LongLen + 1
	actionRPCOffset      = actionReceiverOffset + ids.AddressLen

	callbackReceiverOffset = eventKindOffset + 1
	callbackSenderOffset   = callbackReceiverOffset + ids.AddressLen + ids.IDLen
	callbackRPCOffset      = callbackSenderOffset + ids.AddressLen + wrappers.LongLen

	systemSubtypeOffset       = eventKindOffset + 1
	responseReceiverOffset    = eventKindOffset + 2
	responseParentOffset      = responseReceiverOffset + ids.AddressLen
	responseRPCOffset         = responseParentOffset + ids.IDLen + 1
	stateUpdateReceiverOffset = responseReceiverOffset + 1

	// a signed transaction starts with the signature and the inner header
	transactionReceiverOffset = secp256k1.SignatureLen + InnerLen
)

// Inner event kinds as found at eventKindOffset.
const (
	kindCallback = 1
	kindSystem   = 2

	systemCallbackResponse = 6
	systemStateUpdate      = 3
)

var errUnknownEvent = errors.New("unknown event kind")

// Event is the decoded payload of an executed transaction or event.
type Event struct {
	Type     EventType
	Shard    string
	Receiver ids.Address
	// Sender is empty for callback responses and state updates.
	Sender ids.Address
	Data   []byte
	// ParentTransaction is empty for transactions.
	ParentTransaction ids.ID
	// ParentEvent is only set for callback responses.
	ParentEvent ids.ID
}

// ParseExecuted decodes the payload of an executed transaction. For a signed
// transaction the payload does not name its shard or sender, so they are
// taken from [shard] and [from]. Events carry their own shard, which is used
// when [shard] is empty.
func ParseExecuted(payload []byte, isEvent bool, shard string, from ids.Address) (*Event, error) {
	p := &wrappers.Packer{Bytes: payload}
	if !isEvent {
		e := &Event{
			Type:   TransactionEvent,
			Shard:  shard,
			Sender: from,
		}
		p.Offset = transactionReceiverOffset
		readAddress(p, &e.Receiver)
		e.Data = p.UnpackBytes()
		if err := wrapParseErr(p); err != nil {
			return nil, err
		}
		return e, nil
	}

	e := &Event{}
	p.Offset = eventHeaderLen
	readID(p, &e.ParentTransaction)
	kind := p.UnpackByte()
	if p.Errored() {
		return nil, wrapParseErr(p)
	}
	e.Shard = shard
	if e.Shard == "" {
		e.Shard = fmt.Sprintf("Shard%x", kind)
	}

	switch kind {
	case kindCallback:
		e.Type = CallbackCall
		p.Offset = callbackReceiverOffset
		readAddress(p, &e.Receiver)
		p.Offset = callbackSenderOffset
		readAddress(p, &e.Sender)
		p.Offset = callbackRPCOffset
		e.Data = p.UnpackBytes()
	case kindSystem:
		p.Offset = systemSubtypeOffset
		switch subtype := p.UnpackByte(); subtype {
		case systemCallbackResponse:
			e.Type = CallbackResponse
			p.Offset = responseReceiverOffset
			readAddress(p, &e.Receiver)
			p.Offset = responseParentOffset
			readID(p, &e.ParentEvent)
			p.Offset = responseRPCOffset
			e.Data = p.UnpackBytes()
		case systemStateUpdate:
			e.Type = StateUpdate
			p.Offset = stateUpdateReceiverOffset
			readAddress(p, &e.Receiver)
		default:
			if !p.Errored() {
				return nil, fmt.Errorf("%w: system subtype %d", errUnknownEvent, subtype)
			}
		}
	default:
		e.Type = ContractActionCall
		p.Offset = actionSenderOffset
		readAddress(p, &e.Sender)
		p.Offset = actionReceiverOffset
		readAddress(p, &e.Receiver)
		p.Offset = actionRPCOffset
		e.Data = p.UnpackBytes()
	}
	if err := wrapParseErr(p); err != nil {
		return nil, err
	}
	return e, nil
}

func readAddress(p *wrappers.Packer, addr *ids.Address) {
	copy(addr[:], p.UnpackFixedBytes(ids.AddressLen))
}

func readID(p *wrappers.Packer, id *ids.ID) {
	copy(id[:], p.UnpackFixedBytes(ids.IDLen))
}

func wrapParseErr(p *wrappers.Packer) error {
	if err := p.Err(); err != nil {
		return fmt.Errorf("couldn't parse executed payload: %w", err)
	}
	return nil
}
