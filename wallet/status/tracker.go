// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package status

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ava-labs/chainsdk/utils/logging"
)

var _ Observer = (*Tracker)(nil)

// Observer is notified about the lifecycle of a transaction submission. A
// submission always reports Start followed by exactly one of Success or
// Failed.
type Observer interface {
	Start()
	Success(txHash string)
	Failed(reason string)
}

// State is a snapshot of a Tracker.
type State struct {
	Running         bool   `json:"running"`
	LastResult      bool   `json:"lastResult"`
	LastTransaction string `json:"lastTransaction"`
	LastWasProposal bool   `json:"lastWasProposal"`
}

// Tracker records the status of the transaction currently being submitted
// and the outcome of the previous one.
type Tracker struct {
	log           logging.Logger
	notifications *Notifications

	lock  sync.RWMutex
	state State
}

func NewTracker(log logging.Logger, notifications *Notifications) *Tracker {
	return &Tracker{
		log:           log,
		notifications: notifications,
	}
}

func (t *Tracker) Start() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.state.Running = true
}

func (t *Tracker) Success(txHash string) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.state = State{
		LastResult:      true,
		LastTransaction: txHash,
	}
	t.log.Info("transaction succeeded",
		zap.String("txHash", txHash),
	)
}

func (t *Tracker) Failed(reason string) {
	t.lock.Lock()
	t.state.Running = false
	t.state.LastResult = false
	t.lock.Unlock()

	t.log.Warn("transaction failed",
		zap.String("reason", reason),
	)
	if t.notifications != nil {
		t.notifications.Show(Notification{
			Title: "Transaction failed.",
			Text:  reason,
			Icon:  IconStop,
		})
	}
}

// AddedToProposal marks the last submission as successfully added to a
// multisig proposal rather than executed.
func (t *Tracker) AddedToProposal() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.state.Running = false
	t.state.LastResult = true
	t.state.LastWasProposal = true
}

func (t *Tracker) Reset() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.state = State{}
}

func (t *Tracker) State() State {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.state
}
