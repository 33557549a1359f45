// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/chainsdk/utils/logging"
)

func TestTrackerLifecycle(t *testing.T) {
	require := require.New(t)

	notifications := NewNotifications(time.Minute)
	tracker := NewTracker(logging.NoLog{}, notifications)

	tracker.Start()
	require.True(tracker.State().Running)

	tracker.Success("0xabc")
	require.Equal(State{
		LastResult:      true,
		LastTransaction: "0xabc",
	}, tracker.State())
	require.Empty(notifications.List())

	tracker.Start()
	tracker.Failed("execution reverted")
	state := tracker.State()
	require.False(state.Running)
	require.False(state.LastResult)
	require.Equal("0xabc", state.LastTransaction)
	require.Equal([]Notification{{
		Title: "Transaction failed.",
		Text:  "execution reverted",
		Icon:  IconStop,
	}}, notifications.List())

	tracker.AddedToProposal()
	require.True(tracker.State().LastWasProposal)
	require.True(tracker.State().LastResult)

	tracker.Reset()
	require.Equal(State{}, tracker.State())
}

func TestNotificationsExpire(t *testing.T) {
	require := require.New(t)

	now := time.Unix(1_700_000_000, 0)
	notifications := NewNotifications(5 * time.Second)
	notifications.Clock.Set(now)

	notifications.Show(Notification{Title: "first"})
	notifications.Clock.Set(now.Add(3 * time.Second))
	notifications.Show(Notification{Title: "second"})
	require.Len(notifications.List(), 2)

	notifications.Clock.Set(now.Add(5 * time.Second))
	require.Equal([]Notification{{Title: "second"}}, notifications.List())

	notifications.Clock.Set(now.Add(time.Minute))
	require.Empty(notifications.List())
}
