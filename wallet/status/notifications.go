// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package status

import (
	"sync"
	"time"

	"github.com/ava-labs/chainsdk/utils/timer/mockable"
)

const DefaultNotificationTTL = 5 * time.Second

type Icon string

const (
	IconStop  Icon = "stop"
	IconCheck Icon = "check"
)

type Notification struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Icon  Icon   `json:"icon"`
}

type entry struct {
	notification Notification
	expiry       time.Time
}

// Notifications is a list of user facing messages that expire after a fixed
// time to live.
type Notifications struct {
	Clock mockable.Clock

	ttl     time.Duration
	lock    sync.Mutex
	entries []entry
}

func NewNotifications(ttl time.Duration) *Notifications {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Notifications{ttl: ttl}
}

func (n *Notifications) Show(notification Notification) {
	n.lock.Lock()
	defer n.lock.Unlock()

	n.entries = append(n.entries, entry{
		notification: notification,
		expiry:       n.Clock.Time().Add(n.ttl),
	})
}

// List returns the notifications that have not expired yet, oldest first.
func (n *Notifications) List() []Notification {
	n.lock.Lock()
	defer n.lock.Unlock()

	now := n.Clock.Time()
	live := n.entries[:0]
	for _, e := range n.entries {
		if now.Before(e.expiry) {
			live = append(live, e)
		}
	}
	n.entries = live

	notifications := make([]Notification, len(live))
	for i, e := range live {
		notifications[i] = e.notification
	}
	return notifications
}
