// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package finality

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/chainsdk/utils/wrappers"
)

type Metrics struct {
	polls    prometheus.Counter
	notFound prometheus.Counter
	failures prometheus.Counter
}

func NewMetrics(namespace string, registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		polls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls",
			Help:      "number of executed transaction lookups",
		}),
		notFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "not_found",
			Help:      "number of lookups that found nothing final",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures",
			Help:      "number of transactions or events that executed unsuccessfully",
		}),
	}

	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(m.polls),
		registerer.Register(m.notFound),
		registerer.Register(m.failures),
	)
	return m, errs.Err()
}
