// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package batch

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/chainsdk/utils/wrappers"
)

type Metrics struct {
	batches      prometheus.Counter
	calls        prometheus.Counter
	callFailures prometheus.Counter
	latency      prometheus.Histogram
}

func NewMetrics(namespace string, registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches",
			Help:      "number of batches submitted to the transport",
		}),
		calls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls",
			Help:      "number of calls submitted inside batches",
		}),
		callFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "call_failures",
			Help:      "number of calls that were routed to their error handler",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_latency",
			Help:      "time spent waiting for batch responses (s)",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(m.batches),
		registerer.Register(m.calls),
		registerer.Register(m.callFailures),
		registerer.Register(m.latency),
	)
	return m, errs.Err()
}
