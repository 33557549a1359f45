// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpipeline

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/chainsdk/utils/wrappers"
)

type Metrics struct {
	submitted prometheus.Counter
	succeeded prometheus.Counter
	failed    prometheus.Counter
}

func NewMetrics(namespace string, registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submitted",
			Help:      "number of transaction submissions started",
		}),
		succeeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "succeeded",
			Help:      "number of transactions mined successfully",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failed",
			Help:      "number of submissions that failed at any stage",
		}),
	}

	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(m.submitted),
		registerer.Register(m.succeeded),
		registerer.Register(m.failed),
	)
	return m, errs.Err()
}
