// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package finality

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultBudget   = 300 * time.Second
	DefaultDelay    = time.Second
	DefaultPolicy   = Parallel
	DefaultMaxDepth = 64
	DefaultMaxNodes = 1024
)

var (
	errInvalidDelay  = errors.New("delay must be positive")
	errInvalidBudget = errors.New("budget must not be shorter than the delay")
	errInvalidBounds = errors.New("max depth and max nodes must be positive")
	errUnknownPolicy = errors.New("unknown policy")
)

// Policy selects how the events spawned by a transaction are followed.
type Policy uint8

const (
	// Parallel follows every child event concurrently.
	Parallel Policy = iota
	// DepthFirst follows child events one at a time, first child first.
	DepthFirst
)

func (p Policy) String() string {
	switch p {
	case Parallel:
		return "parallel"
	case DepthFirst:
		return "depth-first"
	default:
		return "unknown"
	}
}

// ParsePolicy is the inverse of Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "parallel":
		return Parallel, nil
	case "depth-first", "depthfirst":
		return DepthFirst, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownPolicy, s)
	}
}

func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(text []byte) error {
	policy, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = policy
	return nil
}

type Config struct {
	// Budget is how long a single transaction or event is polled for before
	// it is reported as not finalized.
	Budget time.Duration `json:"budget"`
	// Delay between two polls of the same transaction.
	Delay    time.Duration `json:"delay"`
	Policy   Policy        `json:"policy"`
	MaxDepth int           `json:"maxDepth"`
	MaxNodes int           `json:"maxNodes"`
	// PollRate caps the polls per second issued by a tracker across all the
	// transactions it follows. Zero means no cap.
	PollRate  float64 `json:"pollRate"`
	PollBurst int     `json:"pollBurst"`
}

func DefaultConfig() Config {
	return Config{
		Budget:   DefaultBudget,
		Delay:    DefaultDelay,
		Policy:   DefaultPolicy,
		MaxDepth: DefaultMaxDepth,
		MaxNodes: DefaultMaxNodes,
	}
}

func (c Config) Verify() error {
	switch {
	case c.Delay <= 0:
		return errInvalidDelay
	case c.Budget < c.Delay:
		return errInvalidBudget
	case c.MaxDepth <= 0 || c.MaxNodes <= 0:
		return errInvalidBounds
	case c.Policy != Parallel && c.Policy != DepthFirst:
		return fmt.Errorf("%w: %d", errUnknownPolicy, c.Policy)
	}
	return nil
}

// MaxTries is the number of retries after the first poll of a transaction.
func (c Config) MaxTries() int {
	return int(c.Budget / c.Delay)
}
