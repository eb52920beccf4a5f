package stock

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// ErrOutOfStock is the rejection produced by a failed availability check.
var ErrOutOfStock = errors.New("product is out of stock")

// Checker confirms that a product can be added to a cart. Confirm resolves
// exactly once per call: nil for success, an error for rejection.
type Checker interface {
	Confirm(ctx context.Context, productID string) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, productID string) error

func (f CheckerFunc) Confirm(ctx context.Context, productID string) error {
	return f(ctx, productID)
}

// Simulator stands in for a real inventory service: it waits for a configured
// latency and rejects a configured fraction of checks.
type Simulator struct {
	Latency     time.Duration
	FailureRate float64
}

func NewSimulator(latency time.Duration, failureRate float64) *Simulator {
	return &Simulator{Latency: latency, FailureRate: failureRate}
}

func (s *Simulator) Confirm(ctx context.Context, productID string) error {
	select {
	case <-time.After(s.Latency):
	case <-ctx.Done():
		return ctx.Err()
	}
	if rand.Float64() < s.FailureRate {
		return ErrOutOfStock
	}
	return nil
}
