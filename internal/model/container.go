package model

import (
	"sync"
	"sync/atomic"
)

// Container is a single-slot, write-once holder for a fitted DelayModel.
// The first Get runs the training closure; every later Get returns the
// published model without locking. Publication goes through an atomic
// pointer, so a concurrent reader either sees no model or a fully fitted
// one, never a partial fit. A failed training run is not cached: the next
// Get retries.
type Container struct {
	train func() (*DelayModel, error)

	mu    sync.Mutex
	model atomic.Pointer[DelayModel]
}

func NewContainer(train func() (*DelayModel, error)) *Container {
	return &Container{train: train}
}

// Get returns the shared fitted model, training it first if needed.
func (c *Container) Get() (*DelayModel, error) {
	if m := c.model.Load(); m != nil {
		return m, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if m := c.model.Load(); m != nil {
		return m, nil
	}

	m, err := c.train()
	if err != nil {
		return nil, err
	}
	c.model.Store(m)
	return m, nil
}

// Ready reports whether a model has been published yet, without triggering
// training.
func (c *Container) Ready() bool {
	return c.model.Load() != nil
}
