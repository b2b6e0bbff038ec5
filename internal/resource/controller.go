package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Config holds worker limits.
type Config struct {
	// MaxWorkers is the maximum number of concurrently forked workers.
	// If 0 or negative, no worker may be forked.
	MaxWorkers int64
}

// Controller manages worker slots.
type Controller struct {
	cfg Config

	slots *semaphore.Weighted
	inUse atomic.Int64
}

// NewController creates a new worker controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxWorkers < 0 {
		cfg.MaxWorkers = 0
	}

	return &Controller{
		cfg:   cfg,
		slots: semaphore.NewWeighted(cfg.MaxWorkers),
	}
}

// AcquireWorker reserves a worker slot. Blocks if all slots are busy, and
// forever if MaxWorkers is 0, until ctx is done.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.slots.Acquire(ctx, 1); err != nil {
		return err
	}
	c.inUse.Add(1)
	return nil
}

// TryAcquireWorker attempts to reserve a worker slot without blocking.
func (c *Controller) TryAcquireWorker() bool {
	if c == nil {
		return true
	}
	if !c.slots.TryAcquire(1) {
		return false
	}
	c.inUse.Add(1)
	return true
}

// ReleaseWorker releases a worker slot.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}
	c.inUse.Add(-1)
	c.slots.Release(1)
}

// WorkersInUse returns the number of reserved slots.
func (c *Controller) WorkersInUse() int64 {
	if c == nil {
		return 0
	}
	return c.inUse.Load()
}

// MaxWorkers returns the configured slot count.
func (c *Controller) MaxWorkers() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MaxWorkers
}
