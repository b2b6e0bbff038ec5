// Package resource governs how many goroutines a drive may fork.
//
// The Controller hands out worker slots from a weighted semaphore. The
// scheduler asks for a slot without blocking before forking the right half of
// a split. If none is free the left half runs inline:
//
//	c := resource.NewController(resource.Config{MaxWorkers: 7})
//
//	if c.TryAcquireWorker() {
//	    go func() {
//	        defer c.ReleaseWorker()
//	        // ...
//	    }()
//	}
//
// AcquireWorker blocks until a slot is free. The scheduler parks a goroutine
// on it for every right half left behind, so the half is stolen as soon as
// another worker finishes. Waiters are served in arrival order and ahead of
// TryAcquireWorker.
//
// # Nil Safety
//
// A nil Controller imposes no limit: every acquire succeeds.
package resource
