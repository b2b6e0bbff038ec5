package plumbing

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var errForkPanicked = errors.New("plumbing: forked task panicked")

// Bridge drives the n items of p into c, splitting both until the pieces are
// small enough to fold sequentially. Results are reduced in producer order.
//
// A nil s uses DefaultScheduler. Bridge returns ctx.Err() if ctx is done
// before all items were consumed.
func Bridge[T, R any, P Producer[T, P]](ctx context.Context, s *Scheduler, n uint, p P, c Consumer[T, R]) (res R, err error) {
	if s == nil {
		s = DefaultScheduler()
	}
	defer s.recoverInto(&err)

	l := &lane{}
	defer l.release(s)

	ls := newLengthSplitter(p.MinLen(), p.MaxLen(), n, s.threads)
	return bridgeProducer(ctx, s, l, n, false, ls, p, c)
}

func bridgeProducer[T, R any, P Producer[T, P]](ctx context.Context, s *Scheduler, l *lane, n uint, migrated bool, ls lengthSplitter, p P, c Consumer[T, R]) (R, error) {
	if err := ctx.Err(); err != nil {
		var zero R
		return zero, err
	}
	if c.Full() {
		return c.IntoFolder().Complete(), nil
	}

	if ls.try(n, migrated, s.threads) {
		mid := n / 2
		lp, rp := p.SplitAt(mid)
		lc, rc, reducer := c.SplitAt(mid)

		s.observer.OnSplit(KindIndexed)
		s.tracef(ctx, "split", "kind", KindIndexed, "len", n, "mid", mid)

		lr, rr, err := join[R](ctx, s, l,
			func(ctx context.Context, l *lane, migrated bool) (R, error) {
				return bridgeProducer(ctx, s, l, mid, migrated, ls, lp, lc)
			},
			func(ctx context.Context, l *lane, migrated bool) (R, error) {
				return bridgeProducer(ctx, s, l, n-mid, migrated, ls, rp, rc)
			},
		)
		if err != nil {
			var zero R
			return zero, err
		}
		return reducer.Reduce(lr, rr), nil
	}

	return foldLeaf[T, R](s, KindIndexed, p, c.IntoFolder()), nil
}

// BridgeUnindexed drives p into c by halving p until it refuses to split or
// the split budget is spent. Results are reduced in producer order.
func BridgeUnindexed[T, R any, P UnindexedProducer[T, P]](ctx context.Context, s *Scheduler, p P, c UnindexedConsumer[T, R]) (res R, err error) {
	if s == nil {
		s = DefaultScheduler()
	}
	defer s.recoverInto(&err)

	l := &lane{}
	defer l.release(s)

	return bridgeUnindexed(ctx, s, l, false, splitter{splits: s.threads}, p, c)
}

func bridgeUnindexed[T, R any, P UnindexedProducer[T, P]](ctx context.Context, s *Scheduler, l *lane, migrated bool, sp splitter, p P, c UnindexedConsumer[T, R]) (R, error) {
	if err := ctx.Err(); err != nil {
		var zero R
		return zero, err
	}
	if c.Full() {
		return c.IntoFolder().Complete(), nil
	}

	if sp.try(migrated, s.threads) {
		if lp, rp, ok := p.Split(); ok {
			reducer := c.ToReducer()
			lc := c.SplitOffLeft()

			s.observer.OnSplit(KindUnindexed)
			s.tracef(ctx, "split", "kind", KindUnindexed)

			lr, rr, err := join[R](ctx, s, l,
				func(ctx context.Context, l *lane, migrated bool) (R, error) {
					return bridgeUnindexed(ctx, s, l, migrated, sp, lp, lc)
				},
				func(ctx context.Context, l *lane, migrated bool) (R, error) {
					return bridgeUnindexed(ctx, s, l, migrated, sp, rp, c)
				},
			)
			if err != nil {
				var zero R
				return zero, err
			}
			return reducer.Reduce(lr, rr), nil
		}
	}

	return foldLeaf[T, R](s, KindUnindexed, p, c.IntoFolder()), nil
}

func foldLeaf[T, R any](s *Scheduler, kind Kind, p foldable[T], f Folder[T, R]) R {
	cs := &countingSink[T]{Sink: f}
	if rs, ok := reversedSink(p, f); ok {
		cs.Sink = rs
		p.(BackwardProducer[T]).FoldBackward(cs)
	} else {
		p.FoldWith(cs)
	}
	s.observer.OnLeaf(kind, cs.n)
	return f.Complete()
}

func reversedSink[T, R any](p foldable[T], f Folder[T, R]) (Sink[T], bool) {
	if _, ok := p.(BackwardProducer[T]); !ok {
		return nil, false
	}
	rf, ok := f.(Reversible[T])
	if !ok {
		return nil, false
	}
	return rf.Reversed()
}

// lane is the goroutine a task runs on. The goroutine that starts a drive
// runs without a worker slot; forked and stolen halves run with one.
type lane struct {
	slotted bool
}

func (l *lane) release(s *Scheduler) {
	if l.slotted {
		s.workers.ReleaseWorker()
		l.slotted = false
	}
}

type task[R any] func(ctx context.Context, l *lane, migrated bool) (R, error)

// job is the right half of a join. Whoever claims it first runs it: a forked
// goroutine, a goroutine that waited for a free slot, or the joining
// goroutine once the left half is done.
type job[R any] struct {
	task     task[R]
	claimed  atomic.Bool
	res      R
	panicked any
}

func (j *job[R]) claim() bool {
	return j.claimed.CompareAndSwap(false, true)
}

func (j *job[R]) run(ctx context.Context, l *lane, migrated bool) (err error) {
	defer func() {
		if v := recover(); v != nil {
			j.panicked = v
			err = errForkPanicked
		}
	}()
	j.res, err = j.task(ctx, l, migrated)
	return err
}

// runOn runs j on a new lane that owns the worker slot just acquired.
func (j *job[R]) runOn(ctx context.Context, s *Scheduler) error {
	l := &lane{slotted: true}
	defer l.release(s)
	return j.run(ctx, l, true)
}

// join runs left on the current goroutine and offers right to other workers.
// right is forked at once when a worker slot is free. Otherwise it stays
// claimable until a slot frees up or left returns, whichever is first. While
// right runs elsewhere the current goroutine lends its slot out. A panic in
// either half is re-raised here after both halves have returned.
func join[R any](ctx context.Context, s *Scheduler, l *lane, left, right task[R]) (R, R, error) {
	g, gctx := errgroup.WithContext(ctx)
	wctx, stop := context.WithCancel(gctx)
	defer stop()

	rj := &job[R]{task: right}
	switch {
	case s.workers.TryAcquireWorker():
		s.observer.OnFork()
		rj.claim()
		g.Go(func() error {
			return rj.runOn(gctx, s)
		})
	case s.workers.MaxWorkers() > 0:
		s.observer.OnInline()
		g.Go(func() error {
			if s.workers.AcquireWorker(wctx) != nil {
				return nil
			}
			if !rj.claim() {
				s.workers.ReleaseWorker()
				return nil
			}
			s.observer.OnSteal()
			return rj.runOn(gctx, s)
		})
	default:
		s.observer.OnInline()
	}

	lr, lpanic, lerr := runCaught(gctx, l, left)

	var rerr error
	stolen := !rj.claim()
	if !stolen {
		stop()
		if lpanic == nil && lerr == nil {
			rerr = rj.run(gctx, l, false)
		}
	}

	lent := stolen && l.slotted
	if lent {
		l.release(s)
	}
	werr := g.Wait()
	if lent {
		l.slotted = s.workers.TryAcquireWorker()
	}

	if lpanic != nil {
		panic(lpanic)
	}
	if rj.panicked != nil {
		panic(rj.panicked)
	}
	for _, err := range []error{lerr, rerr, werr} {
		if err != nil {
			return lr, rj.res, err
		}
	}
	return lr, rj.res, nil
}

func runCaught[R any](ctx context.Context, l *lane, t task[R]) (r R, p any, err error) {
	defer func() {
		if v := recover(); v != nil {
			p = v
		}
	}()
	r, err = t(ctx, l, false)
	return r, nil, err
}
