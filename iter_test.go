package parange

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/parange/collect"
	"github.com/hupe1980/parange/plumbing"
	"github.com/hupe1980/parange/testutil"
)

func TestOptLen(t *testing.T) {
	t.Run("Small", func(t *testing.T) {
		n, ok := FromUint64(0, 100).OptLen()
		assert.True(t, ok)
		assert.Equal(t, uint(101), n)
	})

	t.Run("Empty", func(t *testing.T) {
		n, ok := FromInt64(1, 0).OptLen()
		assert.True(t, ok)
		assert.Zero(t, n)
	})

	t.Run("Threshold64", func(t *testing.T) {
		if IndexBits != 64 {
			t.Skip("needs a 64-bit index type")
		}
		n, ok := FromUint64(0, math.MaxUint64-1).OptLen()
		assert.True(t, ok)
		assert.Equal(t, uint(math.MaxUint), n)

		_, ok = FromUint64(0, math.MaxUint64).OptLen()
		assert.False(t, ok)

		_, ok = FromInt64(math.MinInt64, math.MaxInt64).OptLen()
		assert.False(t, ok)
	})

	t.Run("Threshold128", func(t *testing.T) {
		if IndexBits != 64 {
			t.Skip("needs a 64-bit index type")
		}
		n, ok := FromUint128(Uint128{}, Uint128From64(math.MaxUint64-1)).OptLen()
		assert.True(t, ok)
		assert.Equal(t, uint(math.MaxUint), n)

		_, ok = FromUint128(Uint128{}, Uint128From64(math.MaxUint64)).OptLen()
		assert.False(t, ok)

		_, ok = FromInt128(Int128Min, Int128Max).OptLen()
		assert.False(t, ok)
	})

	t.Run("AsIndexed", func(t *testing.T) {
		it, ok := FromInt16(-5, 5).AsIndexed()
		require.True(t, ok)
		assert.Equal(t, uint(11), it.Len())

		_, ok = FromInt64(-5, 5).AsIndexed()
		assert.False(t, ok)
	})
}

func TestDriveUnindexed(t *testing.T) {
	ctx := context.Background()

	t.Run("Sum", func(t *testing.T) {
		sum, err := DriveUnindexed(ctx, FromInt64(1, 1_000_000), collect.Sum[int64](), WithMaxWorkers(4))
		require.NoError(t, err)
		assert.Equal(t, int64(500000500000), sum)
	})

	t.Run("FullDomainInt8", func(t *testing.T) {
		got, err := DriveUnindexed(ctx, FromInt8(math.MinInt8, math.MaxInt8), collect.Append[int8](), WithMaxWorkers(8))
		require.NoError(t, err)
		assert.Len(t, got, 256)
		assert.True(t, testutil.Consecutive(got, func(a, b int8) bool { return b == a+1 }))
	})

	t.Run("EmptyRange", func(t *testing.T) {
		n, err := DriveUnindexed(ctx, FromUint32(9, 3), collect.Count[uint32]())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("NearTypeMaxUsesIndex", func(t *testing.T) {
		metrics := &BasicMetricsObserver{}
		got, err := DriveUnindexed(ctx, FromInt64(math.MaxInt64-5, math.MaxInt64), collect.Append[int64](),
			WithMetricsObserver(metrics), WithMaxWorkers(2))
		require.NoError(t, err)

		want := []int64{
			math.MaxInt64 - 5, math.MaxInt64 - 4, math.MaxInt64 - 3,
			math.MaxInt64 - 2, math.MaxInt64 - 1, math.MaxInt64,
		}
		assert.Equal(t, want, got)

		stats := metrics.Stats()
		assert.NotZero(t, stats.IndexedLeaves)
		assert.Zero(t, stats.UnindexedSplits)
		assert.Zero(t, stats.UnindexedLeaves)
	})

	t.Run("Wide", func(t *testing.T) {
		start := Uint128{Hi: 7, Lo: math.MaxUint64 - 10}
		end := start.AddWrap(Uint128From64(999))

		n, err := DriveUnindexed(ctx, FromUint128(start, end), collect.Count[Uint128](), WithMaxWorkers(4))
		require.NoError(t, err)
		assert.Equal(t, uint64(1000), n)

		last, err := DriveUnindexed(ctx, FromUint128(start, end), collect.FindLast(func(v Uint128) bool { return v.Lo%2 == 1 }))
		require.NoError(t, err)
		require.True(t, last.OK)
		assert.Equal(t, end.SubWrap(Uint128From64(1)), last.Value)
	})

	t.Run("FullDomainSplits", func(t *testing.T) {
		metrics := &BasicMetricsObserver{}
		found, err := DriveUnindexed(ctx, FromUint64(0, math.MaxUint64),
			collect.FindFirst(func(v uint64) bool { return v == 5 }),
			WithMetricsObserver(metrics), WithMaxWorkers(4))
		require.NoError(t, err)
		assert.Equal(t, collect.Found[uint64]{Value: 5, OK: true}, found)

		stats := metrics.Stats()
		assert.NotZero(t, stats.UnindexedSplits)
		assert.Zero(t, stats.IndexedSplits)
	})

	t.Run("FullDomainInt128", func(t *testing.T) {
		found, err := DriveUnindexed(ctx, FromInt128(Int128Min, Int128Max),
			collect.FindFirst(func(v Int128) bool { return v.Cmp(Int128Min.Add(Int128From64(3))) == 0 }),
			WithMaxWorkers(4))
		require.NoError(t, err)
		require.True(t, found.OK)
		assert.Equal(t, Int128Min.Add(Int128From64(3)), found.Value)
	})
}

func TestFindLastReachesRangeEnd(t *testing.T) {
	ctx := context.Background()
	always := func(int64) bool { return true }

	t.Run("AcrossSignBoundary", func(t *testing.T) {
		found, err := DriveUnindexed(ctx, FromInt64(-2, math.MaxInt64), collect.FindLast(always), WithMaxWorkers(8))
		require.NoError(t, err)
		assert.Equal(t, collect.Found[int64]{Value: math.MaxInt64, OK: true}, found)
	})

	t.Run("FullDomainSplitting", func(t *testing.T) {
		found, err := DriveUnindexed(ctx, FromUint64(0, math.MaxUint64),
			collect.FindLast(func(uint64) bool { return true }), WithMaxWorkers(8))
		require.NoError(t, err)
		assert.Equal(t, collect.Found[uint64]{Value: math.MaxUint64, OK: true}, found)
	})

	t.Run("LeavesStopAtFirstMatchFromTheEnd", func(t *testing.T) {
		metrics := &BasicMetricsObserver{}
		found, err := DriveUnindexed(ctx, FromUint64(0, 1<<32),
			collect.FindLast(func(uint64) bool { return true }),
			WithMaxWorkers(8), WithMetricsObserver(metrics))
		require.NoError(t, err)
		assert.Equal(t, uint64(1<<32), found.Value)

		stats := metrics.Stats()
		assert.LessOrEqual(t, stats.Items, stats.Leaves())
	})

	t.Run("SparseMatch", func(t *testing.T) {
		found, err := DriveUnindexed(ctx, FromInt32(-1000, 1_000_000),
			collect.FindLast(func(v int32) bool { return v < -990 }), WithMaxWorkers(8))
		require.NoError(t, err)
		assert.Equal(t, collect.Found[int32]{Value: -991, OK: true}, found)
	})
}

func TestDispatchPathsAgree(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(4711)
	s := plumbing.NewScheduler(plumbing.Config{MaxWorkers: 4})

	for range 20 {
		lo, hi := rng.Window(5000)
		r := NewRange[uint64, uint64, U64](lo, hi)
		n, ok := r.IndexLen()
		require.True(t, ok)

		byIndex, err := driveByIndex(ctx, s, r, n, plumbing.Consumer[uint64, []uint64](collect.Append[uint64]()), applyOptions(nil))
		require.NoError(t, err)

		bySplitting, err := driveBySplitting(ctx, s, r, collect.Append[uint64]())
		require.NoError(t, err)

		if diff := cmp.Diff(byIndex, bySplitting); diff != "" {
			t.Fatalf("paths disagree for %v (-index +splitting):\n%s", r, diff)
		}
		assert.Equal(t, testutil.Collect(r.All()), byIndex)
	}
}

func TestDrive(t *testing.T) {
	ctx := context.Background()

	t.Run("Slice", func(t *testing.T) {
		it, ok := FromInt16(-1000, 1000).AsIndexed()
		require.True(t, ok)

		out, err := collect.Slice[int16](it.Len())
		require.NoError(t, err)

		got, err := Drive(ctx, it, out, WithMaxWorkers(4), WithMinLen(16))
		require.NoError(t, err)

		if diff := cmp.Diff(testutil.Collect(it.Range().All()), got); diff != "" {
			t.Fatalf("unexpected elements (-want +got):\n%s", diff)
		}
	})

	t.Run("MaxLenForcesSplits", func(t *testing.T) {
		it, _ := FromUint8(0, math.MaxUint8).AsIndexed()
		metrics := &BasicMetricsObserver{}

		count := plumbing.Consumer[uint8, uint64](collect.Count[uint8]())
		n, err := Drive(ctx, it, count, WithMaxWorkers(1), WithMaxLen(16), WithMetricsObserver(metrics))
		require.NoError(t, err)
		assert.Equal(t, uint64(256), n)

		stats := metrics.Stats()
		assert.GreaterOrEqual(t, stats.IndexedLeaves, uint64(16))
		assert.Equal(t, uint64(256), stats.Items)
	})
}

func TestDriveErrors(t *testing.T) {
	t.Run("Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := DriveUnindexed(ctx, FromInt32(0, 1000), collect.Sum[int32]())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCanceled)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("DeadlineExceeded", func(t *testing.T) {
		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		_, err := DriveUnindexed(ctx, FromUint64(0, math.MaxUint64), collect.Count[uint64]())
		assert.ErrorIs(t, err, ErrCanceled)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("PanicPropagates", func(t *testing.T) {
		c := collect.Reduce(
			func() int { return 0 },
			func(acc int, v int32) int {
				if v == 700 {
					panic("boom")
				}
				return acc + 1
			},
			func(a, b int) int { return a + b },
		)
		assert.PanicsWithValue(t, "boom", func() {
			_, _ = DriveUnindexed(context.Background(), FromInt32(0, 1000), c, WithMaxWorkers(4))
		})
	})

	t.Run("PanicRecovered", func(t *testing.T) {
		boom := errors.New("boom")
		c := collect.Reduce(
			func() int { return 0 },
			func(acc int, v int32) int {
				if v == 3 {
					panic(boom)
				}
				return acc + 1
			},
			func(a, b int) int { return a + b },
		)
		_, err := DriveUnindexed(context.Background(), FromInt32(0, 1000), c, WithMaxWorkers(4), WithPanicRecovery(true))
		require.Error(t, err)

		var pe *PanicError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, boom, pe.Value)
		assert.NotEmpty(t, pe.Stack)
		assert.ErrorIs(t, err, boom)
	})
}

func TestMetricsObserver(t *testing.T) {
	metrics := &BasicMetricsObserver{}
	n, err := DriveUnindexed(context.Background(), FromInt8(math.MinInt8, math.MaxInt8), collect.Count[int8](),
		WithMetricsObserver(metrics), WithMaxWorkers(4))
	require.NoError(t, err)
	assert.Equal(t, uint64(256), n)

	stats := metrics.Stats()
	assert.Equal(t, uint64(256), stats.Items)
	assert.NotZero(t, stats.IndexedSplits)
	assert.Zero(t, stats.UnindexedSplits)
	assert.Equal(t, stats.Splits()+1, stats.Leaves())
	assert.Equal(t, stats.Splits(), stats.Forks+stats.Inline)
}

func TestLogger(t *testing.T) {
	t.Run("LogsDrive", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		_, err := DriveUnindexed(context.Background(), FromInt(-5, 5), collect.Count[int](), WithLogger(logger))
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, `"msg":"drive completed"`)
		assert.Contains(t, out, `"path":"indexed"`)
		assert.Contains(t, out, `"range":"-5..=5"`)
		assert.Contains(t, out, `"len":11`)
	})

	t.Run("DriveLogsWidth", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		it, ok := FromInt16(-5, 5).AsIndexed()
		require.True(t, ok)
		_, err := Drive(context.Background(), it, plumbing.Consumer[int16, uint64](collect.Count[int16]()), WithLogger(logger))
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, `"bits":16`)
		assert.Contains(t, out, `"path":"indexed"`)
		assert.Contains(t, out, `"range":"-5..=5"`)
	})

	t.Run("LogsFailure", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(slog.NewJSONHandler(&buf, nil))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := DriveUnindexed(ctx, FromInt128(Int128Min, Int128Max), collect.Count[Int128](), WithLogger(logger))
		require.Error(t, err)

		out := buf.String()
		assert.Contains(t, out, `"msg":"drive failed"`)
		assert.Contains(t, out, `"path":"splitting"`)
		assert.NotContains(t, out, `"len"`)
	})

	t.Run("NilDisables", func(t *testing.T) {
		o := applyOptions([]Option{WithLogger(nil), WithMetricsObserver(nil)})
		assert.NotNil(t, o.logger)
		assert.Equal(t, NoopMetricsObserver{}, o.observer)
	})
}
