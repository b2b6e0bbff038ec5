package collect

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/parange/plumbing"
)

type bitmapConsumer struct{}

// Bitmap returns a consumer that gathers uint32 elements into a compressed
// bitmap. Pieces are merged with Or, so the result does not depend on how the
// range was split.
func Bitmap() plumbing.UnindexedConsumer[uint32, *roaring.Bitmap] {
	return bitmapConsumer{}
}

func (c bitmapConsumer) SplitAt(uint) (plumbing.Consumer[uint32, *roaring.Bitmap], plumbing.Consumer[uint32, *roaring.Bitmap], plumbing.Reducer[*roaring.Bitmap]) {
	return c, c, c.ToReducer()
}

func (bitmapConsumer) IntoFolder() plumbing.Folder[uint32, *roaring.Bitmap] {
	return &bitmapFolder{bm: roaring.New()}
}

func (bitmapConsumer) Full() bool { return false }

func (c bitmapConsumer) SplitOffLeft() plumbing.UnindexedConsumer[uint32, *roaring.Bitmap] { return c }

func (bitmapConsumer) ToReducer() plumbing.Reducer[*roaring.Bitmap] {
	return plumbing.ReduceFunc[*roaring.Bitmap](func(left, right *roaring.Bitmap) *roaring.Bitmap {
		left.Or(right)
		return left
	})
}

type bitmapFolder struct {
	bm *roaring.Bitmap

	// The pending run [runStart, runEnd) is added with a single AddRange.
	runStart, runEnd uint64
	inRun            bool
}

func (f *bitmapFolder) Consume(v uint32) {
	x := uint64(v)
	if f.inRun && x == f.runEnd {
		f.runEnd++
		return
	}
	f.flush()
	f.runStart, f.runEnd, f.inRun = x, x+1, true
}

func (f *bitmapFolder) flush() {
	if f.inRun {
		f.bm.AddRange(f.runStart, f.runEnd)
		f.inRun = false
	}
}

func (f *bitmapFolder) Full() bool { return false }

func (f *bitmapFolder) Complete() *roaring.Bitmap {
	f.flush()
	f.bm.RunOptimize()
	return f.bm
}
