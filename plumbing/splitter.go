package plumbing

// splitter tracks the remaining split budget of one task. It is a value; each
// half of a split gets its own copy.
type splitter struct {
	splits uint
}

func (s *splitter) try(migrated bool, threads uint) bool {
	if migrated {
		// A stolen task refills its budget so the thief can split further.
		s.splits = max(threads, s.splits/2)
		return true
	}
	if s.splits > 0 {
		s.splits /= 2
		return true
	}
	return false
}

type lengthSplitter struct {
	inner splitter
	min   uint
}

func newLengthSplitter(minLen, maxLen, n, threads uint) lengthSplitter {
	splits := threads
	if maxLen > 0 {
		splits = max(splits, n/maxLen)
	}
	return lengthSplitter{
		inner: splitter{splits: splits},
		min:   max(minLen, 1),
	}
}

func (ls *lengthSplitter) try(n uint, migrated bool, threads uint) bool {
	return n/2 >= ls.min && ls.inner.try(migrated, threads)
}
