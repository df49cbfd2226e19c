package builder

// sequenceAllocator hands out ordered-list sequence ids in document order.
// Each independently-started ordered list gets the next id; nested ordered
// lists inherit their ancestor's id and never touch the allocator. The
// maximum handed out is what the packager uses to pre-register numbering
// definitions, one per id, so unrelated lists never share a running
// counter.
//
// The allocator is owned by a single conversion walk and reset by virtue
// of being recreated per Build call; there is no cross-document state.
type sequenceAllocator struct {
	max int
}

// Next allocates the next sequence id, starting at 1.
func (a *sequenceAllocator) Next() int {
	a.max++
	return a.max
}

// Max reports the highest id allocated so far; 0 if none.
func (a *sequenceAllocator) Max() int {
	return a.max
}
