package model

// Indexer interface is designed to give a unique solver literal to a
// (course, slot) decision pair and vice versa. Literals are 1-based and
// contiguous, so the decision block occupies [1, Decisions()] and auxiliary
// variables can be allocated above it.
type Indexer interface {
	// Returns the positive literal of the (course, slot) decision
	Index(course, slot int) int
	// Returns the (course, slot) pair of a decision literal
	Attributes(index int) (course, slot int)
	// Returns the size of the decision block
	Decisions() int
}

func NewIndexer(courses, slots int) Indexer {
	return &sortedIndexer{
		courses: courses,
		slots:   slots,
	}
}
