package model

type sortedIndexer struct {
	courses int
	slots   int
}

func (i *sortedIndexer) Index(course, slot int) int {
	return 1 + slot + i.slots*course
}

func (i *sortedIndexer) Attributes(index int) (course, slot int) {
	index--

	slot = index % i.slots
	index = index / i.slots

	course = index

	return course, slot
}

func (i *sortedIndexer) Decisions() int {
	return i.courses * i.slots
}
