package lz

import (
	roaring "github.com/RoaringBitmap/roaring"
)

// startSets holds one roaring bitmap of factor starts per task, so tasks can
// record starts without sharing a bitmap.
type startSets struct {
	sets []*roaring.Bitmap
}

func newStartSets(tasks int) *startSets {
	s := &startSets{sets: make([]*roaring.Bitmap, tasks)}
	for i := range s.sets {
		s.sets[i] = roaring.New()
	}
	return s
}

func (s *startSets) add(task, pos int) {
	s.sets[task].Add(uint32(pos))
}

// union merges every task's bitmap using up to workers goroutines.
func (s *startSets) union(workers int) *roaring.Bitmap {
	switch len(s.sets) {
	case 0:
		return roaring.New()
	case 1:
		return clone(s.sets[0])
	}
	return roaring.ParOr(workers, s.sets...)
}

func clone(b *roaring.Bitmap) *roaring.Bitmap {
	if b == nil {
		return roaring.New()
	}
	c := roaring.New()
	c.Or(b) // copy
	return c
}
