package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// FirstGap returns the first unused value of an ascending sequence of
// non-negative integers, scanning from zero. If there is no gap, the count
// of values is returned.
func FirstGap(sorted iter.Seq[int]) (gap int) {
	prev := -1
	for val := range sorted {
		if val-prev > 1 {
			return prev + 1
		}
		prev = val
		gap++
	}
	return
}
