package exercise

import "math/rand/v2"

type tagged[T any] struct {
	value T
	orig  int
}

// TrackedShuffle returns a uniformly shuffled copy of items along with the
// new position of the element originally at index tracked (-1 if tracked is
// out of range). Items are tagged with their original index before the
// shuffle, so duplicates cannot confuse the lookup.
func TrackedShuffle[T any](rng *rand.Rand, items []T, tracked int) ([]T, int) {
	tags := make([]tagged[T], len(items))
	for i, v := range items {
		tags[i] = tagged[T]{value: v, orig: i}
	}
	rng.Shuffle(len(tags), func(i, j int) {
		tags[i], tags[j] = tags[j], tags[i]
	})

	out := make([]T, len(tags))
	pos := -1
	for i, t := range tags {
		out[i] = t.value
		if t.orig == tracked {
			pos = i
		}
	}
	return out, pos
}
