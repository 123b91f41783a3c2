package sigv4

// keyValuePair references a single key/value record sliced out of
// caller-supplied input. index records insertion order so comparators can
// extend their ordering into a total order.
type keyValuePair struct {
	key   string
	value string
	index int
}

// sortKeyValuePairs sorts records in place with an iterative quicksort.
// Always recursing into the smaller partition first (by pushing the larger
// one) keeps the pending-interval stack logarithmic in len(records). The
// comparators used by the query and header encoders define total orders,
// which is what makes the overall canonical output stable.
func sortKeyValuePairs(records []keyValuePair, cmp func(a, b keyValuePair) int) {
	if len(records) < 2 {
		return
	}

	type span struct{ lo, hi int }
	stack := make([]span, 0, 2*bitLen(len(records)))
	stack = append(stack, span{0, len(records) - 1})

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for s.lo < s.hi {
			p := partition(records, s.lo, s.hi, cmp)

			// Push the larger side, keep iterating on the smaller.
			if p-s.lo < s.hi-p {
				if p+1 < s.hi {
					stack = append(stack, span{p + 1, s.hi})
				}
				s.hi = p - 1
			} else {
				if s.lo < p-1 {
					stack = append(stack, span{s.lo, p - 1})
				}
				s.lo = p + 1
			}
		}
	}
}

// partition arranges records[lo..hi] around the last element as pivot and
// returns the pivot's final position.
func partition(records []keyValuePair, lo, hi int, cmp func(a, b keyValuePair) int) int {
	pivot := records[hi]
	i := lo
	for j := lo; j < hi; j++ {
		if cmp(records[j], pivot) < 0 {
			records[i], records[j] = records[j], records[i]
			i++
		}
	}
	records[i], records[hi] = records[hi], records[i]
	return i
}

func bitLen(n int) int {
	bits := 0
	for n > 0 {
		bits++
		n >>= 1
	}
	return bits
}
