package pattern

// Matches reports whether candidate reproduces stored within the given
// tolerance radius. The check fails closed on a length mismatch and
// otherwise requires every point, in order, to fall within tolerance pixels
// of its stored counterpart. There is no partial credit: a single point
// outside the radius rejects the whole candidate.
func Matches(stored, candidate Sequence, tolerance int) bool {
	if len(stored) != len(candidate) {
		return false
	}

	for i := range stored {
		if Distance(stored[i], candidate[i]) > float64(tolerance) {
			return false
		}
	}

	return true
}
