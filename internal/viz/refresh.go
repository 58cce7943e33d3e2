package viz

// RefreshPolicy throttles chart, stats and particle updates to every Nth
// sample. The final sample of a sweep always refreshes.
type RefreshPolicy struct {
	Every int
}

func (r RefreshPolicy) Due(index, total int) bool {
	every := r.Every
	if every <= 0 {
		every = 1
	}
	return index%every == 0 || index == total-1
}
