package models

// LocationPool is the fixed list of candidate locations for a deployment.
// Guesses address it with 1-based indices.
type LocationPool []string

// At returns the location for a 1-based index
func (p LocationPool) At(index int) (string, bool) {
	if index < 1 || index > len(p) {
		return "", false
	}
	return p[index-1], true
}

// Clone returns a copy safe to hand to another owner
func (p LocationPool) Clone() LocationPool {
	out := make(LocationPool, len(p))
	copy(out, p)
	return out
}
