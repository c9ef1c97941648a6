package ember

// SpriteBudget is the global ceiling on simultaneously visible particle-like
// objects: the main subject, active flying particles, and active landed (or
// evolving) particles. Both the spawn path and the landing path consult it
// before mutating any pool state; a refusal is a silent no-op, never a
// partially-applied change.
type SpriteBudget struct {
	// Max is the ceiling, main subject included. Zero or negative disables
	// the budget.
	Max int
}

// Allows reports whether one more particle fits under the budget given the
// current active counts. The main subject always counts as one.
func (b SpriteBudget) Allows(activeFlying, activeLanded int) bool {
	if b.Max <= 0 {
		return true
	}
	return 1+activeFlying+activeLanded < b.Max
}

// Count returns the current derived sprite count.
func (b SpriteBudget) Count(activeFlying, activeLanded int) int {
	return 1 + activeFlying + activeLanded
}
