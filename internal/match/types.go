package match

// Participant is the engine's view of one roster entry.
//
// Name must be unique within the input collection. Allowed, when
// non-empty, restricts who this participant may be assigned to; entries
// must name other known participants. Both properties are preconditions
// validated upstream (see internal/roster), not re-checked here.
type Participant struct {
	Name    string
	Allowed []string
}

// Assignment maps each giver to the receiver they drew.
//
// A successful assignment is total and injective over the participant
// set: every participant appears exactly once as a key and exactly once
// as a value, and no key maps to itself.
type Assignment map[string]string

// Eligibility maps each giver to the ordered list of receivers they may
// draw. Lists are duplicate-free and never contain the giver. Order
// carries no meaning at construction time; the search layer shuffles it
// per attempt to perturb which matching the solver lands on.
type Eligibility map[string][]string

// clone returns a deep copy. The search layer shuffles the copy's lists
// in place, so the base map handed out by BuildEligibility is never
// mutated across attempts.
func (e Eligibility) clone() Eligibility {
	out := make(Eligibility, len(e))
	for giver, targets := range e {
		cp := make([]string, len(targets))
		copy(cp, targets)
		out[giver] = cp
	}
	return out
}
