package match

// BuildEligibility derives the eligibility map for a validated
// participant collection.
//
// A participant with a non-empty allow-list may target exactly the people
// on it (declaration order preserved, duplicates dropped). A participant
// with no allow-list, or an empty one, may target everyone but themselves
// - absence of a constraint means unconstrained, never "no one".
//
// The function is total: validated input cannot make it fail. Self
// entries and duplicates in an allow-list are dropped rather than
// rejected; upstream validation already reports them as errors.
func BuildEligibility(people []Participant) Eligibility {
	elig := make(Eligibility, len(people))

	for _, p := range people {
		if len(p.Allowed) > 0 {
			elig[p.Name] = dedupTargets(p.Name, p.Allowed)
			continue
		}
		targets := make([]string, 0, len(people)-1)
		for _, other := range people {
			if other.Name != p.Name {
				targets = append(targets, other.Name)
			}
		}
		elig[p.Name] = targets
	}

	return elig
}

// dedupTargets copies an allow-list, dropping duplicates and any entry
// equal to the giver, preserving first-occurrence order.
func dedupTargets(giver string, allowed []string) []string {
	seen := make(map[string]bool, len(allowed))
	out := make([]string, 0, len(allowed))
	for _, t := range allowed {
		if t == giver || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
