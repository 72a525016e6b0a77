package match

import (
	"fmt"
	"sort"
)

// Find runs the constrained random matching search: it derives the
// eligibility map for the given participants and searches for a perfect
// matching under cfg.
//
// On success the returned Assignment is a bijection over the participant
// set honoring every allow-list, with no self-assignment. On failure the
// returned error is a *Error; IsNoMatching distinguishes "no matching
// exists or none was found within the budget" (an expected outcome the
// caller reports to the operator) from misuse such as an empty roster or
// a bad config.
//
// Find never returns a partial matching and never logs or persists the
// result.
func Find(people []Participant, cfg Config) (Assignment, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return nil, &Error{
			Code:    ErrCodeEmptyRoster,
			Message: "participant collection is empty",
		}
	}

	elig := BuildEligibility(people)

	givers := make([]string, 0, len(elig))
	for g := range elig {
		givers = append(givers, g)
	}
	sort.Strings(givers)

	// A giver with no eligible targets can never be matched; fail fast
	// instead of burning the attempt budget on a doomed graph.
	for _, g := range givers {
		if len(elig[g]) == 0 {
			return nil, &Error{
				Code:    ErrCodeNoMatching,
				Message: fmt.Sprintf("participant %q has no eligible targets", g),
			}
		}
	}

	return searchRandom(elig, givers, cfg)
}
