package match

// solver runs Hopcroft-Karp maximum bipartite matching over an
// eligibility map. Givers form the left side, receivers the right side
// (the union of all target lists). Names are interned to dense indices
// up front so the phase loops work on int slices.
//
// The solver is deterministic: given the same giver ordering and the
// same per-giver target ordering it always lands on the same matching.
// The search layer exploits this by shuffling both between attempts.
type solver struct {
	givers    []string // giver ordering, as supplied by the caller
	receivers []string
	recvIndex map[string]int

	// adjacency: giver position in givers -> receiver indices, in the
	// order the eligibility map lists them
	adj [][]int

	matchedRecv  []int // giver pos -> receiver index, or unmatched
	matchedGiver []int // receiver index -> giver pos, or unmatched

	dist []int // BFS layer per giver pos
}

const (
	unmatched = -1
	infinity  = int(^uint(0) >> 1)
)

// newSolver indexes the eligibility map under the supplied giver
// ordering. order must contain exactly the keys of elig.
func newSolver(elig Eligibility, order []string) *solver {
	s := &solver{
		givers:    order,
		recvIndex: make(map[string]int),
	}

	s.adj = make([][]int, len(order))
	for i, giver := range order {
		targets := elig[giver]
		row := make([]int, len(targets))
		for j, t := range targets {
			idx, ok := s.recvIndex[t]
			if !ok {
				idx = len(s.receivers)
				s.recvIndex[t] = idx
				s.receivers = append(s.receivers, t)
			}
			row[j] = idx
		}
		s.adj[i] = row
	}

	s.matchedRecv = make([]int, len(order))
	s.matchedGiver = make([]int, len(s.receivers))
	s.dist = make([]int, len(order))
	for i := range s.matchedRecv {
		s.matchedRecv[i] = unmatched
	}
	for i := range s.matchedGiver {
		s.matchedGiver[i] = unmatched
	}

	return s
}

// maximumMatching computes a maximum matching from givers to receivers.
// It returns a perfect matching covering every giver, or ok=false when
// the eligibility map admits none. A failed search is an expected
// outcome, not an error.
func maximumMatching(elig Eligibility, order []string) (Assignment, bool) {
	s := newSolver(elig, order)

	size := 0
	for s.layer() {
		for u := range s.givers {
			if s.matchedRecv[u] == unmatched && s.augment(u) {
				size++
			}
		}
	}

	if size != len(s.givers) {
		return nil, false
	}

	result := make(Assignment, len(s.givers))
	for u, giver := range s.givers {
		result[giver] = s.receivers[s.matchedRecv[u]]
	}
	return result, true
}

// layer runs the BFS phase: every unmatched giver seeds layer 0, and
// alternating unmatched/matched edges extend the layering through
// receivers back to their matched givers. It reports whether at least
// one unmatched receiver is reachable; when none is, the matching is
// already maximum and the outer loop stops.
func (s *solver) layer() bool {
	queue := make([]int, 0, len(s.givers))
	for u := range s.givers {
		if s.matchedRecv[u] == unmatched {
			s.dist[u] = 0
			queue = append(queue, u)
		} else {
			s.dist[u] = infinity
		}
	}

	// Layer of the shortest augmenting path found so far. BFS beyond it
	// cannot shorten any path, so exploration stops at this depth.
	reached := infinity

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		if s.dist[u] >= reached {
			continue
		}
		for _, v := range s.adj[u] {
			w := s.matchedGiver[v]
			if w == unmatched {
				// Free receiver: an augmenting path of length dist[u]+1 exists.
				if reached == infinity {
					reached = s.dist[u] + 1
				}
			} else if s.dist[w] == infinity {
				s.dist[w] = s.dist[u] + 1
				queue = append(queue, w)
			}
		}
	}

	return reached != infinity
}

// augment runs the DFS phase for one unmatched giver, following only
// edges that advance exactly one BFS layer per hop. On success the
// matching edges along the path are flipped; on failure the giver's
// layer is invalidated so it is not retried within this phase.
func (s *solver) augment(u int) bool {
	for _, v := range s.adj[u] {
		w := s.matchedGiver[v]
		if w == unmatched || (s.dist[w] == s.dist[u]+1 && s.augment(w)) {
			s.matchedRecv[u] = v
			s.matchedGiver[v] = u
			return true
		}
	}
	s.dist[u] = infinity
	return false
}
