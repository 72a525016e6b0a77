package match

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// DefaultMaxAttempts is the default solver retry budget.
const DefaultMaxAttempts = 50

// Config controls the randomized search.
type Config struct {
	// MaxAttempts bounds how many solver attempts run. Must be positive;
	// callers wanting the default pass DefaultMaxAttempts.
	MaxAttempts int

	// StopOnFirst stops the search at the first successful attempt
	// instead of collecting candidates across the full budget.
	StopOnFirst bool

	// Seed, when non-nil, makes the search reproducible: attempt k always
	// draws from a random stream derived from (seed, k), and the final
	// pick uses a stream derived from the seed alone. When nil, every
	// run is independent.
	Seed *int64

	// Workers sets how many attempts run concurrently. Zero or one means
	// sequential. Attempts are independent, so concurrency only shortens
	// wall-clock time; with a fixed Seed and StopOnFirst unset the
	// outcome is identical regardless of Workers.
	Workers int
}

func (c Config) validate() error {
	if c.MaxAttempts <= 0 {
		return &Error{
			Code:    ErrCodeBadConfig,
			Message: fmt.Sprintf("max attempts must be positive, got %d", c.MaxAttempts),
		}
	}
	if c.Workers < 0 {
		return &Error{
			Code:    ErrCodeBadConfig,
			Message: fmt.Sprintf("workers must not be negative, got %d", c.Workers),
		}
	}
	return nil
}

// attemptSource derives the random stream for one attempt. Stream 0 is
// reserved for the final candidate pick, so attempt k uses stream k+1.
func attemptSource(base uint64, attempt int) *rand.Rand {
	return rand.New(rand.NewPCG(base, uint64(attempt)+1))
}

func (c Config) baseSeed() uint64 {
	if c.Seed != nil {
		return uint64(*c.Seed)
	}
	return rand.Uint64()
}

// candidateSet collects distinct successful matchings across attempts.
// Safe for concurrent use; the mutex is the only coordination point
// shared between attempts.
type candidateSet struct {
	mu       sync.Mutex
	found    map[string]Assignment
	earliest map[string]int // canonical key -> lowest attempt index that produced it
}

func newCandidateSet() *candidateSet {
	return &candidateSet{
		found:    make(map[string]Assignment),
		earliest: make(map[string]int),
	}
}

func (c *candidateSet) add(m Assignment, attempt int) {
	key := canonicalKey(m)
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.earliest[key]; !ok || attempt < prev {
		c.found[key] = m
		c.earliest[key] = attempt
	}
}

func (c *candidateSet) empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.found) == 0
}

// pick selects the final matching. Stop-on-first searches return the
// candidate from the earliest attempt; otherwise one candidate is chosen
// uniformly at random, iterating keys in sorted order so the choice
// depends only on the rng, not on map iteration or attempt completion
// order.
func (c *candidateSet) pick(rng *rand.Rand, stopOnFirst bool) Assignment {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.found) == 0 {
		return nil
	}

	keys := make([]string, 0, len(c.found))
	for k := range c.found {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if stopOnFirst {
		best := keys[0]
		for _, k := range keys[1:] {
			if c.earliest[k] < c.earliest[best] {
				best = k
			}
		}
		return c.found[best]
	}

	return c.found[keys[rng.IntN(len(keys))]]
}

// canonicalKey renders a matching as a sorted giver=receiver sequence so
// the same matching produced by different attempts deduplicates.
func canonicalKey(m Assignment) string {
	pairs := make([]string, 0, len(m))
	for giver, receiver := range m {
		pairs = append(pairs, giver+"="+receiver)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "\n")
}

// searchRandom runs up to cfg.MaxAttempts solver attempts over elig,
// each with independently shuffled giver ordering and target lists, and
// picks one of the distinct successful matchings.
//
// givers must be the sorted key set of elig; the fixed base ordering is
// what makes seeded runs reproducible.
func searchRandom(elig Eligibility, givers []string, cfg Config) (Assignment, error) {
	base := cfg.baseSeed()
	cands := newCandidateSet()

	var ran int
	if cfg.Workers > 1 {
		ran = runParallel(elig, givers, cfg, base, cands)
	} else {
		ran = runSequential(elig, givers, cfg, base, cands)
	}

	if cands.empty() {
		return nil, &Error{
			Code:     ErrCodeNoMatching,
			Message:  "no perfect matching found under the current constraints",
			Attempts: ran,
		}
	}

	pickRng := rand.New(rand.NewPCG(base, 0))
	return cands.pick(pickRng, cfg.StopOnFirst), nil
}

func runSequential(elig Eligibility, givers []string, cfg Config, base uint64, cands *candidateSet) int {
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		rng := attemptSource(base, attempt)
		if m, ok := runAttempt(elig, givers, rng); ok {
			cands.add(m, attempt)
			if cfg.StopOnFirst {
				return attempt + 1
			}
		}
	}
	return cfg.MaxAttempts
}

// runParallel fans attempts out over cfg.Workers goroutines. Each
// attempt derives its own rand stream from its index, so concurrent
// attempts never reproduce identical draws. With StopOnFirst set the
// first success cancels the remaining attempts best-effort; in-flight
// attempts still finish and their results land in the candidate set,
// where pick resolves them by attempt index.
func runParallel(elig Eligibility, givers []string, cfg Config, base uint64, cands *candidateSet) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	attempts := make(chan int)
	go func() {
		defer close(attempts)
		for i := 0; i < cfg.MaxAttempts; i++ {
			select {
			case attempts <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var ran atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for attempt := range attempts {
				rng := attemptSource(base, attempt)
				m, ok := runAttempt(elig, givers, rng)
				ran.Add(1)
				if ok {
					cands.add(m, attempt)
					if cfg.StopOnFirst {
						cancel()
					}
				}
			}
		}()
	}
	wg.Wait()

	return int(ran.Load())
}

// runAttempt shuffles a private copy of the eligibility map and the
// giver ordering, then invokes the solver once. Target lists are
// shuffled iterating givers in their fixed base order so a seeded rng
// consumes draws deterministically.
func runAttempt(elig Eligibility, givers []string, rng *rand.Rand) (Assignment, bool) {
	shuffled := elig.clone()
	for _, g := range givers {
		targets := shuffled[g]
		rng.Shuffle(len(targets), func(i, j int) {
			targets[i], targets[j] = targets[j], targets[i]
		})
	}

	order := make([]string, len(givers))
	copy(order, givers)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	return maximumMatching(shuffled, order)
}
