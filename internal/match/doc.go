// Package match implements the constrained random perfect-matching engine.
//
// The engine assigns every participant exactly one other participant as a
// gift target, honoring per-person allow-lists, so that the result is a
// bijection over the participant set with no self-assignment.
//
// ARCHITECTURE:
//
// Three layers, composed by the Find facade:
//
//  1. Constraint builder (eligibility.go): participant list -> eligibility
//     map. A participant with an explicit allow-list may only target those
//     people; everyone else may target anyone but themselves.
//  2. Bipartite solver (solver.go): Hopcroft-Karp maximum matching over the
//     eligibility map. Deterministic given a fixed giver ordering and fixed
//     per-giver target ordering.
//  3. Randomized search (search.go): the solver is deterministic, so variety
//     comes from shuffling its inputs. Each attempt re-shuffles the giver
//     ordering and every target list independently, distinct successful
//     matchings are collected, and one is picked at random at the end.
//
// DETERMINISM:
//
// With Config.Seed set, the whole search is reproducible: attempt k always
// draws from a source derived from seed+k, and the final pick is made over
// the candidate set in canonical key order. Without a seed every run is
// independent.
//
// The search approximates variety across valid matchings; it does NOT
// sample uniformly over all perfect matchings. Upgrading to a principled
// uniform sampler (e.g. an MCMC walk over perfect matchings) would be a
// behavior change, not a bug fix.
//
// SECRECY:
//
// The engine never logs, prints, or persists assignments. Keeping the
// result secret is the caller's job.
package match
