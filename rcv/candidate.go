// Package rcv implements a single-winner ranked-choice (instant-runoff)
// tabulation engine: the round-driven state machine that consumes
// validated ballots, maintains per-candidate tallies, applies
// elimination/election policy, transfers ballots and resolves ties.
//
// The engine is single-threaded and synchronous (no goroutines, no
// channels, no I/O): one election run is one call to Run. Everything
// that touches the outside world — vendor ballot formats, CLI flags,
// config files, result persistence — lives in sibling packages and
// calls into the engine through Builder.
package rcv

import "fmt"

// Candidate is one entry in the declared candidate registry. Order in
// the registry is significant: it is the canonical tie-break order
// under TiebreakUseCandidateOrder and the emission order of round
// statistics.
type Candidate struct {
	Name     string
	Code     string // optional short code, e.g. ballot-system candidate id
	Excluded bool   // excluded candidates are treated as Undeclared (§4.1)
}

// Registry is the ordered, id-assigned candidate list for one election.
// Ids are dense integers 1..N assigned by position; id 0 is reserved and
// never assigned to a real candidate (see spec §3 and §9's note on the
// deprecated synthetic UWI-candidate-0 design).
type Registry struct {
	candidates []Candidate
	byName     map[string]int
}

// NewRegistry builds a Registry from an ordered candidate list,
// assigning dense ids 1..N by position.
func NewRegistry(candidates []Candidate) (*Registry, error) {
	byName := make(map[string]int, len(candidates))
	for i, c := range candidates {
		if c.Name == "" {
			return nil, fmt.Errorf("candidate at position %d has empty name", i)
		}
		if _, ok := byName[c.Name]; ok {
			return nil, fmt.Errorf("duplicate candidate name %q", c.Name)
		}
		byName[c.Name] = i + 1
	}
	out := make([]Candidate, len(candidates))
	copy(out, candidates)
	return &Registry{candidates: out, byName: byName}, nil
}

// Len returns the number of declared candidates.
func (r *Registry) Len() int { return len(r.candidates) }

// ByID returns the candidate for id, or false if id is out of range.
func (r *Registry) ByID(id int) (Candidate, bool) {
	if id < 1 || id > len(r.candidates) {
		return Candidate{}, false
	}
	return r.candidates[id-1], true
}

// ByName resolves a declared (non-excluded) candidate's id. Excluded
// candidates and unknown names both report ok=false — callers must
// treat both identically as Undeclared (§4.1 step 1).
func (r *Registry) ByName(name string) (id int, ok bool) {
	id, ok = r.byName[name]
	if !ok {
		return 0, false
	}
	if r.candidates[id-1].Excluded {
		return 0, false
	}
	return id, true
}

// AllIDs returns the ids of every non-excluded candidate in registry
// order. Excluded candidates are left out, but the ids assigned to them
// still occupy their slot in 1..N, so the result can have gaps.
func (r *Registry) AllIDs() []int {
	ids := make([]int, 0, len(r.candidates))
	for i, c := range r.candidates {
		if c.Excluded {
			continue
		}
		ids = append(ids, i+1)
	}
	return ids
}

// Name is a convenience lookup used by statistics emission; it panics
// on an unknown id since that indicates a programmer error (spec §7:
// "a candidate in the transfer map unknown to the registry" must never
// be silently swallowed).
func (r *Registry) Name(id int) string {
	c, ok := r.ByID(id)
	if !ok {
		panic(fmt.Sprintf("rcv: unknown candidate id %d", id))
	}
	return c.Name
}
