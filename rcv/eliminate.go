package rcv

import (
	"fmt"
	"sort"
)

// batchEliminate implements spec §4.3.1. running must be in declared
// candidate order. It returns the ids to eliminate this round (empty
// if batch elimination found nothing to do — batch is purely an
// accelerator, never a correctness requirement).
func batchEliminate(t Tally, running []int) []int {
	sorted := make([]int, len(running))
	copy(sorted, running)
	sort.SliceStable(sorted, func(i, j int) bool {
		return t[sorted[i]] < t[sorted[j]]
	})

	prevCum := make([]uint64, len(sorted)+1)
	for i, id := range sorted {
		prevCum[i+1] = prevCum[i] + t[id]
	}

	largestK := 0
	for k := 1; k < len(sorted); k++ {
		if prevCum[k] < t[sorted[k]] {
			largestK = k
		}
	}
	if largestK == 0 {
		return nil
	}
	// largestK candidates at positions 0..largestK-1 collectively hold
	// fewer votes than the candidate at position largestK, so no
	// ordering of single eliminations among them could change their
	// standing against any survivor (spec §4.3.1).
	return append([]int(nil), sorted[:largestK]...)
}

// singleEliminate implements spec §4.3.2: find the minimum tally,
// collect every candidate at that minimum, and if more than one is
// tied, resolve with the configured tie-break mode. running must be in
// declared candidate order; TiebreakUseCandidateOrder relies on that
// order directly.
func singleEliminate(t Tally, running []int, reg *Registry, rules Rules, roundNumber int) (eliminated int, status TiebreakStatus, err error) {
	if len(running) == 0 {
		return 0, Clean, newNoCandidateToEliminate("no running candidates")
	}

	min := t[running[0]]
	for _, id := range running {
		if t[id] < min {
			min = t[id]
		}
	}

	var allSmallest []int
	for _, id := range running {
		if t[id] == min {
			allSmallest = append(allSmallest, id)
		}
	}

	if len(allSmallest) == 1 {
		return allSmallest[0], Clean, nil
	}

	var sorted []int
	switch rules.TiebreakMode.Mode {
	case TiebreakUseCandidateOrder:
		sorted = append([]int(nil), allSmallest...) // already declared order
		reverseInts(sorted)
	case TiebreakRandom:
		sorted = sortByRandomKey(allSmallest, reg, rules.TiebreakMode.Seed, roundNumber)
	default:
		return 0, Clean, newInvalidRule("tiebreak_mode: unsupported")
	}

	pool := sorted
	if len(allSmallest) == len(running) {
		// Safety rule (spec §4.3.2): never let the last entry of the
		// tie-break order be the one selected when every surviving
		// candidate is tied — guards against an empty election.
		pool = sorted[:len(sorted)-1]
	}
	if len(pool) == 0 {
		return 0, Clean, newNoCandidateToEliminate("tie-break left no eligible candidate")
	}

	return pool[0], TiebreakOccurred, nil
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// sortByRandomKey implements the deterministic random tie-break (spec
// §4.3.2, §8 "random-tiebreak stability"): each tied candidate's sort
// key is sprintf("%08d%08d%s", seed, round, name); ties sort
// lexicographically ascending by that key.
func sortByRandomKey(ids []int, reg *Registry, seed uint32, round int) []int {
	type keyed struct {
		id  int
		key string
	}
	ks := make([]keyed, len(ids))
	for i, id := range ids {
		ks[i] = keyed{id: id, key: fmt.Sprintf("%08d%08d%s", seed, round, reg.Name(id))}
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	out := make([]int, len(ks))
	for i, k := range ks {
		out[i] = k.id
	}
	return out
}
