package rcv

// advance is the rule-checking automaton shared by validation and
// per-round ballot transfer (spec §4.2). It scans choices left to
// right for the first index whose Choice is a Filled candidate in
// validSet (or, when initial is true, the first Undeclared — used by
// the validator's first pass, spec §4.1 step 2), then applies the
// duplicate-candidate, overvote and skipped-rank policies to the
// prefix before that index. It returns the Choice at that index and
// ok=true, or ok=false if no acceptable stop exists or a prefix rule
// rejects the ballot.
//
// For the initial-Undeclared stop, CandidateID is meaningless (there
// is no candidate yet) — callers distinguish the two cases by the
// returned Choice's Kind, not by id.
func advance(choices []Choice, validSet map[int]bool, rules Rules, initial bool) (stop Choice, ok bool) {
	idx := -1
	for i, c := range choices {
		isStop := (c.Kind == Filled && validSet[c.CandidateID]) || (initial && c.Kind == Undeclared)
		if isStop {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Choice{}, false
	}

	prefix := choices[:idx]
	if rejectedByPrefix(prefix, rules) {
		return Choice{}, false
	}
	return choices[idx], true
}

// rejectedByPrefix applies the duplicate-candidate, overvote and
// skipped-rank prefix rules of spec §4.2 step 3 to the choices
// strictly before the stopping index.
func rejectedByPrefix(prefix []Choice, rules Rules) bool {
	if rules.DuplicateCandidateMode == DuplicateExhaust && hasDuplicateFilled(prefix) {
		return true
	}
	if rules.OvervoteRule == OvervoteExhaustImmediately && hasOvervote(prefix) {
		return true
	}
	switch rules.SkippedRankRule.Mode {
	case SkippedRankExhaustOnFirstOccurrence:
		if hasSkip(prefix) {
			return true
		}
	case SkippedRankMaxAllowed:
		if maxSkipRun(prefix) >= rules.SkippedRankRule.Max+1 {
			return true
		}
	case SkippedRankUnlimited:
		// no prefix check
	}
	return false
}

func hasDuplicateFilled(prefix []Choice) bool {
	seen := make(map[int]bool, len(prefix))
	for _, c := range prefix {
		if c.Kind != Filled {
			continue
		}
		if seen[c.CandidateID] {
			return true
		}
		seen[c.CandidateID] = true
	}
	return false
}

func hasOvervote(prefix []Choice) bool {
	for _, c := range prefix {
		if c.Kind == Overvote {
			return true
		}
	}
	return false
}

func hasSkip(prefix []Choice) bool {
	for _, c := range prefix {
		if c.Kind == BlankOrUndervote {
			return true
		}
	}
	return false
}

// maxSkipRun returns the length of the longest maximal contiguous run
// of BlankOrUndervote choices in prefix. Every other kind, including
// Overvote, resets the run (spec §4.2: "Overvotes break a skip run").
func maxSkipRun(prefix []Choice) int {
	longest, current := 0, 0
	for _, c := range prefix {
		if c.Kind == BlankOrUndervote {
			current++
			if current > longest {
				longest = current
			}
			continue
		}
		current = 0
	}
	return longest
}
