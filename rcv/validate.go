package rcv

// ValidatedBallots is the output of Validate (spec §4.1): ballots
// bucketed by what their first reachable choice resolved to.
type ValidatedBallots struct {
	// FirstRound ballots have a valid Filled first choice.
	FirstRound []EngineBallot
	// UWIFirst ballots resolved to Undeclared first, but a later,
	// strict re-advancement found a valid candidate.
	UWIFirst []EngineBallot
	// UWIFirstExhausted is the aggregate weight of ballots whose
	// first reachable choice was Undeclared and which could not be
	// rescued by a second, strict advancement.
	UWIFirstExhausted uint64
}

// Validate converts raw ballots into engine-internal ballots,
// following spec §4.1's per-ballot procedure. It never fails on a
// single malformed ballot: every raw ballot is either placed in a
// bucket, folded into UWIFirstExhausted, or silently dropped.
func Validate(raw []RawBallot, reg *Registry, rules Rules) ValidatedBallots {
	var out ValidatedBallots
	allValid := validSetFor(reg.AllIDs())

	for _, rb := range raw {
		if rb.Count == 0 {
			continue
		}
		choices := truncate(translate(rb.Choices, reg), rules.MaxRankingsAllowed)

		stop, ok := advance(choices, allValid, rules, true /* initial: accept Undeclared */)
		if !ok {
			continue // nothing reachable: drop entirely
		}

		switch stop.Kind {
		case Filled:
			out.FirstRound = append(out.FirstRound, EngineBallot{
				Choices:    choices,
				FirstValid: stop.CandidateID,
				Count:      rb.Count,
			})
		case Undeclared:
			stop2, ok := advance(choices, allValid, rules, false /* strict: no Undeclared stop */)
			if ok && stop2.Kind == Filled {
				out.UWIFirst = append(out.UWIFirst, EngineBallot{
					Choices:    choices,
					FirstValid: stop2.CandidateID,
					Count:      rb.Count,
				})
			} else {
				out.UWIFirstExhausted += rb.Count
			}
		}
	}

	return out
}

func translate(raw []RawChoice, reg *Registry) []Choice {
	choices := make([]Choice, len(raw))
	for i, rc := range raw {
		choices[i] = toChoice(rc, reg)
	}
	return choices
}

func truncate(choices []Choice, max *int) []Choice {
	if max == nil || len(choices) <= *max {
		return choices
	}
	return choices[:*max]
}

func validSetFor(ids []int) map[int]bool {
	m := make(map[int]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
