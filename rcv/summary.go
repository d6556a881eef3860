package rcv

import "strconv"

// RoundSummary is the machine-readable per-round summary described by
// spec §6, shaped for direct JSON marshaling by a caller. It is a
// derived, display-oriented view of RoundStatistics — nothing here
// feeds back into the engine.
type RoundSummary struct {
	Round        int                `json:"round"`
	Tally        map[string]string  `json:"tally"`
	TallyResults []TallyResultEntry `json:"tallyResults"`
}

// TallyResultEntry is one candidate's (or the UWI row's) disposition
// within a round summary. Exactly one of Eliminated/Elected is set.
type TallyResultEntry struct {
	Eliminated string            `json:"eliminated,omitempty"`
	Elected    string            `json:"elected,omitempty"`
	Transfers  map[string]string `json:"transfers,omitempty"`
	Exhausted  string            `json:"exhausted,omitempty"`
}

// Summary renders a VotingResult into the spec §6 machine-readable
// shape used to compare against reference fixtures.
func (v VotingResult) Summary(reg *Registry) []RoundSummary {
	out := make([]RoundSummary, 0, len(v.Rounds))
	isLastRound := func(i int) bool { return i == len(v.Rounds)-1 }

	for i, round := range v.Rounds {
		rs := RoundSummary{Round: round.Round, Tally: map[string]string{}}
		for _, cand := range round.Results {
			rs.Tally[cand.Name] = strconv.FormatUint(cand.Count, 10)

			if cand.Status != Eliminated {
				if cand.Status == Elected {
					rs.TallyResults = append(rs.TallyResults, TallyResultEntry{Elected: cand.Name})
				}
				continue
			}
			// Eliminations are never listed in the round an election
			// occurs (spec §6). A round without a tie-break can both
			// eliminate and elect, so this drops the eliminated rows of
			// the final round.
			if isLastRound(i) && len(v.Winners) > 0 {
				continue
			}
			if len(cand.Transfers) == 0 && cand.ExhaustedHere == 0 {
				continue
			}
			entry := TallyResultEntry{Eliminated: cand.Name}
			if len(cand.Transfers) > 0 {
				entry.Transfers = make(map[string]string, len(cand.Transfers))
				for toID, weight := range cand.Transfers {
					entry.Transfers[reg.Name(toID)] = strconv.FormatUint(weight, 10)
				}
			}
			if cand.ExhaustedHere > 0 {
				entry.Exhausted = strconv.FormatUint(cand.ExhaustedHere, 10)
			}
			rs.TallyResults = append(rs.TallyResults, entry)
		}

		if round.UWI != nil && (len(round.UWI.Transfers) > 0 || round.UWI.ExhaustedHere > 0) {
			entry := TallyResultEntry{Eliminated: "Undeclared Write-ins"}
			if len(round.UWI.Transfers) > 0 {
				entry.Transfers = make(map[string]string, len(round.UWI.Transfers))
				for toID, weight := range round.UWI.Transfers {
					entry.Transfers[reg.Name(toID)] = strconv.FormatUint(weight, 10)
				}
			}
			if round.UWI.ExhaustedHere > 0 {
				entry.Exhausted = strconv.FormatUint(round.UWI.ExhaustedHere, 10)
			}
			rs.TallyResults = append(rs.TallyResults, entry)
		}

		out = append(out, rs)
	}
	return out
}
