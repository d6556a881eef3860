package rcv

import "sort"

// roundOutcome is the round executor's output: the ballot set carried
// into the next round, this round's statistics, and which candidates
// were newly elected or eliminated (spec §4.3's RoundResult).
type roundOutcome struct {
	nextBallots []EngineBallot
	stats       RoundStatistics
	elected     []int
	eliminated  []int
}

// executeRound runs one round of spec §4.3 over ballots for the given
// running candidates (declared order, already excluding anyone
// eliminated in an earlier round).
func executeRound(ballots []EngineBallot, running []int, reg *Registry, rules Rules, roundNumber int) (roundOutcome, error) {
	tally := computeTally(ballots, running)
	total := tally.totalWeight()
	threshold := computeThreshold(total)

	// Trivial termination (spec §4.3 step 3).
	if len(tally) == 1 {
		var onlyID int
		for id := range tally {
			onlyID = id
		}
		return roundOutcome{
			nextBallots: ballots,
			elected:     []int{onlyID},
			stats: RoundStatistics{
				Round:     roundNumber,
				Threshold: threshold,
				Tiebreak:  Clean,
				Results: []CandidateRoundResult{{
					CandidateID: onlyID,
					Name:        reg.Name(onlyID),
					Count:       tally[onlyID],
					Status:      Elected,
				}},
			},
		}, nil
	}

	eliminatedSet, tiebreak, err := selectEliminations(tally, running, reg, rules, roundNumber)
	if err != nil {
		return roundOutcome{}, err
	}

	nextBallots, transfers, exhausted := transferBallots(ballots, eliminatedSet, running, rules)

	elected := electWinners(tally, running, eliminatedSet, threshold, tiebreak)

	stats := buildStatistics(roundNumber, threshold, tiebreak, running, reg, tally, eliminatedSet, elected, transfers, exhausted)

	return roundOutcome{
		nextBallots: nextBallots,
		stats:       stats,
		elected:     elected,
		eliminated:  eliminatedSet,
	}, nil
}

// selectEliminations implements spec §4.3 step 4: try batch
// elimination first when configured, falling back to single
// elimination with tie-break.
func selectEliminations(tally Tally, running []int, reg *Registry, rules Rules, roundNumber int) (eliminated []int, status TiebreakStatus, err error) {
	if rules.EliminationAlgorithm == EliminationBatch {
		if batch := batchEliminate(tally, running); len(batch) > 0 {
			return batch, Clean, nil
		}
	}

	id, status, err := singleEliminate(tally, running, reg, rules, roundNumber)
	if err != nil {
		return nil, Clean, err
	}
	return []int{id}, status, nil
}

// transferBallots implements spec §4.3 step 5: ballots whose head is
// eliminated are re-advanced against the still-valid set; ballots
// whose head was not eliminated pass through unchanged.
func transferBallots(ballots []EngineBallot, eliminatedSet []int, running []int, rules Rules) (next []EngineBallot, transfers map[int]map[int]uint64, exhausted map[int]uint64) {
	eliminated := validSetFor(eliminatedSet)
	stillValid := make(map[int]bool, len(running))
	for _, id := range running {
		if !eliminated[id] {
			stillValid[id] = true
		}
	}

	transfers = make(map[int]map[int]uint64, len(eliminatedSet))
	for _, id := range eliminatedSet {
		transfers[id] = make(map[int]uint64)
	}
	exhausted = make(map[int]uint64, len(eliminatedSet))

	next = make([]EngineBallot, 0, len(ballots))
	for _, b := range ballots {
		if !eliminated[b.FirstValid] {
			next = append(next, b)
			continue
		}
		oldHead := b.FirstValid
		stop, ok := advance(b.Choices, stillValid, rules, false)
		if ok && stop.Kind == Filled {
			transfers[oldHead][stop.CandidateID] += b.Count
			next = append(next, EngineBallot{Choices: b.Choices, FirstValid: stop.CandidateID, Count: b.Count})
		} else {
			exhausted[oldHead] += b.Count
		}
	}
	return next, transfers, exhausted
}

// electWinners implements spec §4.3 step 6, including the tie-break
// suppression rule (spec §9): when this round's elimination required a
// tie break, no one is elected this round even if they meet threshold.
func electWinners(tally Tally, running []int, eliminatedSet []int, threshold uint64, tiebreak TiebreakStatus) []int {
	if tiebreak == TiebreakOccurred {
		return nil
	}
	eliminated := validSetFor(eliminatedSet)
	var elected []int
	for _, id := range running {
		if eliminated[id] {
			continue
		}
		if threshold > 0 && tally[id] >= threshold {
			elected = append(elected, id)
		}
	}
	return elected
}

func buildStatistics(roundNumber int, threshold uint64, tiebreak TiebreakStatus, running []int, reg *Registry, tally Tally, eliminatedSet []int, elected []int, transfers map[int]map[int]uint64, exhausted map[int]uint64) RoundStatistics {
	eliminated := validSetFor(eliminatedSet)
	electedSet := validSetFor(elected)

	results := make([]CandidateRoundResult, 0, len(running))
	for _, id := range running {
		row := CandidateRoundResult{CandidateID: id, Name: reg.Name(id), Count: tally[id]}
		switch {
		case eliminated[id]:
			row.Status = Eliminated
			row.Transfers = transfers[id]
			row.ExhaustedHere = exhausted[id]
		case electedSet[id]:
			row.Status = Elected
		default:
			row.Status = StillRunning
		}
		results = append(results, row)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CandidateID < results[j].CandidateID })

	return RoundStatistics{Round: roundNumber, Threshold: threshold, Tiebreak: tiebreak, Results: results}
}
