package rcv

// executeUWIRound implements the first-round undeclared-write-in
// flush (spec §4.4). It is only invoked when the validator produced
// UWI-first ballots or non-zero UWI-first exhaustion. All real
// candidates are reported StillRunning; threshold is 0 and nobody can
// be elected from this round. UWI-first ballots are folded into the
// returned ballot set (their FirstValid already points at a real,
// rescued candidate) so normal rounds can proceed from round 2.
func executeUWIRound(validated ValidatedBallots, reg *Registry, running []int) ([]EngineBallot, RoundStatistics) {
	tally := computeTally(validated.FirstRound, running)

	uwiTransfers := make(map[int]uint64, len(validated.UWIFirst))
	for _, b := range validated.UWIFirst {
		uwiTransfers[b.FirstValid] += b.Count
	}

	results := make([]CandidateRoundResult, 0, len(running))
	for _, id := range running {
		results = append(results, CandidateRoundResult{
			CandidateID: id,
			Name:        reg.Name(id),
			Count:       tally[id],
			Status:      StillRunning,
		})
	}

	stats := RoundStatistics{
		Round:     1,
		Threshold: 0,
		Tiebreak:  Clean,
		Results:   results,
		UWI: &UWIRoundResult{
			Transfers:     uwiTransfers,
			ExhaustedHere: validated.UWIFirstExhausted,
		},
	}

	ballots := make([]EngineBallot, 0, len(validated.FirstRound)+len(validated.UWIFirst))
	ballots = append(ballots, validated.FirstRound...)
	ballots = append(ballots, validated.UWIFirst...)

	return ballots, stats
}
