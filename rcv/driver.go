package rcv

import (
	"fmt"
	"sort"
)

// maxRounds bounds the round loop against an infinite cycle (spec
// §4.5 step 4). No legitimate single-winner IRV election with a finite
// candidate set needs anywhere near this many rounds; hitting it
// indicates a configuration that never converges.
const maxRounds = 10000

// Builder assembles one election run: rules, an optional explicit
// candidate list, and the raw ballots to tabulate (spec §6 "Engine
// entry point"). A Builder is consumed by a single Run call.
type Builder struct {
	rules      Rules
	candidates []Candidate
	ballots    []RawBallot
}

// NewBuilder starts a Builder configured with rules.
func NewBuilder(rules Rules) *Builder {
	return &Builder{rules: rules}
}

// WithCandidates sets an explicit, ordered candidate list. If never
// called, Run infers the registry from the union of candidate names
// appearing in the ballots, sorted alphabetically (spec §6).
func (b *Builder) WithCandidates(candidates []Candidate) *Builder {
	b.candidates = candidates
	return b
}

// WithBallots sets the raw ballots to tabulate.
func (b *Builder) WithBallots(ballots []RawBallot) *Builder {
	b.ballots = ballots
	return b
}

// Run consumes the Builder and tabulates the election (spec §4.5).
func (b *Builder) Run() (VotingResult, error) {
	if err := b.rules.validate(); err != nil {
		return VotingResult{}, err
	}
	if len(b.ballots) == 0 {
		return VotingResult{}, ErrEmptyElection
	}

	candidates := b.candidates
	if candidates == nil {
		candidates = inferCandidates(b.ballots)
	}
	reg, err := NewRegistry(candidates)
	if err != nil {
		return VotingResult{}, fmt.Errorf("candidate registry: %w", err)
	}
	running := reg.AllIDs()
	if len(running) == 0 {
		return VotingResult{}, ErrEmptyElection
	}

	validated := Validate(b.ballots, reg, b.rules)

	var stats []RoundStatistics
	var ballots []EngineBallot
	roundNumber := 1

	if len(validated.UWIFirst) > 0 || validated.UWIFirstExhausted > 0 {
		var uwiStats RoundStatistics
		ballots, uwiStats = executeUWIRound(validated, reg, running)
		stats = append(stats, uwiStats)
		roundNumber = 2
	} else {
		ballots = validated.FirstRound
	}

	for round := 0; round < maxRounds; round++ {
		outcome, err := executeRound(ballots, running, reg, b.rules, roundNumber)
		if err != nil {
			return VotingResult{}, err
		}
		stats = append(stats, outcome.stats)

		if len(outcome.elected) > 0 {
			winners := make([]string, len(outcome.elected))
			for i, id := range outcome.elected {
				winners[i] = reg.Name(id)
			}
			sort.Strings(winners)
			return VotingResult{
				Winners:   winners,
				Threshold: outcome.stats.Threshold,
				Rounds:    stats,
			}, nil
		}

		nextRunning := removeIDs(running, outcome.eliminated)
		if len(outcome.eliminated) == 0 && len(nextRunning) == len(running) {
			// Internal invariant (spec §4.5 step 5): a round with no
			// election must strictly shrink the candidate set.
			panic("rcv: round produced neither an election nor an elimination")
		}

		running = nextRunning
		ballots = outcome.nextBallots
		roundNumber++
	}

	return VotingResult{}, ErrNoConvergence
}

// inferCandidates builds a candidate list from the union of candidate
// names appearing in raw, sorted alphabetically (spec §6).
func inferCandidates(raw []RawBallot) []Candidate {
	seen := make(map[string]bool)
	for _, b := range raw {
		for _, choice := range b.Choices {
			if choice.Kind() != RawCandidate {
				continue
			}
			seen[choice.Names[0]] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	candidates := make([]Candidate, len(names))
	for i, name := range names {
		candidates[i] = Candidate{Name: name}
	}
	return candidates
}

func removeIDs(ids []int, remove []int) []int {
	removeSet := validSetFor(remove)
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !removeSet[id] {
			out = append(out, id)
		}
	}
	return out
}
