package rcv

// TiebreakModeKind selects how single-candidate elimination resolves a
// tie among the lowest-tallied candidates (spec §4.3.2).
type TiebreakModeKind int

const (
	TiebreakUseCandidateOrder TiebreakModeKind = iota
	TiebreakRandom
)

// TiebreakMode configures tie-break resolution. Seed is only
// meaningful when Mode == TiebreakRandom.
type TiebreakMode struct {
	Mode TiebreakModeKind
	Seed uint32
}

// OvervoteRule selects how an Overvote choice is treated during
// advancement (spec §4.2).
type OvervoteRule int

const (
	OvervoteExhaustImmediately OvervoteRule = iota
	OvervoteAlwaysSkipToNextRank
)

// WinnerElectionMode selects the election policy. Only
// SingleWinnerMajority is implemented; every other value is rejected
// by Builder.Run as InvalidRule (spec §1 non-goals: multi-winner,
// Hare-quota and bottoms-up variants are reserved but unsupported).
type WinnerElectionMode int

const (
	SingleWinnerMajority WinnerElectionMode = iota
)

// DuplicateCandidateMode selects how a repeated candidate within a
// single ballot's prefix is treated during advancement (spec §4.2).
type DuplicateCandidateMode int

const (
	DuplicateExhaust DuplicateCandidateMode = iota
	DuplicateSkipDuplicate
)

// EliminationAlgorithm selects whether the round executor first
// attempts batch elimination (spec §4.3.1) before falling back to
// single elimination with tie-break (spec §4.3.2).
type EliminationAlgorithm int

const (
	EliminationSingle EliminationAlgorithm = iota
	EliminationBatch
)

// SkippedRankMode selects how a run of BlankOrUndervote choices in a
// ballot's prefix is treated during advancement (spec §4.2).
type SkippedRankMode int

const (
	SkippedRankUnlimited SkippedRankMode = iota
	SkippedRankExhaustOnFirstOccurrence
	SkippedRankMaxAllowed
)

// SkippedRankRule configures skipped-rank handling. Max is only
// meaningful when Mode == SkippedRankMaxAllowed: a run of skipped
// ranks of length >= Max+1 rejects the ballot.
type SkippedRankRule struct {
	Mode SkippedRankMode
	Max  int
}

// Rules is the full configuration surface recognized by the engine
// (spec §3 "Rules", §6 configuration table). Fields left at their zero
// value select candidate-order tie-break, exhaust on overvote,
// single-winner majority, exhaust on duplicate, single elimination and
// unlimited skipped ranks, with no rankings cap or vote threshold.
type Rules struct {
	TiebreakMode          TiebreakMode
	OvervoteRule          OvervoteRule
	WinnerElectionMode    WinnerElectionMode
	DuplicateCandidateMode DuplicateCandidateMode
	EliminationAlgorithm  EliminationAlgorithm
	SkippedRankRule       SkippedRankRule

	// MaxRankingsAllowed truncates each ballot's choice list to this
	// many entries before validation, when non-nil (spec §6).
	MaxRankingsAllowed *int

	// MinimumVoteThreshold is an extension point (spec §6): this
	// engine version does not implement it. A non-nil value makes
	// Builder.Run fail with InvalidRule, since silently ignoring a
	// configured rule would violate spec §1's "engine rejects them as
	// unsupported" contract.
	MinimumVoteThreshold *int
}

// validate reports the first unsupported configuration this engine
// version encounters, wrapped as InvalidRule (spec §6 error taxonomy).
func (r Rules) validate() error {
	if r.WinnerElectionMode != SingleWinnerMajority {
		return newInvalidRule("winner_election_mode: only SingleWinnerMajority is supported")
	}
	if r.MinimumVoteThreshold != nil {
		return newInvalidRule("minimum_vote_threshold: not supported by this engine version")
	}
	if r.SkippedRankRule.Mode == SkippedRankMaxAllowed && r.SkippedRankRule.Max < 0 {
		return newInvalidRule("max_skipped_rank_allowed: n must be >= 0")
	}
	if r.MaxRankingsAllowed != nil && *r.MaxRankingsAllowed < 1 {
		return newInvalidRule("max_rankings_allowed: n must be >= 1")
	}
	return nil
}
