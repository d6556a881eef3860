// Package config loads the rules surface described by spec §6's
// configuration table from a YAML file, the way the teacher service
// loads configuration with a go.yaml.in/yaml-compatible parser, then
// layers CLI flag overrides on top with dario.cat/mergo instead of a
// hand-rolled chain of "if flag set" branches.
package config

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"go.yaml.in/yaml/v3"

	"github.com/openslides/rcvtab/rcv"
)

// File is the on-disk shape of a rules file. Every field is optional;
// zero values fall back to the engine's defaults (rcv.Rules zero
// value).
type File struct {
	TiebreakMode           string `yaml:"tiebreak_mode"`
	RandomSeed             *uint32 `yaml:"random_seed"`
	OvervoteRule           string `yaml:"overvote_rule"`
	WinnerElectionMode     string `yaml:"winner_election_mode"`
	DuplicateCandidateMode string `yaml:"duplicate_candidate_mode"`
	EliminationAlgorithm   string `yaml:"elimination_algorithm"`
	MaxSkippedRankAllowed  string `yaml:"max_skipped_rank_allowed"`
	MaxSkippedRankN        *int   `yaml:"max_skipped_rank_n"`
	MaxRankingsAllowed     *int   `yaml:"max_rankings_allowed"`
	MinimumVoteThreshold   *int   `yaml:"minimum_vote_threshold"`

	Candidates []CandidateEntry `yaml:"candidates"`
}

// CandidateEntry is one declared candidate in the registry file.
type CandidateEntry struct {
	Name     string `yaml:"name"`
	Code     string `yaml:"code"`
	Excluded bool   `yaml:"excluded"`
}

// Overrides carries CLI-flag-sourced values to merge onto a File
// before it is translated into rcv.Rules. A nil/zero field means "not
// overridden"; only non-zero fields in Overrides take precedence
// (mergo's default "don't clobber with zero values" semantics, the
// same behavior the teacher's config layering in vote/run.go relies on
// its own "set default, allow env to override" pattern for).
type Overrides struct {
	TiebreakMode         string
	RandomSeed           *uint32
	EliminationAlgorithm string
}

// Load reads a YAML rules file from path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading rules file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing rules file: %w", err)
	}
	return f, nil
}

// Merge layers overrides onto base ("defaults < file < flags"): base
// is the file-loaded config, overrides are flag-sourced. The result is
// base with any overrides' non-zero fields applied on top.
func Merge(base File, overrides Overrides) (File, error) {
	over := File{
		TiebreakMode:         overrides.TiebreakMode,
		RandomSeed:           overrides.RandomSeed,
		EliminationAlgorithm: overrides.EliminationAlgorithm,
	}
	if err := mergo.Merge(&base, over, mergo.WithOverride); err != nil {
		return File{}, fmt.Errorf("merging config overrides: %w", err)
	}
	return base, nil
}

// ToRules translates a loaded File into rcv.Rules (spec §6's
// configuration table). Unknown string values produce an error rather
// than silently falling back to a default, since spec §7 requires the
// engine to reject unsupported configuration rather than guess.
func ToRules(f File) (rcv.Rules, error) {
	var rules rcv.Rules

	switch f.TiebreakMode {
	case "", "use_candidate_order":
		rules.TiebreakMode = rcv.TiebreakMode{Mode: rcv.TiebreakUseCandidateOrder}
	case "random":
		seed := uint32(0)
		if f.RandomSeed != nil {
			seed = *f.RandomSeed
		}
		rules.TiebreakMode = rcv.TiebreakMode{Mode: rcv.TiebreakRandom, Seed: seed}
	default:
		return rcv.Rules{}, fmt.Errorf("unknown tiebreak_mode %q", f.TiebreakMode)
	}

	switch f.OvervoteRule {
	case "", "exhaust_immediately":
		rules.OvervoteRule = rcv.OvervoteExhaustImmediately
	case "always_skip_to_next_rank":
		rules.OvervoteRule = rcv.OvervoteAlwaysSkipToNextRank
	default:
		return rcv.Rules{}, fmt.Errorf("unknown overvote_rule %q", f.OvervoteRule)
	}

	switch f.WinnerElectionMode {
	case "", "single_winner_majority":
		rules.WinnerElectionMode = rcv.SingleWinnerMajority
	default:
		return rcv.Rules{}, fmt.Errorf("unknown winner_election_mode %q", f.WinnerElectionMode)
	}

	switch f.DuplicateCandidateMode {
	case "", "exhaust":
		rules.DuplicateCandidateMode = rcv.DuplicateExhaust
	case "skip_duplicate":
		rules.DuplicateCandidateMode = rcv.DuplicateSkipDuplicate
	default:
		return rcv.Rules{}, fmt.Errorf("unknown duplicate_candidate_mode %q", f.DuplicateCandidateMode)
	}

	switch f.EliminationAlgorithm {
	case "", "single":
		rules.EliminationAlgorithm = rcv.EliminationSingle
	case "batch":
		rules.EliminationAlgorithm = rcv.EliminationBatch
	default:
		return rcv.Rules{}, fmt.Errorf("unknown elimination_algorithm %q", f.EliminationAlgorithm)
	}

	switch f.MaxSkippedRankAllowed {
	case "", "unlimited":
		rules.SkippedRankRule = rcv.SkippedRankRule{Mode: rcv.SkippedRankUnlimited}
	case "exhaust_on_first_occurrence":
		rules.SkippedRankRule = rcv.SkippedRankRule{Mode: rcv.SkippedRankExhaustOnFirstOccurrence}
	case "max_allowed":
		if f.MaxSkippedRankN == nil {
			return rcv.Rules{}, fmt.Errorf("max_skipped_rank_allowed: max_allowed requires max_skipped_rank_n")
		}
		rules.SkippedRankRule = rcv.SkippedRankRule{Mode: rcv.SkippedRankMaxAllowed, Max: *f.MaxSkippedRankN}
	default:
		return rcv.Rules{}, fmt.Errorf("unknown max_skipped_rank_allowed %q", f.MaxSkippedRankAllowed)
	}

	rules.MaxRankingsAllowed = f.MaxRankingsAllowed
	rules.MinimumVoteThreshold = f.MinimumVoteThreshold

	return rules, nil
}

// Candidates translates the file's declared candidate list into
// rcv.Candidate values, in file order (order is significant: spec §3).
func Candidates(f File) []rcv.Candidate {
	if len(f.Candidates) == 0 {
		return nil
	}
	out := make([]rcv.Candidate, len(f.Candidates))
	for i, c := range f.Candidates {
		out[i] = rcv.Candidate{Name: c.Name, Code: c.Code, Excluded: c.Excluded}
	}
	return out
}
