package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openslides/rcvtab/rcv"
)

func TestLoadAndToRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	contents := `
tiebreak_mode: random
random_seed: 42
overvote_rule: always_skip_to_next_rank
elimination_algorithm: batch
max_skipped_rank_allowed: max_allowed
max_skipped_rank_n: 1
candidates:
  - name: Alice
  - name: Bob
    excluded: true
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	rules, err := ToRules(f)
	if err != nil {
		t.Fatalf("ToRules: %v", err)
	}
	if rules.TiebreakMode.Mode != rcv.TiebreakRandom || rules.TiebreakMode.Seed != 42 {
		t.Errorf("unexpected tiebreak mode: %+v", rules.TiebreakMode)
	}
	if rules.OvervoteRule != rcv.OvervoteAlwaysSkipToNextRank {
		t.Errorf("unexpected overvote rule: %v", rules.OvervoteRule)
	}
	if rules.EliminationAlgorithm != rcv.EliminationBatch {
		t.Errorf("unexpected elimination algorithm: %v", rules.EliminationAlgorithm)
	}
	if rules.SkippedRankRule.Mode != rcv.SkippedRankMaxAllowed || rules.SkippedRankRule.Max != 1 {
		t.Errorf("unexpected skipped rank rule: %+v", rules.SkippedRankRule)
	}

	candidates := Candidates(f)
	if len(candidates) != 2 || candidates[0].Name != "Alice" || !candidates[1].Excluded {
		t.Errorf("unexpected candidates: %+v", candidates)
	}
}

func TestToRulesRejectsUnknownValue(t *testing.T) {
	_, err := ToRules(File{TiebreakMode: "coin_flip"})
	if err == nil {
		t.Fatal("expected an error for an unknown tiebreak_mode")
	}
}

func TestMergeOverridesTakePrecedence(t *testing.T) {
	base := File{TiebreakMode: "use_candidate_order"}
	seed := uint32(7)
	merged, err := Merge(base, Overrides{TiebreakMode: "random", RandomSeed: &seed})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.TiebreakMode != "random" {
		t.Errorf("expected override to win, got %q", merged.TiebreakMode)
	}
	if merged.RandomSeed == nil || *merged.RandomSeed != 7 {
		t.Errorf("expected seed override 7, got %v", merged.RandomSeed)
	}
}

func TestMergeWithoutOverridesKeepsBase(t *testing.T) {
	base := File{TiebreakMode: "use_candidate_order"}
	merged, err := Merge(base, Overrides{})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.TiebreakMode != "use_candidate_order" {
		t.Errorf("expected base to survive an empty override, got %q", merged.TiebreakMode)
	}
}
