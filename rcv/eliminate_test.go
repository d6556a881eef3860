package rcv

import "testing"

func TestBatchEliminateGapExample(t *testing.T) {
	// Spec §8 scenario 6: A:1, B:2, C:3, D:10 -> eliminate {A,B,C}.
	reg := mustReg(t, "A", "B", "C", "D")
	tally := Tally{1: 1, 2: 2, 3: 3, 4: 10}

	got := batchEliminate(tally, reg.AllIDs())
	want := map[int]bool{1: true, 2: true, 3: true}
	if len(got) != len(want) {
		t.Fatalf("expected 3 eliminated, got %v", got)
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected id %d eliminated", id)
		}
		if id == 4 {
			t.Errorf("D must not be eliminated by batch")
		}
	}
}

func TestBatchEliminateNoGapReturnsEmpty(t *testing.T) {
	reg := mustReg(t, "A", "B", "C")
	tally := Tally{1: 5, 2: 5, 3: 5}

	got := batchEliminate(tally, reg.AllIDs())
	if len(got) != 0 {
		t.Fatalf("expected no batch elimination, got %v", got)
	}
}

func TestSingleEliminateNoTie(t *testing.T) {
	reg := mustReg(t, "A", "B", "C")
	tally := Tally{1: 3, 2: 2, 3: 1}

	id, status, err := singleEliminate(tally, reg.AllIDs(), reg, Rules{}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 3 || status != Clean {
		t.Errorf("expected C (id 3) eliminated cleanly, got id=%d status=%v", id, status)
	}
}

func TestSingleEliminateTieUseCandidateOrderEliminatesLatest(t *testing.T) {
	reg := mustReg(t, "A", "B", "C")
	tally := Tally{1: 5, 2: 1, 3: 1} // B and C tied for lowest

	rules := Rules{TiebreakMode: TiebreakMode{Mode: TiebreakUseCandidateOrder}}
	id, status, err := singleEliminate(tally, reg.AllIDs(), reg, rules, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != TiebreakOccurred {
		t.Errorf("expected TiebreakOccurred, got %v", status)
	}
	if id != 3 { // C declared later than B, so C is eliminated
		t.Errorf("expected C (latest declared) eliminated, got id=%d", id)
	}
}

func TestSingleEliminateAllTiedNeverEmptiesElection(t *testing.T) {
	reg := mustReg(t, "A", "B")
	tally := Tally{1: 0, 2: 0}

	rules := Rules{TiebreakMode: TiebreakMode{Mode: TiebreakUseCandidateOrder}}
	id, status, err := singleEliminate(tally, reg.AllIDs(), reg, rules, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != TiebreakOccurred {
		t.Errorf("expected TiebreakOccurred, got %v", status)
	}
	if id != 2 { // sorted desc by declared order = [B,A]; pool drops last (A); picks B
		t.Errorf("expected B eliminated, got id=%d", id)
	}
}

func TestSingleEliminateRandomIsDeterministic(t *testing.T) {
	reg := mustReg(t, "A", "B", "C")
	tally := Tally{1: 5, 2: 1, 3: 1}
	rules := Rules{TiebreakMode: TiebreakMode{Mode: TiebreakRandom, Seed: 42}}

	id1, _, err := singleEliminate(tally, reg.AllIDs(), reg, rules, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id2, _, err := singleEliminate(tally, reg.AllIDs(), reg, rules, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id1 != id2 {
		t.Errorf("expected deterministic result for same (seed, round): got %d and %d", id1, id2)
	}
}
