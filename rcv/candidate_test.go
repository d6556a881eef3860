package rcv

import "testing"

func TestNewRegistryAssignsDenseIDs(t *testing.T) {
	reg, err := NewRegistry([]Candidate{{Name: "A"}, {Name: "B"}, {Name: "C"}})
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	for i, name := range []string{"A", "B", "C"} {
		id, ok := reg.ByName(name)
		if !ok {
			t.Fatalf("candidate %s not found", name)
		}
		if id != i+1 {
			t.Errorf("candidate %s: got id %d, want %d", name, id, i+1)
		}
	}
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	_, err := NewRegistry([]Candidate{{Name: "A"}, {Name: "A"}})
	if err == nil {
		t.Fatal("expected error for duplicate candidate name")
	}
}

func TestExcludedCandidateIsUnreachableByName(t *testing.T) {
	reg, err := NewRegistry([]Candidate{{Name: "A"}, {Name: "B", Excluded: true}})
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	if _, ok := reg.ByName("B"); ok {
		t.Error("excluded candidate should not resolve by name")
	}

	ids := reg.AllIDs()
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("AllIDs should only report non-excluded candidates, got %v", ids)
	}
}

func TestRegistryNamePanicsOnUnknownID(t *testing.T) {
	reg, _ := NewRegistry([]Candidate{{Name: "A"}})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown candidate id")
		}
	}()
	reg.Name(99)
}
