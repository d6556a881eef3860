package memory

import (
	"context"
	"testing"

	"github.com/openslides/rcvtab/rcv"
)

func TestSaveAndLoad(t *testing.T) {
	s := New()
	ctx := context.Background()

	result := rcv.VotingResult{Winners: []string{"A"}, Threshold: 4}
	if err := s.Save(ctx, "e1", result); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx, "e1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Winners) != 1 || got.Winners[0] != "A" {
		t.Errorf("expected winner A, got %v", got.Winners)
	}
}

func TestLoadUnknownElectionReturnsDoesNotExist(t *testing.T) {
	s := New()
	_, err := s.Load(context.Background(), "nope")
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(interface{ DoesNotExist() }); !ok {
		t.Errorf("expected a DoesNotExist error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.Save(ctx, "e1", rcv.VotingResult{Winners: []string{"A"}})

	if err := s.Delete(ctx, "e1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load(ctx, "e1"); err == nil {
		t.Error("expected load after delete to fail")
	}
}
