package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/openslides/rcvtab/rcv"
)

func sampleResult() (rcv.VotingResult, *rcv.Registry) {
	reg, _ := rcv.NewRegistry([]rcv.Candidate{{Name: "A"}, {Name: "B"}})
	result := rcv.VotingResult{
		Winners:   []string{"A"},
		Threshold: 6,
		Rounds: []rcv.RoundStatistics{
			{Round: 1, Threshold: 6, Results: []rcv.CandidateRoundResult{
				{CandidateID: 1, Name: "A", Count: 6, Status: rcv.Elected},
				{CandidateID: 2, Name: "B", Count: 4, Status: rcv.StillRunning},
			}},
		},
	}
	return result, reg
}

func TestWriteJSONProducesSummary(t *testing.T) {
	result, reg := sampleResult()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, result, reg); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 round in summary, got %d", len(decoded))
	}
}

func TestWriteHumanMentionsWinner(t *testing.T) {
	result, reg := sampleResult()
	var buf bytes.Buffer
	if err := WriteHuman(&buf, result, reg); err != nil {
		t.Fatalf("WriteHuman: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "ELECTED") {
		t.Errorf("expected transcript to mark the winner elected, got:\n%s", out)
	}
	if !strings.Contains(out, "Winner(s): [A]") {
		t.Errorf("expected a winner summary line, got:\n%s", out)
	}
}
