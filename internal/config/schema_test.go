package config

import "testing"

func TestValidateBallotJSONAccepts(t *testing.T) {
	valid := `[{"choices": [["Alice"], [], ["Bob", "Carol"]], "count": 3}]`
	if err := ValidateBallotJSON([]byte(valid)); err != nil {
		t.Errorf("expected valid ballot json to pass, got %v", err)
	}
}

func TestValidateBallotJSONRejectsMissingCount(t *testing.T) {
	invalid := `[{"choices": [["Alice"]]}]`
	if err := ValidateBallotJSON([]byte(invalid)); err == nil {
		t.Error("expected an error for a ballot missing count")
	}
}

func TestValidateBallotJSONRejectsWrongShape(t *testing.T) {
	invalid := `{"not": "an array"}`
	if err := ValidateBallotJSON([]byte(invalid)); err == nil {
		t.Error("expected an error for a non-array top level document")
	}
}
