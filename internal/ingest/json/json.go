// Package json reads ballots from the JSON encoding of spec §6's
// boundary RawBallot shape: an array of objects, each with a "choices"
// array of string arrays (outer array is ranks, inner array is the
// name(s) marked at that rank) and a "count".
//
// This is the machine-facing counterpart to internal/ingest/csv, for
// callers that already produce structured ballot data rather than a
// spreadsheet export. Grounded on the same boundary contract
// _examples/original_source/src/rcv/io_common.rs builds its ballot
// assembly around, re-expressed as a direct JSON encoding instead of
// the original's column-index CSV variants.
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/openslides/rcvtab/internal/config"
	"github.com/openslides/rcvtab/rcv"
)

type wireBallot struct {
	Choices [][]string `json:"choices"`
	Count   uint64      `json:"count"`
}

// Read parses a raw ballot JSON document from r, validating it against
// the boundary schema before decoding.
func Read(r io.Reader) ([]rcv.RawBallot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading ballot json: %w", err)
	}
	if err := config.ValidateBallotJSON(data); err != nil {
		return nil, err
	}

	var wire []wireBallot
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decoding ballot json: %w", err)
	}

	out := make([]rcv.RawBallot, len(wire))
	for i, wb := range wire {
		choices := make([]rcv.RawChoice, len(wb.Choices))
		for j, names := range wb.Choices {
			choices[j] = rcv.RawChoice{Names: names}
		}
		out[i] = rcv.RawBallot{Choices: choices, Count: wb.Count}
	}
	return out, nil
}
