// Package csv reads the plain CSV ranking format: one row per ballot,
// with a ballot id column, a count column, and one ranked-choice
// column per rank (an empty cell is an undervote at that rank; a cell
// holding more than one name separated by "/" is an overvote).
//
// Grounded on _examples/original_source/src/rcv/io_csv.rs's
// read_csv_ranking, simplified to a single fixed column layout instead
// of the original's configurable column-index lookup.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/openslides/rcvtab/internal/log"
	"github.com/openslides/rcvtab/rcv"
)

// Read parses ranking rows from r. Column 0 is the ballot id (used
// only for diagnostics), column 1 is the ballot count, and every
// column after that is one rank.
func Read(r io.Reader) ([]rcv.RawBallot, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ballots may have a varying number of ranks

	var out []rcv.RawBallot
	lineno := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", lineno+1, err)
		}
		lineno++

		if len(record) < 2 {
			return nil, fmt.Errorf("csv line %d: need at least an id and count column", lineno)
		}

		count, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: invalid count %q: %w", lineno, record[1], err)
		}
		if count == 0 {
			log.Warn("csv line %d (id=%s): count is 0, ballot will be discarded", lineno, record[0])
		}

		choices := make([]rcv.RawChoice, 0, len(record)-2)
		for _, cell := range record[2:] {
			cell = strings.TrimSpace(cell)
			switch {
			case cell == "":
				choices = append(choices, rcv.RawChoice{})
			case strings.Contains(cell, "/"):
				choices = append(choices, rcv.RawChoice{Names: strings.Split(cell, "/")})
			default:
				choices = append(choices, rcv.RawChoice{Names: []string{cell}})
			}
		}

		out = append(out, rcv.RawBallot{Choices: choices, Count: count})
	}
	return out, nil
}
