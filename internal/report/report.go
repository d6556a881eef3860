// Package report turns a completed rcv.VotingResult into the two
// output shapes spec §6 asks for: a machine JSON summary (rcv.Summary,
// written verbatim) and a human-readable round-by-round transcript.
//
// The transcript format has no close analogue in
// _examples/original_source (the Rust CLI only ever emits
// "stats:{json}", see src/main.rs's result_stats_to_json), so its
// structure is grounded instead on spec §6's own prose description of
// what a round report contains (totals, per-candidate tallies,
// transfers, eliminations). shopspring/decimal computes the
// percentage-of-threshold and percentage-of-total figures here; the
// engine package itself never touches a float or a decimal.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/openslides/rcvtab/rcv"
)

// WriteJSON writes the spec §6 machine summary for result to w.
func WriteJSON(w io.Writer, result rcv.VotingResult, reg *rcv.Registry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result.Summary(reg))
}

// WriteHuman writes a round-by-round transcript of result to w.
func WriteHuman(w io.Writer, result rcv.VotingResult, reg *rcv.Registry) error {
	for _, round := range result.Rounds {
		if _, err := fmt.Fprintf(w, "Round %d", round.Round); err != nil {
			return err
		}
		if round.Threshold > 0 {
			if _, err := fmt.Fprintf(w, " (threshold %d)", round.Threshold); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}

		total := decimal.Zero
		for _, row := range round.Results {
			total = total.Add(decimal.NewFromInt(int64(row.Count)))
		}

		for _, row := range round.Results {
			pctTotal := percentOf(row.Count, total)
			line := fmt.Sprintf("  %-20s %8d votes (%s%% of round)", row.Name, row.Count, pctTotal)
			if round.Threshold > 0 {
				pctThreshold := percentOf(row.Count, decimal.NewFromInt(int64(round.Threshold)))
				line += fmt.Sprintf(" (%s%% of threshold)", pctThreshold)
			}
			switch row.Status {
			case rcv.Elected:
				line += "  ELECTED"
			case rcv.Eliminated:
				line += "  ELIMINATED"
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			for toID, count := range row.Transfers {
				if _, err := fmt.Fprintf(w, "      -> %s: %d\n", reg.Name(toID), count); err != nil {
					return err
				}
			}
			if row.ExhaustedHere > 0 {
				if _, err := fmt.Fprintf(w, "      exhausted: %d\n", row.ExhaustedHere); err != nil {
					return err
				}
			}
		}

		if round.UWI != nil {
			if _, err := fmt.Fprintln(w, "  undeclared write-ins flushed:"); err != nil {
				return err
			}
			for toID, count := range round.UWI.Transfers {
				if _, err := fmt.Fprintf(w, "      -> %s: %d\n", reg.Name(toID), count); err != nil {
					return err
				}
			}
			if round.UWI.ExhaustedHere > 0 {
				if _, err := fmt.Fprintf(w, "      exhausted: %d\n", round.UWI.ExhaustedHere); err != nil {
					return err
				}
			}
		}

		if round.Tiebreak == rcv.TiebreakOccurred {
			if _, err := fmt.Fprintln(w, "  a tie-break occurred this round; no candidate was elected"); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if len(result.Winners) > 0 {
		if _, err := fmt.Fprintf(w, "Winner(s): %v\n", result.Winners); err != nil {
			return err
		}
	}
	return nil
}

func percentOf(n uint64, total decimal.Decimal) string {
	if total.IsZero() {
		return "0.00"
	}
	pct := decimal.NewFromInt(int64(n)).Div(total).Mul(decimal.NewFromInt(100))
	return pct.StringFixed(2)
}
