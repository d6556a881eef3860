package rcv

// RawBallot is one voter's ordered preference list plus a weight, in
// the boundary shape of spec §6. Ballots with identical choices may be
// pre-aggregated by the ingest layer into a single RawBallot with
// Count > 1; a ballot with Count == 0 is discarded (spec §3).
type RawBallot struct {
	Choices []RawChoice
	Count   uint64
}

// EngineBallot is a validated, engine-internal ballot (spec §3).
// Choices is the full (post max-rankings-truncation) choice sequence;
// re-advancing a ballot after its current candidate is eliminated
// always rescans from the start, because the duplicate-candidate and
// skip-run prefix checks (spec §4.2) are defined over the whole prefix
// up to the new head, not just the tail after the old one. FirstValid
// caches the id the ballot currently points at — the invariant is that
// it is the candidate of the Filled stop that advance(Choices, ...)
// finds for the current still-valid set.
type EngineBallot struct {
	Choices    []Choice
	FirstValid int
	Count      uint64
}
