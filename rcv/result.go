package rcv

import "fmt"

// errType classifies an engine error the way the teacher's HTTP layer
// classifies request errors (vote/http/error.go): a Type() string the
// boundary can switch on without string-matching Error() text.
type errType string

const (
	typeEmptyElection         errType = "empty_election"
	typeNoConvergence         errType = "no_convergence"
	typeNoCandidateToEliminate errType = "no_candidate_to_eliminate"
	typeInvalidRule           errType = "invalid_rule"
)

// EngineError is the error taxonomy surfaced at the boundary (spec §6,
// §7): EmptyElection, NoConvergence, NoCandidateToEliminate,
// InvalidRule. Callers should use errors.Is against the sentinel
// values below, or errors.As against *EngineError for the Type();
// Error() includes the reason when one is set.
type EngineError struct {
	typ    errType
	reason string
}

func (e *EngineError) Error() string {
	if e.reason == "" {
		return string(e.typ)
	}
	return fmt.Sprintf("%s: %s", e.typ, e.reason)
}

// Type reports the error classification, stable across Go versions
// and suitable for a CLI exit-code switch or a JSON error envelope.
func (e *EngineError) Type() string { return string(e.typ) }

// Is implements errors.Is against the package-level sentinels below by
// comparing classification, not the (often-absent) reason string.
func (e *EngineError) Is(target error) bool {
	other, ok := target.(*EngineError)
	if !ok {
		return false
	}
	return e.typ == other.typ
}

var (
	// ErrEmptyElection: no ballots, or candidate registry empty after
	// validation.
	ErrEmptyElection = &EngineError{typ: typeEmptyElection}
	// ErrNoConvergence: the round loop hit its iteration cap.
	ErrNoConvergence = &EngineError{typ: typeNoConvergence}
	// ErrNoCandidateToEliminate: a round could not pick an eliminee.
	ErrNoCandidateToEliminate = &EngineError{typ: typeNoCandidateToEliminate}
	// ErrInvalidRule: a configured rule is unsupported by this engine
	// version.
	ErrInvalidRule = &EngineError{typ: typeInvalidRule}
)

func newInvalidRule(reason string) error {
	return &EngineError{typ: typeInvalidRule, reason: reason}
}

func newNoCandidateToEliminate(reason string) error {
	return &EngineError{typ: typeNoCandidateToEliminate, reason: reason}
}

// CandidateStatusKind is the RoundCandidateStatus sum type's tag (spec
// §3).
type CandidateStatusKind int

const (
	StillRunning CandidateStatusKind = iota
	Elected
	Eliminated
)

func (k CandidateStatusKind) String() string {
	switch k {
	case StillRunning:
		return "still_running"
	case Elected:
		return "elected"
	case Eliminated:
		return "eliminated"
	default:
		return "unknown"
	}
}

// CandidateRoundResult is one row of a round's statistics: a
// candidate's tally at the start of the round plus its resulting
// status. Transfers and ExhaustedHere are only populated when Status
// == Eliminated.
type CandidateRoundResult struct {
	CandidateID   int
	Name          string
	Count         uint64
	Status        CandidateStatusKind
	Transfers     map[int]uint64 // receiving candidate id -> transferred weight
	ExhaustedHere uint64
}

// UWIRoundResult records the first-round undeclared-write-in flush
// (spec §4.4): ballots whose first reachable choice was an undeclared
// write-in are not a candidate and never participate in elimination or
// election, but their disposition must still be reported.
type UWIRoundResult struct {
	Transfers     map[int]uint64
	ExhaustedHere uint64
}

// RoundStatistics is the per-round record described by spec §3. Once
// appended to a VotingResult it is never mutated.
type RoundStatistics struct {
	Round     int
	Threshold uint64
	Tiebreak  TiebreakStatus
	Results   []CandidateRoundResult
	UWI       *UWIRoundResult // non-nil only for the UWI flush round
}

// TiebreakStatus records whether a round's elimination required a tie
// break; Clean rounds may elect candidates at or above threshold,
// TiebreakOccurred rounds suppress election entirely this round (spec
// §4.3 step 6, §9).
type TiebreakStatus int

const (
	Clean TiebreakStatus = iota
	TiebreakOccurred
)

// VotingResult is the final outcome of a completed run (spec §3).
type VotingResult struct {
	Winners   []string
	Threshold uint64
	Rounds    []RoundStatistics
}
