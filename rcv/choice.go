package rcv

// RawChoice is one ranked slot on an incoming ballot, in the boundary
// shape described by spec §6: a list of names marked at that rank.
// Zero names means the rank was left unmarked (Undervote); one empty
// string means an unreadable/blank marking (Blank); two or more names
// means an overvote; one non-empty name is a vote for that candidate
// (which may or may not resolve to a declared, non-excluded id).
type RawChoice struct {
	Names []string
}

// Kind classifies a RawChoice independent of the candidate registry.
func (r RawChoice) Kind() RawChoiceKind {
	switch len(r.Names) {
	case 0:
		return RawUndervote
	case 1:
		if r.Names[0] == "" {
			return RawBlank
		}
		return RawCandidate
	default:
		return RawOvervote
	}
}

// RawChoiceKind enumerates the shapes a RawChoice can take.
type RawChoiceKind int

const (
	RawCandidate RawChoiceKind = iota
	RawUndervote
	RawOvervote
	RawBlank
)

// ChoiceKind is the engine-internal Choice sum type's tag (spec §3,
// §9: "sum types ... with exhaustive pattern matching at every
// switch"). Blank and Undervote collapse into BlankOrUndervote because
// every rule in §4.2 treats them identically.
type ChoiceKind int

const (
	// Filled is a vote for a still-registered candidate; CandidateID
	// is only meaningful for this kind.
	Filled ChoiceKind = iota
	// Undeclared is a vote for a name not in the (non-excluded)
	// registry, i.e. a write-in.
	Undeclared
	// Overvote is more than one name marked at the same rank.
	Overvote
	// BlankOrUndervote is an unreadable mark or a left-blank rank.
	BlankOrUndervote
)

func (k ChoiceKind) String() string {
	switch k {
	case Filled:
		return "Filled"
	case Undeclared:
		return "Undeclared"
	case Overvote:
		return "Overvote"
	case BlankOrUndervote:
		return "BlankOrUndervote"
	default:
		return "Unknown"
	}
}

// Choice is one slot on a validated (engine-internal) ballot.
type Choice struct {
	Kind        ChoiceKind
	CandidateID int // only valid when Kind == Filled
}

func filled(id int) Choice          { return Choice{Kind: Filled, CandidateID: id} }
func undeclared() Choice            { return Choice{Kind: Undeclared} }
func overvote() Choice              { return Choice{Kind: Overvote} }
func blankOrUndervote() Choice      { return Choice{Kind: BlankOrUndervote} }
func (c Choice) isFilled() bool     { return c.Kind == Filled }
func (c Choice) isUndeclared() bool { return c.Kind == Undeclared }

// toChoice translates a raw boundary choice into the engine-internal
// Choice, resolving the candidate name against reg. Excluded and
// unknown names both map to Undeclared (spec §4.1 step 1).
func toChoice(raw RawChoice, reg *Registry) Choice {
	switch raw.Kind() {
	case RawUndervote, RawBlank:
		return blankOrUndervote()
	case RawOvervote:
		return overvote()
	case RawCandidate:
		if id, ok := reg.ByName(raw.Names[0]); ok {
			return filled(id)
		}
		return undeclared()
	default:
		return undeclared()
	}
}
