package escrutinio

import "encoding/json"

// VoteType indicates whether a party list lets voters mark an individual
// candidate or only the party as a whole.
type VoteType string

const (
	WithPreference    VoteType = "WithPreference"
	WithoutPreference VoteType = "WithoutPreference"
)

// VoteKind discriminates the three states a recovered vote count can be in.
type VoteKind int

const (
	// VoteUnrecorded means the cell held no digits at all: a confirmed
	// absence of a mark, distinct from a recognized "0".
	VoteUnrecorded VoteKind = iota

	// VoteRecorded means a digit run was recovered.
	VoteRecorded

	// VoteIllegible means the cell held non-symbol residue with no digits;
	// the raw text is preserved for audit.
	VoteIllegible
)

// VoteValue is a vote count recovered from a candidate cell. It is a sum of
// three cases rather than an overloaded string: Recorded(digits),
// Unrecorded, or Illegible(raw). This keeps "no mark" and "0" distinct.
type VoteValue struct {
	kind   VoteKind
	digits string
	raw    string
}

// RecordedVotes returns a VoteValue holding a recognized digit run.
func RecordedVotes(digits string) VoteValue {
	return VoteValue{kind: VoteRecorded, digits: digits}
}

// UnrecordedVotes returns the VoteValue for a cell with no recognizable mark.
func UnrecordedVotes() VoteValue {
	return VoteValue{kind: VoteUnrecorded}
}

// IllegibleVotes returns a VoteValue preserving unreadable cell text.
func IllegibleVotes(raw string) VoteValue {
	return VoteValue{kind: VoteIllegible, raw: raw}
}

// Kind returns the case this value is in.
func (v VoteValue) Kind() VoteKind { return v.kind }

// Digits returns the recognized digit run, or "" for the other cases.
func (v VoteValue) Digits() string { return v.digits }

// Raw returns the preserved illegible text, or "" for the other cases.
func (v VoteValue) Raw() string { return v.raw }

// MarshalJSON serializes Recorded values as their digit string and both
// absent cases as null, matching the external wire format.
func (v VoteValue) MarshalJSON() ([]byte, error) {
	if v.kind != VoteRecorded {
		return []byte("null"), nil
	}
	return json.Marshal(v.digits)
}

// UnmarshalJSON accepts the wire format produced by MarshalJSON. Illegible
// raw text does not survive a round trip; it is an in-memory audit aid only.
func (v *VoteValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = UnrecordedVotes()
		return nil
	}
	var digits string
	if err := json.Unmarshal(data, &digits); err != nil {
		return err
	}
	*v = RecordedVotes(digits)
	return nil
}

// Candidate is one candidate row inside a party block: a 3-digit identifier
// (never 0-prefixed, which would collide with party numbers) and the
// recovered vote count.
type Candidate struct {
	ID    string    `json:"id"`
	Votes VoteValue `json:"votes"`
}

// PartyRecord is one "lista con/sin voto preferente" block recovered from
// the sheet.
type PartyRecord struct {
	// Number is the 0-prefixed 4-digit party number as printed on the form.
	Number string `json:"number"`

	// Name is the cleaned display name; decorative glyphs stripped and
	// whitespace collapsed.
	Name string `json:"name"`

	VoteType VoteType `json:"vote_type"`

	// AggregateVotes is the list-only vote count. An all-symbol source cell
	// reads as "0" with NeedsAudit set.
	AggregateVotes string `json:"aggregate_votes"`

	// Candidates is empty for WithoutPreference parties.
	Candidates []Candidate `json:"candidates"`

	Total string `json:"total"`

	// NeedsAudit is true if the aggregate count, the total, or any
	// candidate count contained non-digit residue.
	NeedsAudit bool `json:"needs_audit"`
}

// Validate returns an error if the party record violates its structural
// invariants.
func (p *PartyRecord) Validate() error {
	if p.Number == "" {
		return Errorf(EINVALID, "party number required")
	}
	if p.VoteType != WithPreference && p.VoteType != WithoutPreference {
		return Errorf(EINVALID, "unknown vote type %q", p.VoteType)
	}
	if p.VoteType == WithoutPreference && len(p.Candidates) > 0 {
		return Errorf(EINVALID, "party %s is without preference but has %d candidates", p.Number, len(p.Candidates))
	}
	return nil
}
