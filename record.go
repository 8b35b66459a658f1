package escrutinio

import "strconv"

// GeoCodes identifies where a tally sheet was filled in. Each field is an
// independently optional digit string; empty means the code was not found.
type GeoCodes struct {
	Department   string `json:"dept"`
	Municipality string `json:"muni"`
	Zone         string `json:"zone"`
	Station      string `json:"station"`
	Table        string `json:"table"`
}

// Empty reports whether none of the five codes were found.
func (g GeoCodes) Empty() bool {
	return g.Department == "" && g.Municipality == "" && g.Zone == "" &&
		g.Station == "" && g.Table == ""
}

// TotalsRecord holds the three table-level totals. Fields are raw strings,
// never numerically typed: the source value may be a number, a run of symbols
// ("***", "- - -"), or corrupted text that must be preserved verbatim for
// audit.
type TotalsRecord struct {
	Voters       string `json:"voters"`
	BallotsInBox string `json:"ballots_in_box"`
	Incinerated  string `json:"incinerated"`
}

// Consistent reports whether the totals satisfy the numeric consistency rule:
// a numeric voter count requires a numeric ballots-in-box count no greater
// than it. Non-numeric voter counts are vacuously consistent; they carry
// their own audit signal.
func (t TotalsRecord) Consistent() bool {
	voters, err := strconv.Atoi(t.Voters)
	if err != nil {
		return true
	}
	ballots, err := strconv.Atoi(t.BallotsInBox)
	if err != nil {
		return false
	}
	return voters >= ballots
}

// BallotRecord is the structured result of parsing one tally-sheet page.
// It is constructed once per page by the parse orchestrator and is immutable
// after construction.
// TotalsRecord is embedded so the three totals serialize at the top level of
// the wire format, alongside page and geo.
type BallotRecord struct {
	Page string   `json:"page"`
	Geo  GeoCodes `json:"geo"`
	TotalsRecord
	Parties []PartyRecord `json:"parties"`
}

// NeedsAudit reports whether any party on the record was flagged for human
// review.
func (r *BallotRecord) NeedsAudit() bool {
	for _, p := range r.Parties {
		if p.NeedsAudit {
			return true
		}
	}
	return false
}
