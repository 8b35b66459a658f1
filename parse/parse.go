// Package parse reconstructs ballot records from flattened OCR line streams
// of E-14 tally sheets. It recovers the three-column totals block by scored
// rotation, assigns fields by keyword specificity, repairs totals that
// violate the numeric consistency rule, and extracts party and candidate
// vote blocks.
//
// Every extractor is a pure function over the line stream: malformed input
// degrades to empty fields plus warnings, never an error.
package parse

import (
	"github.com/otalvaro/escrutinio"
)

// Ensure Parser implements escrutinio.RecordParser at compile time.
var _ escrutinio.RecordParser = (*Parser)(nil)

// Parser is the E-14 parse orchestrator. It holds no state between calls, so
// a single Parser is safe for concurrent use; each Parse invocation owns its
// own warning accumulator and returns it by value.
type Parser struct{}

// New returns a new E-14 parser.
func New() *Parser {
	return &Parser{}
}

// Parse runs the extractors in fixed order over the same line stream and
// assembles the ballot record, merging each extractor's warnings in call
// order. It then applies cross-cutting validation: conditions it cannot
// correct (no parties, a with-preference party without candidates) are
// reported as warnings, never fixed silently.
func (p *Parser) Parse(lines []string) (*escrutinio.BallotRecord, escrutinio.Warnings) {
	var ws escrutinio.Warnings
	rec := &escrutinio.BallotRecord{}

	page, pws := extractPageMarker(lines)
	ws.Merge(pws)
	rec.Page = page

	geo, gws := extractGeoCodes(lines)
	ws.Merge(gws)
	rec.Geo = geo

	totals, tws := extractTotals(lines)
	ws.Merge(tws)
	rec.TotalsRecord = totals

	parties, aws := extractParties(lines)
	ws.Merge(aws)
	rec.Parties = parties

	if len(rec.Parties) == 0 {
		ws.AddCritical(escrutinio.WarnNoPartiesFound, "", "")
	}
	for _, party := range rec.Parties {
		switch {
		case party.VoteType == escrutinio.WithPreference && len(party.Candidates) == 0:
			ws.Addf(escrutinio.WarnNoCandidatesFound, "party", party.Number)
		case party.VoteType == escrutinio.WithoutPreference && len(party.Candidates) > 0:
			// Structural anomaly: left for audit, never corrected.
			ws.AddCritical(escrutinio.WarnUnexpectedCandidates, "party", party.Number)
		}
	}

	return rec, ws
}

// ParseText splits raw OCR text into trimmed lines and parses them.
func (p *Parser) ParseText(text string) (*escrutinio.BallotRecord, escrutinio.Warnings) {
	return p.Parse(SplitLines(text))
}
