package parse

import (
	"regexp"
	"strings"

	"github.com/otalvaro/escrutinio"
)

// Bounded scan windows. Party sections are independent: one malformed field
// never blocks extraction of the next party.
const (
	// partyNumberLookahead bounds the search for the 4-digit party number
	// after a list header.
	partyNumberLookahead = 120

	// partyWindowSize bounds the section scanned for votes, candidates and
	// the party total.
	partyWindowSize = 800
)

var (
	partyHeaderRe = regexp.MustCompile(`(?i)LISTA\s+(CON|SIN)\s+VOTO\s+PREFERENTE`)

	// Party numbers are always written with a leading zero (0001-9999),
	// which keeps them disjoint from candidate identifiers.
	partyNumberRe = regexp.MustCompile(`\b0\d{3}\b`)

	// Candidate identifiers are 3-digit tokens never starting with 0.
	candidateIDRe = regexp.MustCompile(`\b[1-9]\d{2}\b`)

	aggregateRe  = regexp.MustCompile(`(?i)VOTOS\s+SOLO\s+POR\s+LA\s+AGRUPACI[OÓ]N\s+POL[IÍ]TICA\s*[:|]?\s*([^\n|]*)`)
	partyTotalRe = regexp.MustCompile(`(?i)TOTAL\s*=\s*([^\n|]*)`)

	digitRunRe = regexp.MustCompile(`\d+`)

	// Header noise leaking into a would-be party name marks the match as
	// spurious (the form preamble repeats the list-header phrase).
	nameNoiseRe = regexp.MustCompile(`(?i)ACTA\s+DE\s+ESCRUTINIO|SENADO|C[AÁ]MARA`)

	// Decorative glyphs stripped from party names.
	nameGlyphRe = regexp.MustCompile(`[*#/\\|•·=_~<>\[\]{}]+`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// extractParties scans the full text for every list header and extracts one
// party record per genuine match.
func extractParties(lines []string) ([]escrutinio.PartyRecord, escrutinio.Warnings) {
	var ws escrutinio.Warnings
	text := strings.Join(lines, "\n")

	headers := partyHeaderRe.FindAllStringSubmatchIndex(text, -1)
	var parties []escrutinio.PartyRecord
	for i, h := range headers {
		windowStart := h[1]
		windowEnd := min(windowStart+partyWindowSize, len(text))
		if i+1 < len(headers) && headers[i+1][0] < windowEnd {
			windowEnd = headers[i+1][0]
		}
		window := text[windowStart:windowEnd]

		voteType := escrutinio.WithoutPreference
		if strings.EqualFold(text[h[2]:h[3]], "CON") {
			voteType = escrutinio.WithPreference
		}

		party, pws, ok := extractParty(window, voteType)
		ws.Merge(pws)
		if ok {
			parties = append(parties, party)
		}
	}
	return parties, ws
}

// extractParty pulls one party record out of its section window. The third
// return is false when the match is spurious (no party number in the
// lookahead, or the name carries document-header noise).
func extractParty(window string, voteType escrutinio.VoteType) (escrutinio.PartyRecord, escrutinio.Warnings, bool) {
	var ws escrutinio.Warnings
	party := escrutinio.PartyRecord{VoteType: voteType, AggregateVotes: "0", Total: "0"}

	numLoc := partyNumberRe.FindStringIndex(window[:min(partyNumberLookahead, len(window))])
	if numLoc == nil {
		ws.Add(escrutinio.WarnPartyNumberMissing)
		return party, ws, false
	}
	party.Number = window[numLoc[0]:numLoc[1]]

	name, ok := extractPartyName(window[numLoc[1]:])
	if !ok {
		return party, ws, false
	}
	party.Name = name

	// Candidate rows sit between the aggregate phrase and the party total.
	candStart := numLoc[1]
	if m := aggregateRe.FindStringSubmatchIndex(window); m != nil {
		raw := window[m[2]:m[3]]
		votes, residue := lastDigitRun(raw)
		if votes == "" {
			// All-symbol cell: semantically zero, but flagged.
			party.AggregateVotes = "0"
			party.NeedsAudit = true
		} else {
			party.AggregateVotes = votes
			party.NeedsAudit = party.NeedsAudit || residue
		}
		candStart = m[1]
	} else {
		ws.Addf(escrutinio.WarnPartyAggregateMissing, "aggregate_votes", party.Number)
	}

	candEnd := len(window)
	if m := partyTotalRe.FindStringSubmatchIndex(window); m != nil {
		raw := window[m[2]:m[3]]
		total, residue := lastDigitRun(raw)
		if total == "" {
			party.Total = "0"
			party.NeedsAudit = true
		} else {
			party.Total = total
			party.NeedsAudit = party.NeedsAudit || residue
		}
		if m[0] < candEnd {
			candEnd = m[0]
		}
	} else {
		ws.Addf(escrutinio.WarnPartyTotalMissing, "total", party.Number)
	}

	if voteType == escrutinio.WithPreference && candStart < candEnd {
		candidates, audit := extractCandidates(window[candStart:candEnd])
		party.Candidates = candidates
		party.NeedsAudit = party.NeedsAudit || audit
	}

	return party, ws, true
}

// extractPartyName cleans the text between the party number and the next
// delimiter. Returns false for names carrying document-header noise.
func extractPartyName(after string) (string, bool) {
	name := after
	if i := strings.IndexAny(name, "\n|"); i >= 0 {
		name = name[:i]
	}
	if nameNoiseRe.MatchString(name) {
		return "", false
	}
	name = nameGlyphRe.ReplaceAllString(name, " ")
	name = whitespaceRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(name), true
}

// extractCandidates finds every candidate identifier in the region and
// recovers each vote count from the span between the identifier and the next
// one. The last embedded digit run is the count, which tolerates OCR noise
// like "X X 5"; an all-symbol span means no mark was recognized, which is
// absent rather than zero.
func extractCandidates(region string) ([]escrutinio.Candidate, bool) {
	ids := candidateIDRe.FindAllStringIndex(region, -1)
	if len(ids) == 0 {
		return nil, false
	}

	audit := false
	candidates := make([]escrutinio.Candidate, 0, len(ids))
	for i, loc := range ids {
		spanEnd := len(region)
		if i+1 < len(ids) {
			spanEnd = ids[i+1][0]
		}
		span := region[loc[1]:spanEnd]

		votes, residue := lastDigitRun(span)
		var value escrutinio.VoteValue
		switch {
		case votes != "":
			value = escrutinio.RecordedVotes(votes)
			audit = audit || residue
		case containsLetter(span):
			raw := strings.Trim(whitespaceRe.ReplaceAllString(span, " "), " |:")
			value = escrutinio.IllegibleVotes(raw)
			audit = true
		default:
			value = escrutinio.UnrecordedVotes()
		}

		candidates = append(candidates, escrutinio.Candidate{
			ID:    region[loc[0]:loc[1]],
			Votes: value,
		})
	}
	return candidates, audit
}

// lastDigitRun returns the last embedded run of digits in s and whether s
// carries non-digit residue beyond cell separators and whitespace.
func lastDigitRun(s string) (string, bool) {
	runs := digitRunRe.FindAllString(s, -1)
	if len(runs) == 0 {
		return "", strings.TrimSpace(s) != ""
	}
	stripped := digitRunRe.ReplaceAllString(s, "")
	stripped = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '|', ':':
			return -1
		}
		return r
	}, stripped)
	return runs[len(runs)-1], stripped != "" || len(runs) > 1
}

func containsLetter(s string) bool {
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}
