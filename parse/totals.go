package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/otalvaro/escrutinio"
)

// Totals-block structure constants.
const (
	// Three TOTAL markers must fall within this many lines of each other to
	// count as the block header; isolated markers elsewhere (the leveling
	// section repeats the word) are rejected.
	totalsMarkerWindow    = 5
	totalsMarkersRequired = 3

	// Hard cap on body lines: malformed input without an end marker must
	// still terminate.
	totalsBodyMaxLines = 15
)

// Keyword anchors, matched on folded text.
const (
	tokenTotal        = "TOTAL"
	tokenFormat       = "FORMATO"
	tokenE11          = "E-11"
	tokenVoters       = "SUFRAGANTES"
	tokenUrn          = "URNA"
	tokenVotes        = "VOTOS"
	tokenIncinerated  = "INCINERAD"
	tokenConstituency = "CIRCUNSCRIPCION"
)

// Footer marker terminating the totals body, e.g. "X 1-2-3-4 X".
var totalsFooterRe = regexp.MustCompile(`^X\s*\d+-\d+-\d+-\d+\s*X$`)

// totalsField names one of the three semantic totals.
type totalsField int

const (
	fieldVoters totalsField = iota
	fieldBallots
	fieldIncinerated
)

func (f totalsField) String() string {
	switch f {
	case fieldVoters:
		return "voters"
	case fieldBallots:
		return "ballots_in_box"
	default:
		return "incinerated"
	}
}

// extractTotals locates the totals block, reconstructs its three columns,
// assigns each column to a semantic field, and repairs values that violate
// the consistency rule. Every failure degrades to empty fields plus a
// warning.
func extractTotals(lines []string) (escrutinio.TotalsRecord, escrutinio.Warnings) {
	var ws escrutinio.Warnings

	bodyStart, ok := findTotalsBlock(lines)
	if !ok {
		ws.Add(escrutinio.WarnTotalsBlockNotFound)
		return escrutinio.TotalsRecord{}, ws
	}

	body := extractTotalsBody(lines, bodyStart)
	cols := reconstructColumns(body)

	totals := identifyFields(cols, &ws)

	corrected, ok := correctTotals(totals)
	if !ok {
		ws.Addf(escrutinio.WarnTotalsValidationFailed, "totals",
			totals.Voters+"|"+totals.BallotsInBox+"|"+totals.Incinerated)
		return totals, ws
	}
	return corrected, ws
}

// findTotalsBlock scans for three TOTAL markers within the sliding window
// and returns the index of the line immediately after the third one. A
// marker farther than the window from the window start resets the count and
// restarts the window at that marker.
func findTotalsBlock(lines []string) (int, bool) {
	count := 0
	windowStart := 0
	for i, line := range lines {
		if Fold(line) != tokenTotal {
			continue
		}
		if count == 0 || i-windowStart > totalsMarkerWindow {
			windowStart = i
			count = 1
		} else {
			count++
		}
		if count == totalsMarkersRequired {
			return i + 1, true
		}
	}
	return 0, false
}

// extractTotalsBody collects body lines verbatim starting at start, stopping
// at a blank line, the territorial-constituency keyword, the footer marker,
// or the hard line cap, whichever comes first.
func extractTotalsBody(lines []string, start int) []string {
	var body []string
	for i := start; i < len(lines) && len(body) < totalsBodyMaxLines; i++ {
		line := lines[i]
		if line == "" {
			break
		}
		folded := Fold(line)
		if strings.Contains(folded, tokenConstituency) || totalsFooterRe.MatchString(folded) {
			break
		}
		body = append(body, line)
	}
	return body
}

// rotationRule scores one anchor family during column reconstruction. The
// anchor is worth award points in its home column and penalty points in any
// other; the bonus token adds bonusAward when it shares the home column with
// the anchor.
type rotationRule struct {
	anchors    []string
	bonus      string
	home       int
	award      int
	bonusAward int
	penalty    int
}

var rotationRules = []rotationRule{
	{anchors: []string{tokenFormat, tokenE11}, bonus: tokenVoters, home: 0, award: 10, bonusAward: 5, penalty: -20},
	{anchors: []string{tokenUrn}, bonus: tokenVotes, home: 1, award: 10, bonusAward: 5, penalty: -20},
	{anchors: []string{tokenIncinerated}, home: 2, award: 10, penalty: -20},
}

// reconstructColumns recovers the three logical columns from the flat body.
// The body interleaves columns left-to-right, top-to-bottom, but OCR may
// begin mid-row, so all three rotations are built and scored; the strictly
// best one wins and ties resolve to rotation 0.
func reconstructColumns(body []string) [3][]string {
	best := buildColumns(body, 0)
	bestScore := scoreRotation(best)
	for r := 1; r < 3; r++ {
		cols := buildColumns(body, r)
		if score := scoreRotation(cols); score > bestScore {
			best, bestScore = cols, score
		}
	}
	return best
}

// buildColumns assigns body line i to column (i+r) mod 3.
func buildColumns(body []string, r int) [3][]string {
	var cols [3][]string
	for i, line := range body {
		c := (i + r) % 3
		cols[c] = append(cols[c], line)
	}
	return cols
}

// scoreRotation applies the rotation rules to the folded concatenation of
// each column. The out-of-home penalty is what lets the scorer reject a
// plausible-looking but wrong rotation.
func scoreRotation(cols [3][]string) int {
	var folded [3]string
	for i, col := range cols {
		folded[i] = Fold(strings.Join(col, " "))
	}

	score := 0
	for _, rule := range rotationRules {
		for c, text := range folded {
			if !containsAny(text, rule.anchors) {
				continue
			}
			if c != rule.home {
				score += rule.penalty
				continue
			}
			score += rule.award
			if rule.bonus != "" && strings.Contains(text, rule.bonus) {
				score += rule.bonusAward
			}
		}
	}
	return score
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// Fixed specificities for field identification.
const (
	specIncinerated    = 15
	specVotersAnchored = 10
	specVotersWordOnly = 7
	specBallots        = 6
	specCompanionBonus = 2
	specBallotsDemoted = 3
)

// fieldCandidate proposes a column for a semantic field with a confidence.
type fieldCandidate struct {
	field totalsField
	col   int
	spec  int
}

// identifyFields assigns each reconstructed column to a semantic field by
// keyword specificity and returns the selected values: the last line of each
// winning column, trimmed of surrounding whitespace only. Symbol runs and
// corrupted text pass through unchanged to preserve the audit signal.
func identifyFields(cols [3][]string, ws *escrutinio.Warnings) escrutinio.TotalsRecord {
	var candidates []fieldCandidate
	for c, col := range cols {
		text := Fold(strings.Join(col, " "))

		// The incinerated anchor is checked first and commits the column
		// outright: malformed sheets leak the word SUFRAGANTES into the
		// incinerated column, which would otherwise win the voters check.
		if strings.Contains(text, tokenIncinerated) {
			candidates = append(candidates, fieldCandidate{fieldIncinerated, c, specIncinerated})
			continue
		}

		hasFormat := strings.Contains(text, tokenFormat) || strings.Contains(text, tokenE11)
		hasVoters := strings.Contains(text, tokenVoters)
		switch {
		case hasFormat:
			spec := specVotersAnchored
			if hasVoters {
				spec += specCompanionBonus
			}
			candidates = append(candidates, fieldCandidate{fieldVoters, c, spec})
		case hasVoters:
			candidates = append(candidates, fieldCandidate{fieldVoters, c, specVotersWordOnly})
		}

		if strings.Contains(text, tokenUrn) {
			spec := specBallots
			if strings.Contains(text, tokenVotes) {
				spec += specCompanionBonus
			}
			if hasFormat {
				// More likely the voters column; treat the urn hit as a
				// false positive.
				spec = specBallotsDemoted
			}
			candidates = append(candidates, fieldCandidate{fieldBallots, c, spec})
		}
	}

	var totals escrutinio.TotalsRecord
	for _, field := range []totalsField{fieldVoters, fieldBallots, fieldIncinerated} {
		col, ok := selectColumn(candidates, field)
		if !ok || len(cols[col]) == 0 {
			ws.Addf(escrutinio.WarnTotalsFieldMissing, field.String(), "")
			continue
		}
		value := strings.TrimSpace(cols[col][len(cols[col])-1])
		switch field {
		case fieldVoters:
			totals.Voters = value
		case fieldBallots:
			totals.BallotsInBox = value
		case fieldIncinerated:
			totals.Incinerated = value
		}
	}
	return totals
}

// selectColumn picks the best-scoring candidate column for the field.
// First-seen wins ties.
func selectColumn(candidates []fieldCandidate, field totalsField) (int, bool) {
	bestCol, bestSpec := 0, 0
	found := false
	for _, cand := range candidates {
		if cand.field != field {
			continue
		}
		if !found || cand.spec > bestSpec {
			bestCol, bestSpec = cand.col, cand.spec
			found = true
		}
	}
	return bestCol, found
}

// permutation is one repair attempt over the extracted totals. Permutations
// only reassign among the three already-extracted strings; no value is ever
// invented.
type permutation struct {
	name  string
	apply func(escrutinio.TotalsRecord) escrutinio.TotalsRecord
}

// totalsPermutations are tried in this fixed priority order; the first one
// that restores the consistency rule wins.
var totalsPermutations = []permutation{
	{"swap_voters_ballots", func(t escrutinio.TotalsRecord) escrutinio.TotalsRecord {
		t.Voters, t.BallotsInBox = t.BallotsInBox, t.Voters
		return t
	}},
	{"voters_from_incinerated", func(t escrutinio.TotalsRecord) escrutinio.TotalsRecord {
		t.Voters = t.Incinerated
		return t
	}},
	{"shift_ballots_incinerated", func(t escrutinio.TotalsRecord) escrutinio.TotalsRecord {
		t.Voters, t.BallotsInBox = t.BallotsInBox, t.Incinerated
		return t
	}},
	{"rotate_three_way", func(t escrutinio.TotalsRecord) escrutinio.TotalsRecord {
		t.Voters, t.BallotsInBox, t.Incinerated = t.Incinerated, t.Voters, t.BallotsInBox
		return t
	}},
}

// correctTotals enforces the consistency rule. Totals that already satisfy
// it are returned unchanged; otherwise the first permutation whose result is
// fully numeric and ordered wins. A repair must be fully numeric: moving a
// symbol run into the voters field would satisfy the rule vacuously while
// merely hiding the corruption. The second return is false when no
// permutation helps; the caller keeps the originals and flags them for
// audit.
func correctTotals(t escrutinio.TotalsRecord) (escrutinio.TotalsRecord, bool) {
	if t.Consistent() {
		return t, true
	}
	for _, perm := range totalsPermutations {
		if fixed := perm.apply(t); numericallyOrdered(fixed) {
			return fixed, true
		}
	}
	return t, false
}

func numericallyOrdered(t escrutinio.TotalsRecord) bool {
	voters, err := strconv.Atoi(t.Voters)
	if err != nil {
		return false
	}
	ballots, err := strconv.Atoi(t.BallotsInBox)
	if err != nil {
		return false
	}
	return voters >= ballots
}
