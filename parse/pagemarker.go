package parse

import (
	"regexp"

	"github.com/otalvaro/escrutinio"
)

// The page marker ("3 de 9") appears in the sheet header, so only the
// leading lines are scanned.
const pageMarkerScanLines = 10

var pageMarkerRe = regexp.MustCompile(`\b(\d{1,2})\s+DE\s+(\d{1,2})\b`)

// extractPageMarker returns the page marker normalized to "NN de MM", or an
// empty string plus a warning when no line in the header matches. The first
// match wins.
func extractPageMarker(lines []string) (string, escrutinio.Warnings) {
	var ws escrutinio.Warnings
	for _, line := range head(lines, pageMarkerScanLines) {
		m := pageMarkerRe.FindStringSubmatch(Fold(line))
		if m == nil {
			continue
		}
		return pad2(m[1]) + " de " + pad2(m[2]), ws
	}
	ws.Add(escrutinio.WarnPageNotFound)
	return "", ws
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
