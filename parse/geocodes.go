package parse

import (
	"regexp"

	"github.com/otalvaro/escrutinio"
)

// Geographic codes live in the sheet header, above the vote table.
const geoScanLines = 20

// geoRule binds a header keyword to a GeoCodes field. Keywords are matched
// on folded text; the digits following the keyword on the same line become
// the code. Station (PUESTO) and table (MESA) are typically co-located on
// one line and simply match that line twice.
type geoRule struct {
	field  string
	re     *regexp.Regexp
	assign func(g *escrutinio.GeoCodes, v string)
}

var geoRules = []geoRule{
	{"dept", regexp.MustCompile(`DEPARTAMENTO\D*?(\d+)`), func(g *escrutinio.GeoCodes, v string) { g.Department = v }},
	{"muni", regexp.MustCompile(`MUNICIPIO\D*?(\d+)`), func(g *escrutinio.GeoCodes, v string) { g.Municipality = v }},
	{"zone", regexp.MustCompile(`\bZONA\D*?(\d+)`), func(g *escrutinio.GeoCodes, v string) { g.Zone = v }},
	{"station", regexp.MustCompile(`\bPUESTO\D*?(\d+)`), func(g *escrutinio.GeoCodes, v string) { g.Station = v }},
	{"table", regexp.MustCompile(`\bMESA\D*?(\d+)`), func(g *escrutinio.GeoCodes, v string) { g.Table = v }},
}

// extractGeoCodes scans the header lines for the five geographic codes.
// Each field is independent: the first keyword match wins, missing fields
// stay empty and are individually warned. When no code at all is found the
// extractor emits a single critical aggregate warning instead of five
// individual ones.
func extractGeoCodes(lines []string) (escrutinio.GeoCodes, escrutinio.Warnings) {
	var ws escrutinio.Warnings
	var geo escrutinio.GeoCodes

	found := make(map[string]bool, len(geoRules))
	for _, line := range head(lines, geoScanLines) {
		folded := Fold(line)
		for _, rule := range geoRules {
			if found[rule.field] {
				continue
			}
			if m := rule.re.FindStringSubmatch(folded); m != nil {
				rule.assign(&geo, m[1])
				found[rule.field] = true
			}
		}
	}

	if geo.Empty() {
		ws.AddCritical(escrutinio.WarnGeoNotFound, "", "")
		return geo, ws
	}
	for _, rule := range geoRules {
		if !found[rule.field] {
			ws.Addf(escrutinio.WarnGeoFieldMissing, rule.field, "")
		}
	}
	return geo, ws
}
