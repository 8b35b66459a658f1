package parse

// White-box hooks for tests in the parse_test package.
var (
	ExtractPageMarker  = extractPageMarker
	ExtractGeoCodes    = extractGeoCodes
	ExtractTotals      = extractTotals
	ExtractParties     = extractParties
	FindTotalsBlock    = findTotalsBlock
	ExtractTotalsBody  = extractTotalsBody
	BuildColumns       = buildColumns
	ScoreRotation      = scoreRotation
	ReconstructColumns = reconstructColumns
	CorrectTotals      = correctTotals
)

const TotalsBodyMaxLines = totalsBodyMaxLines
