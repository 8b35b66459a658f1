package escrutinio

import "strings"

// Warning codes emitted by the parse pipeline. Warnings never fail a parse;
// they accumulate and travel with the record so the caller can decide whether
// the document needs human review.
const (
	WarnPageNotFound           = "page_not_found"
	WarnGeoNotFound            = "geo_not_found"
	WarnGeoFieldMissing        = "geo_field_missing"
	WarnTotalsBlockNotFound    = "totales_block_not_found"
	WarnTotalsFieldMissing     = "totales_field_missing"
	WarnTotalsValidationFailed = "totales_validation_failed"
	WarnPartyNumberMissing     = "party_number_missing"
	WarnPartyAggregateMissing  = "party_aggregate_missing"
	WarnPartyTotalMissing      = "party_total_missing"
	WarnNoPartiesFound         = "no_parties_found"
	WarnNoCandidatesFound      = "no_candidates_found"
	WarnUnexpectedCandidates   = "unexpected_candidates"
)

// Warning represents a non-fatal diagnostic produced during parsing. Field
// and Value are optional structured context: the record field the warning
// refers to and the raw value that triggered it.
type Warning struct {
	Code     string `json:"code"`
	Field    string `json:"field,omitempty"`
	Value    string `json:"value,omitempty"`
	Critical bool   `json:"critical,omitempty"`
}

// String renders the warning as a single diagnostic token, e.g.
// "totales_validation_failed(voters=50)" or "CRITICAL:no_parties_found".
func (w Warning) String() string {
	var sb strings.Builder
	if w.Critical {
		sb.WriteString("CRITICAL:")
	}
	sb.WriteString(w.Code)
	if w.Field != "" || w.Value != "" {
		sb.WriteString("(")
		sb.WriteString(w.Field)
		if w.Value != "" {
			if w.Field != "" {
				sb.WriteString("=")
			}
			sb.WriteString(w.Value)
		}
		sb.WriteString(")")
	}
	return sb.String()
}

// Warnings is an append-only accumulator of parse diagnostics. The zero value
// is ready to use. Extractors return their warnings by value; the
// orchestrator merges them in call order, so no ambient state is shared
// between parse invocations.
type Warnings []Warning

// Add appends a warning with the given code and no context.
func (ws *Warnings) Add(code string) {
	*ws = append(*ws, Warning{Code: code})
}

// Addf appends a warning carrying field/value context.
func (ws *Warnings) Addf(code, field, value string) {
	*ws = append(*ws, Warning{Code: code, Field: field, Value: value})
}

// AddCritical appends a warning tagged as critical.
func (ws *Warnings) AddCritical(code, field, value string) {
	*ws = append(*ws, Warning{Code: code, Field: field, Value: value, Critical: true})
}

// Merge appends all warnings from other, preserving order.
func (ws *Warnings) Merge(other Warnings) {
	*ws = append(*ws, other...)
}

// Has reports whether any accumulated warning carries the given code.
func (ws Warnings) Has(code string) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Critical reports whether any accumulated warning is tagged critical.
func (ws Warnings) Critical() bool {
	for _, w := range ws {
		if w.Critical {
			return true
		}
	}
	return false
}

// Strings renders the accumulated warnings as diagnostic tokens, in order.
func (ws Warnings) Strings() []string {
	if len(ws) == 0 {
		return nil
	}
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}
