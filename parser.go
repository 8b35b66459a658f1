package escrutinio

import "context"

// DocumentType identifies the fixed-layout form a document was scanned from.
type DocumentType string

// DocumentTypeE14 is the three-total tally sheet this module ships a parser
// for.
const DocumentTypeE14 DocumentType = "E14"

// RecordParser reconstructs a ballot record from an ordered OCR line stream.
//
// Parse is a pure function of its input: it never mutates lines, returns its
// warnings by value, and holds no state across calls, so a single parser may
// be used from multiple goroutines. Malformed input degrades to empty fields
// plus warnings; Parse never fails.
type RecordParser interface {
	Parse(lines []string) (*BallotRecord, Warnings)
}

// ParserRegistry selects a parser for a document type code.
type ParserRegistry interface {
	// Get returns the parser registered for the document type, or nil if
	// none is registered.
	Get(dt DocumentType) RecordParser

	// Register associates a parser with a document type, replacing any
	// previous registration.
	Register(dt DocumentType, p RecordParser)

	// List returns the registered document types in unspecified order.
	List() []DocumentType
}

// Recognizer produces line-ordered text from a scanned page image. The OCR
// adapter is responsible for sorting recognized fragments top-to-bottom,
// left-to-right before returning; the parse pipeline assumes but does not
// verify that ordering.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// RecordWriter persists a parsed record as an audit artifact.
type RecordWriter interface {
	WriteRecord(ctx context.Context, rec *StoredRecord) error
}

// StoredRecord wraps a ballot record with processing metadata for
// persistence and audit.
type StoredRecord struct {
	ID string `json:"id"`

	// SourceHash fingerprints the raw OCR text the record was parsed from;
	// used to detect re-submitted pages.
	SourceHash string `json:"sourceHash"`

	Record   *BallotRecord `json:"record"`
	Warnings Warnings      `json:"warnings,omitempty"`

	// NeedsAudit aggregates the per-party audit flags and critical
	// warnings.
	NeedsAudit bool `json:"needsAudit"`

	ParsedAt string `json:"parsedAt"`
}

// Validate returns an error if the stored record is missing required fields.
func (r *StoredRecord) Validate() error {
	if r.Record == nil {
		return Errorf(EINVALID, "ballot record required")
	}
	if r.SourceHash == "" {
		return Errorf(EINVALID, "source hash required")
	}
	return nil
}

// RecordService represents a service for managing stored records.
type RecordService interface {
	// CreateRecord persists a new stored record, assigning its ID and
	// timestamp.
	CreateRecord(ctx context.Context, rec *StoredRecord) error

	// FindRecordByID retrieves a stored record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByID(ctx context.Context, id string) (*StoredRecord, error)

	// FindRecords retrieves stored records matching the filter.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*StoredRecord, error)

	// DeleteRecord permanently removes a stored record.
	// Returns ENOTFOUND if the record does not exist.
	DeleteRecord(ctx context.Context, id string) error
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	ID         *string `json:"id"`
	SourceHash *string `json:"sourceHash"`
	Table      *string `json:"table"`
	Department *string `json:"department"`
	NeedsAudit *bool   `json:"needsAudit"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
