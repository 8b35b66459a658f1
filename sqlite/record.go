package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/otalvaro/escrutinio"
)

// Compile-time interface verification.
var _ escrutinio.RecordService = (*RecordService)(nil)

// RecordService implements escrutinio.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// HashSource computes the xxHash fingerprint of raw OCR text and returns it
// as a hex string. The same page re-submitted yields the same hash.
func HashSource(text string) string {
	h := xxhash.Sum64String(text)
	return fmt.Sprintf("%x", h)
}

// CreateRecord persists a new stored record, assigning its ID and timestamp.
func (s *RecordService) CreateRecord(ctx context.Context, rec *escrutinio.StoredRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.ParsedAt = time.Now().UTC().Format(time.RFC3339)

	recordJSON, err := json.Marshal(rec.Record)
	if err != nil {
		return err
	}
	warningsJSON, err := json.Marshal(rec.Warnings)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (id, source_hash, department, mesa, record, warnings, needs_audit, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SourceHash, rec.Record.Geo.Department, rec.Record.Geo.Table,
		string(recordJSON), string(warningsJSON), boolToInt(rec.NeedsAudit), rec.ParsedAt)

	return err
}

// FindRecordByID retrieves a stored record by ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*escrutinio.StoredRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_hash, record, warnings, needs_audit, parsed_at
		FROM records
		WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, escrutinio.Errorf(escrutinio.ENOTFOUND, "record not found")
	}
	return rec, err
}

// FindRecords retrieves stored records matching the filter, most recent
// first.
func (s *RecordService) FindRecords(ctx context.Context, filter escrutinio.RecordFilter) ([]*escrutinio.StoredRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_hash, record, warnings, needs_audit, parsed_at FROM records WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceHash != nil {
		query.WriteString(" AND source_hash = ?")
		args = append(args, *filter.SourceHash)
	}
	if filter.Department != nil {
		query.WriteString(" AND department = ?")
		args = append(args, *filter.Department)
	}
	if filter.Table != nil {
		query.WriteString(" AND mesa = ?")
		args = append(args, *filter.Table)
	}
	if filter.NeedsAudit != nil {
		query.WriteString(" AND needs_audit = ?")
		args = append(args, boolToInt(*filter.NeedsAudit))
	}

	query.WriteString(" ORDER BY parsed_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*escrutinio.StoredRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// DeleteRecord permanently removes a stored record.
func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return escrutinio.Errorf(escrutinio.ENOTFOUND, "record not found")
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*escrutinio.StoredRecord, error) {
	var rec escrutinio.StoredRecord
	var recordJSON, warningsJSON string
	var needsAudit int

	if err := row.Scan(&rec.ID, &rec.SourceHash, &recordJSON, &warningsJSON, &needsAudit, &rec.ParsedAt); err != nil {
		return nil, err
	}

	rec.Record = &escrutinio.BallotRecord{}
	if err := json.Unmarshal([]byte(recordJSON), rec.Record); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(warningsJSON), &rec.Warnings); err != nil {
		return nil, err
	}
	rec.NeedsAudit = needsAudit != 0

	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
