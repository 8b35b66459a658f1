package mock

import (
	"context"

	"github.com/otalvaro/escrutinio"
)

var _ escrutinio.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of escrutinio.RecordWriter.
type RecordWriter struct {
	WriteRecordFn func(ctx context.Context, rec *escrutinio.StoredRecord) error
}

func (w *RecordWriter) WriteRecord(ctx context.Context, rec *escrutinio.StoredRecord) error {
	return w.WriteRecordFn(ctx, rec)
}

var _ escrutinio.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of escrutinio.RecordService.
type RecordService struct {
	CreateRecordFn   func(ctx context.Context, rec *escrutinio.StoredRecord) error
	FindRecordByIDFn func(ctx context.Context, id string) (*escrutinio.StoredRecord, error)
	FindRecordsFn    func(ctx context.Context, filter escrutinio.RecordFilter) ([]*escrutinio.StoredRecord, error)
	DeleteRecordFn   func(ctx context.Context, id string) error
}

func (s *RecordService) CreateRecord(ctx context.Context, rec *escrutinio.StoredRecord) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*escrutinio.StoredRecord, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *RecordService) FindRecords(ctx context.Context, filter escrutinio.RecordFilter) ([]*escrutinio.StoredRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	return s.DeleteRecordFn(ctx, id)
}
