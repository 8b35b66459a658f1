package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/otalvaro/escrutinio"
	main "github.com/otalvaro/escrutinio/cmd/escrutinio"
	"github.com/otalvaro/escrutinio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedRecord(id string, needsAudit bool) *escrutinio.StoredRecord {
	return &escrutinio.StoredRecord{
		ID:         id,
		SourceHash: "abc123",
		Record: &escrutinio.BallotRecord{
			Page: "01 de 02",
			Geo:  escrutinio.GeoCodes{Department: "16", Table: "066"},
		},
		NeedsAudit: needsAudit,
		ParsedAt:   "2026-03-10T12:00:00Z",
	}
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists records with geo codes and audit marker", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, _ escrutinio.RecordFilter) ([]*escrutinio.StoredRecord, error) {
				return []*escrutinio.StoredRecord{
					storedRecord("rec-1", false),
					storedRecord("rec-2", true),
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Records: records,
		}

		cmd := &main.ListCmd{Limit: 50}

		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "rec-1")
		assert.Contains(t, output, "rec-2")
		assert.Contains(t, output, "dept=16")
		assert.Contains(t, output, "mesa=066")
		assert.Contains(t, output, "! rec-2")
	})

	t.Run("passes audit and geo filters through", func(t *testing.T) {
		t.Parallel()

		var gotFilter escrutinio.RecordFilter
		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, filter escrutinio.RecordFilter) ([]*escrutinio.StoredRecord, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Records: records,
		}

		cmd := &main.ListCmd{Audit: true, Department: "16", Table: "066", Limit: 10}

		require.NoError(t, cmd.Run(deps))
		require.NotNil(t, gotFilter.NeedsAudit)
		assert.True(t, *gotFilter.NeedsAudit)
		require.NotNil(t, gotFilter.Department)
		assert.Equal(t, "16", *gotFilter.Department)
		require.NotNil(t, gotFilter.Table)
		assert.Equal(t, "066", *gotFilter.Table)
		assert.Equal(t, 10, gotFilter.Limit)
	})

	t.Run("shows helpful message when no records exist", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, _ escrutinio.RecordFilter) ([]*escrutinio.StoredRecord, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Records: records,
		}

		cmd := &main.ListCmd{}

		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No records found")
	})
}
