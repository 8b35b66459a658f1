package sqlite_test

import (
	"context"
	"testing"

	"github.com/otalvaro/escrutinio"
	"github.com/otalvaro/escrutinio/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoredRecord() *escrutinio.StoredRecord {
	return &escrutinio.StoredRecord{
		SourceHash: sqlite.HashSource("raw ocr text"),
		Record: &escrutinio.BallotRecord{
			Page: "01",
			Geo: escrutinio.GeoCodes{
				Department: "16",
				Table:      "066",
			},
			TotalsRecord: escrutinio.TotalsRecord{
				Voters:       "350",
				BallotsInBox: "348",
				Incinerated:  "0",
			},
			Parties: []escrutinio.PartyRecord{
				{
					Number:         "0012",
					Name:           "PARTIDO EJEMPLO",
					VoteType:       escrutinio.WithPreference,
					AggregateVotes: "14",
					Candidates: []escrutinio.Candidate{
						{ID: "101", Votes: escrutinio.RecordedVotes("5")},
					},
					Total: "19",
				},
			},
		},
	}
}

func TestRecordService_CreateRecord(t *testing.T) {
	t.Parallel()

	t.Run("creates record with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		rec := testStoredRecord()
		err := svc.CreateRecord(ctx, rec)
		require.NoError(t, err)

		assert.NotEmpty(t, rec.ID, "ID should be generated")
		assert.NotEmpty(t, rec.ParsedAt, "ParsedAt should be set")
	})

	t.Run("returns error for invalid record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		rec := &escrutinio.StoredRecord{} // missing ballot record

		err := svc.CreateRecord(ctx, rec)
		require.Error(t, err)
		assert.Equal(t, escrutinio.EINVALID, escrutinio.ErrorCode(err))
	})

	t.Run("round-trips warnings and audit flag", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		rec := testStoredRecord()
		rec.NeedsAudit = true
		rec.Warnings.Addf("totales_field_missing", "voters", "")
		require.NoError(t, svc.CreateRecord(ctx, rec))

		got, err := svc.FindRecordByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.True(t, got.NeedsAudit)
		require.Len(t, got.Warnings, 1)
		assert.Equal(t, "totales_field_missing", got.Warnings[0].Code)
	})
}

func TestRecordService_FindRecordByID(t *testing.T) {
	t.Parallel()

	t.Run("finds existing record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		rec := testStoredRecord()
		require.NoError(t, svc.CreateRecord(ctx, rec))

		got, err := svc.FindRecordByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, rec.SourceHash, got.SourceHash)
		assert.Equal(t, "350", got.Record.Voters)
		require.Len(t, got.Record.Parties, 1)
		assert.Equal(t, "0012", got.Record.Parties[0].Number)
	})

	t.Run("returns ENOTFOUND for missing record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		_, err := svc.FindRecordByID(ctx, "no-such-id")
		require.Error(t, err)
		assert.Equal(t, escrutinio.ENOTFOUND, escrutinio.ErrorCode(err))
	})
}

func TestRecordService_FindRecords(t *testing.T) {
	t.Parallel()

	t.Run("filters by source hash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		a := testStoredRecord()
		require.NoError(t, svc.CreateRecord(ctx, a))
		b := testStoredRecord()
		b.SourceHash = sqlite.HashSource("different text")
		require.NoError(t, svc.CreateRecord(ctx, b))

		got, err := svc.FindRecords(ctx, escrutinio.RecordFilter{SourceHash: &a.SourceHash})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, a.ID, got[0].ID)
	})

	t.Run("filters by needs_audit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		clean := testStoredRecord()
		require.NoError(t, svc.CreateRecord(ctx, clean))
		flagged := testStoredRecord()
		flagged.NeedsAudit = true
		require.NoError(t, svc.CreateRecord(ctx, flagged))

		needsAudit := true
		got, err := svc.FindRecords(ctx, escrutinio.RecordFilter{NeedsAudit: &needsAudit})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, flagged.ID, got[0].ID)
	})

	t.Run("filters by department and table", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		bogota := testStoredRecord()
		require.NoError(t, svc.CreateRecord(ctx, bogota))
		cali := testStoredRecord()
		cali.Record.Geo.Department = "76"
		cali.Record.Geo.Table = "012"
		require.NoError(t, svc.CreateRecord(ctx, cali))

		dept := "76"
		got, err := svc.FindRecords(ctx, escrutinio.RecordFilter{Department: &dept})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, cali.ID, got[0].ID)

		table := "066"
		got, err = svc.FindRecords(ctx, escrutinio.RecordFilter{Table: &table})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, bogota.ID, got[0].ID)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			require.NoError(t, svc.CreateRecord(ctx, testStoredRecord()))
		}

		got, err := svc.FindRecords(ctx, escrutinio.RecordFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = svc.FindRecords(ctx, escrutinio.RecordFilter{Limit: 2, Offset: 4})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("returns all records with empty filter", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateRecord(ctx, testStoredRecord()))
		require.NoError(t, svc.CreateRecord(ctx, testStoredRecord()))

		got, err := svc.FindRecords(ctx, escrutinio.RecordFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestRecordService_DeleteRecord(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		rec := testStoredRecord()
		require.NoError(t, svc.CreateRecord(ctx, rec))

		require.NoError(t, svc.DeleteRecord(ctx, rec.ID))

		_, err := svc.FindRecordByID(ctx, rec.ID)
		assert.Equal(t, escrutinio.ENOTFOUND, escrutinio.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		err := svc.DeleteRecord(ctx, "no-such-id")
		require.Error(t, err)
		assert.Equal(t, escrutinio.ENOTFOUND, escrutinio.ErrorCode(err))
	})
}

func TestHashSource(t *testing.T) {
	t.Parallel()

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, sqlite.HashSource("same text"), sqlite.HashSource("same text"))
	})

	t.Run("differs for different content", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, sqlite.HashSource("one"), sqlite.HashSource("two"))
	})
}
