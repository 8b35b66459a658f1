package parse_test

import (
	"strings"
	"testing"

	"github.com/otalvaro/escrutinio"
	"github.com/otalvaro/escrutinio/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractParties(t *testing.T) {
	t.Parallel()

	t.Run("with-preference party with candidates", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"LISTA CON VOTO PREFERENTE",
			"0261 COALICIÓN X",
			"VOTOS SOLO POR LA AGRUPACIÓN POLÍTICA 0",
			"101 | X X 5",
			"102 | ---",
			"106 | 1",
			"TOTAL = 6 |",
		}

		parties, ws := parse.ExtractParties(lines)

		require.Len(t, parties, 1)
		p := parties[0]
		assert.Equal(t, "0261", p.Number)
		assert.Equal(t, "COALICIÓN X", p.Name)
		assert.Equal(t, escrutinio.WithPreference, p.VoteType)
		assert.Equal(t, "0", p.AggregateVotes)
		assert.Equal(t, "6", p.Total)
		assert.Empty(t, ws)

		require.Len(t, p.Candidates, 3)
		assert.Equal(t, "101", p.Candidates[0].ID)
		assert.Equal(t, escrutinio.VoteRecorded, p.Candidates[0].Votes.Kind())
		assert.Equal(t, "5", p.Candidates[0].Votes.Digits())
		assert.Equal(t, "102", p.Candidates[1].ID)
		assert.Equal(t, escrutinio.VoteUnrecorded, p.Candidates[1].Votes.Kind())
		assert.Equal(t, "106", p.Candidates[2].ID)
		assert.Equal(t, "1", p.Candidates[2].Votes.Digits())

		// "X X 5" residue in a candidate count flags the party.
		assert.True(t, p.NeedsAudit)
	})

	t.Run("without-preference party never carries candidates", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"LISTA SIN VOTO PREFERENTE",
			"0300 PARTIDO Y",
			"VOTOS SOLO POR LA AGRUPACION POLITICA 12",
			"TOTAL = 12 |",
		}

		parties, ws := parse.ExtractParties(lines)

		require.Len(t, parties, 1)
		p := parties[0]
		assert.Equal(t, escrutinio.WithoutPreference, p.VoteType)
		assert.Equal(t, "12", p.AggregateVotes)
		assert.Equal(t, "12", p.Total)
		assert.Empty(t, p.Candidates)
		assert.False(t, p.NeedsAudit)
		assert.Empty(t, ws)
	})

	t.Run("all-symbol aggregate reads as zero with the audit flag", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"LISTA SIN VOTO PREFERENTE",
			"0305 PARTIDO Z",
			"VOTOS SOLO POR LA AGRUPACIÓN POLÍTICA ***",
			"TOTAL = 0 |",
		}

		parties, _ := parse.ExtractParties(lines)

		require.Len(t, parties, 1)
		assert.Equal(t, "0", parties[0].AggregateVotes)
		assert.True(t, parties[0].NeedsAudit)
	})

	t.Run("party total takes the last embedded digit run", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"LISTA SIN VOTO PREFERENTE",
			"0310 PARTIDO W",
			"VOTOS SOLO POR LA AGRUPACION POLITICA 4",
			"TOTAL = X X 14 |",
		}

		parties, _ := parse.ExtractParties(lines)

		require.Len(t, parties, 1)
		assert.Equal(t, "14", parties[0].Total)
		assert.True(t, parties[0].NeedsAudit)
	})

	t.Run("missing total warns and defaults to zero", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"LISTA SIN VOTO PREFERENTE",
			"0320 PARTIDO V",
			"VOTOS SOLO POR LA AGRUPACION POLITICA 3",
		}

		parties, ws := parse.ExtractParties(lines)

		require.Len(t, parties, 1)
		assert.Equal(t, "0", parties[0].Total)
		assert.True(t, ws.Has(escrutinio.WarnPartyTotalMissing))
	})

	t.Run("missing aggregate warns and defaults to zero", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"LISTA SIN VOTO PREFERENTE",
			"0330 PARTIDO U",
			"TOTAL = 9 |",
		}

		parties, ws := parse.ExtractParties(lines)

		require.Len(t, parties, 1)
		assert.Equal(t, "0", parties[0].AggregateVotes)
		assert.True(t, ws.Has(escrutinio.WarnPartyAggregateMissing))
	})

	t.Run("header-noise names are discarded as spurious matches", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"LISTA CON VOTO PREFERENTE",
			"0101 SENADO DE LA REPÚBLICA",
		}

		parties, _ := parse.ExtractParties(lines)

		assert.Empty(t, parties)
	})

	t.Run("header without a party number warns and is skipped", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"LISTA CON VOTO PREFERENTE marque así",
		}

		parties, ws := parse.ExtractParties(lines)

		assert.Empty(t, parties)
		assert.True(t, ws.Has(escrutinio.WarnPartyNumberMissing))
	})

	t.Run("decorative glyphs stripped from names", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"LISTA SIN VOTO PREFERENTE",
			"0340 ** PARTIDO   T ##",
			"TOTAL = 1 |",
		}

		parties, _ := parse.ExtractParties(lines)

		require.Len(t, parties, 1)
		assert.Equal(t, "PARTIDO T", parties[0].Name)
	})

	t.Run("one malformed party does not block the next", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"LISTA CON VOTO PREFERENTE sin numero aqui",
			"LISTA SIN VOTO PREFERENTE",
			"0350 PARTIDO S",
			"VOTOS SOLO POR LA AGRUPACION POLITICA 7",
			"TOTAL = 7 |",
		}

		parties, ws := parse.ExtractParties(lines)

		require.Len(t, parties, 1)
		assert.Equal(t, "0350", parties[0].Number)
		assert.True(t, ws.Has(escrutinio.WarnPartyNumberMissing))
	})

	t.Run("sections are bounded by the next header", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"LISTA CON VOTO PREFERENTE",
			"0261 COALICIÓN X",
			"VOTOS SOLO POR LA AGRUPACIÓN POLÍTICA 0",
			"101 | 2",
			"TOTAL = 2 |",
			"LISTA CON VOTO PREFERENTE",
			"0262 COALICIÓN Y",
			"VOTOS SOLO POR LA AGRUPACIÓN POLÍTICA 1",
			"103 | 4",
			"TOTAL = 5 |",
		}

		parties, _ := parse.ExtractParties(lines)

		require.Len(t, parties, 2)
		assert.Equal(t, "0261", parties[0].Number)
		require.Len(t, parties[0].Candidates, 1)
		assert.Equal(t, "101", parties[0].Candidates[0].ID)
		assert.Equal(t, "0262", parties[1].Number)
		require.Len(t, parties[1].Candidates, 1)
		assert.Equal(t, "103", parties[1].Candidates[0].ID)
	})

	t.Run("candidate scan window is bounded", func(t *testing.T) {
		t.Parallel()

		// Far past the 800-character window, this candidate row must not be
		// picked up.
		filler := strings.Repeat("x ", 500)
		lines := []string{
			"LISTA CON VOTO PREFERENTE",
			"0261 COALICIÓN X",
			"VOTOS SOLO POR LA AGRUPACIÓN POLÍTICA 0",
			filler,
			"901 | 3",
		}

		parties, _ := parse.ExtractParties(lines)

		require.Len(t, parties, 1)
		assert.Empty(t, parties[0].Candidates)
	})

	t.Run("letters without digits in a candidate span read as illegible", func(t *testing.T) {
		t.Parallel()

		lines := []string{
			"LISTA CON VOTO PREFERENTE",
			"0261 COALICIÓN X",
			"VOTOS SOLO POR LA AGRUPACIÓN POLÍTICA 0",
			"101 | abc",
			"TOTAL = 0 |",
		}

		parties, _ := parse.ExtractParties(lines)

		require.Len(t, parties, 1)
		require.Len(t, parties[0].Candidates, 1)
		votes := parties[0].Candidates[0].Votes
		assert.Equal(t, escrutinio.VoteIllegible, votes.Kind())
		assert.Equal(t, "abc", votes.Raw())
		assert.True(t, parties[0].NeedsAudit)
	})
}
