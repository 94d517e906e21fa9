package pgsql

import (
	"strings"
	"testing"
	"time"

	"github.com/hotelnest/shift_ledger_app/internal/apperrors"
	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	portsrepo "github.com/hotelnest/shift_ledger_app/internal/core/ports/repositories"
	"github.com/hotelnest/shift_ledger_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTransactionFilter_RecorderMatchesNameOrCode(t *testing.T) {
	tests := []struct {
		name       string
		recordedBy string
		wantArg    string
	}{
		{"by name", "Nguyen Van A", "%Nguyen Van A%"},
		{"by employee code", "NV012", "%NV012%"},
		{"picker label strips code suffix", "Nguyen Van A (NV012)", "%Nguyen Van A%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conditions, args := buildTransactionFilter(portsrepo.ListTransactionsFilter{RecordedBy: tt.recordedBy})

			require.Len(t, conditions, 2)
			assert.Equal(t, "(ru.name ILIKE $1 OR ru.employee_code ILIKE $1)", conditions[1])
			assert.Equal(t, []interface{}{tt.wantArg}, args)
		})
	}
}

func TestBuildTransactionFilter_NumericSearchMatchesAmount(t *testing.T) {
	conditions, args := buildTransactionFilter(portsrepo.ListTransactionsFilter{Search: "50,000"})

	require.Len(t, conditions, 2)
	assert.Equal(t, "(t.fts @@ plainto_tsquery('simple', $1) OR t.amount = $2)", conditions[1])
	assert.Equal(t, []interface{}{"50,000", int64(50000)}, args)
}

func TestBuildTransactionFilter_TextSearchSkipsAmount(t *testing.T) {
	conditions, args := buildTransactionFilter(portsrepo.ListTransactionsFilter{Search: "room 204"})

	require.Len(t, conditions, 2)
	assert.Equal(t, "t.fts @@ plainto_tsquery('simple', $1)", conditions[1])
	assert.Equal(t, []interface{}{"room 204"}, args)
}

func TestBuildListQuery_KeysetAndOffsetShareConditions(t *testing.T) {
	status := domain.StatusPending
	filter := portsrepo.ListTransactionsFilter{BranchCode: "HN01", Status: &status, Limit: 20}

	offsetQuery, offsetArgs, limit, defaultOrder, err := buildListQuery(filter)
	require.NoError(t, err)
	assert.Equal(t, 20, limit)
	assert.True(t, defaultOrder)
	assert.Contains(t, offsetQuery, "ORDER BY t.created_at DESC, t.id DESC")
	assert.Contains(t, offsetQuery, "OFFSET")
	assert.NotContains(t, offsetQuery, "(t.created_at, t.id) <")

	token := pagination.EncodeToken(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), 500)
	filter.NextToken = &token
	keysetQuery, keysetArgs, _, defaultOrder, err := buildListQuery(filter)
	require.NoError(t, err)
	assert.True(t, defaultOrder)
	assert.Contains(t, keysetQuery, "(t.created_at, t.id) < ($3, $4)")
	assert.NotContains(t, keysetQuery, "OFFSET")

	// Both modes page over the same row set: identical filter conditions
	// and identical filter args, the cursor only adds a seek bound.
	cut := strings.Index(offsetQuery, " ORDER BY")
	assert.Contains(t, keysetQuery, offsetQuery[:cut])
	assert.Equal(t, offsetArgs[:2], keysetArgs[:2])
	assert.Equal(t, int64(500), keysetArgs[3])
}

func TestBuildListQuery_ExplicitSortFallsBackToOffset(t *testing.T) {
	token := pagination.EncodeToken(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), 500)
	filter := portsrepo.ListTransactionsFilter{SortBy: "amount", SortDesc: true, NextToken: &token, Limit: 10, Page: 3}

	query, args, _, defaultOrder, err := buildListQuery(filter)

	require.NoError(t, err)
	assert.False(t, defaultOrder)
	assert.Contains(t, query, "ORDER BY t.amount DESC, t.id DESC")
	assert.NotContains(t, query, "(t.created_at, t.id) <")
	assert.Contains(t, query, "OFFSET")
	assert.Equal(t, 20, args[len(args)-1]) // (page-1)*limit
}

func TestBuildListQuery_UnknownSortKey(t *testing.T) {
	_, _, _, _, err := buildListQuery(portsrepo.ListTransactionsFilter{SortBy: "sneaky"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
