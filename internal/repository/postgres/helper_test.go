package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountQuery(t *testing.T) {
	ctx := types.SetTenantID(context.Background(), "tenant_a")
	window := types.NewTimeWindow(
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	)

	t.Run("window only", func(t *testing.T) {
		query, args := countQuery(ctx, "contacts", "", "", types.NewCountFilter("comp_1", window))
		assert.Equal(t,
			"SELECT COUNT(*) FROM contacts WHERE tenant_id = $1 AND company_id = $2 AND status <> $3 AND created_at >= $4 AND created_at < $5",
			query)
		require.Len(t, args, 5)
		assert.Equal(t, "tenant_a", args[0])
		assert.Equal(t, "comp_1", args[1])
		assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), args[4])
	})

	t.Run("statuses and due date", func(t *testing.T) {
		filter := types.NewCountFilter("comp_1", window).
			WithStatuses(string(types.InvoiceStatusSent)).
			WithDueBefore(time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC))
		query, args := countQuery(ctx, "invoices", "invoice_status", "due_date", filter)
		assert.Equal(t,
			"SELECT COUNT(*) FROM invoices WHERE tenant_id = $1 AND company_id = $2 AND status <> $3 AND created_at >= $4 AND created_at < $5 AND invoice_status = ANY($6) AND due_date < $7",
			query)
		require.Len(t, args, 7)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), args[6])
	})

	t.Run("no window", func(t *testing.T) {
		query, args := countQuery(ctx, "deals", "deal_status", "", &types.CountFilter{CompanyID: "comp_1"})
		assert.Equal(t, "SELECT COUNT(*) FROM deals WHERE tenant_id = $1 AND company_id = $2 AND status <> $3", query)
		assert.Len(t, args, 3)
	})
}

func TestWrapError(t *testing.T) {
	assert.True(t, ierr.IsNotFound(wrapError(sql.ErrNoRows, "KPI", "Failed", nil)))
	assert.True(t, ierr.IsAlreadyExists(wrapError(&pq.Error{Code: uniqueViolation}, "KPI", "Failed", nil)))
	assert.True(t, ierr.IsDatabase(wrapError(assert.AnError, "KPI", "Failed", nil)))
}
