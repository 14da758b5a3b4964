package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/getsentry/sentry-go"
	"github.com/lib/pq"
)

// StartRepositorySpan creates a new span for a repository operation
// Returns nil if Sentry is not available in the context
func StartRepositorySpan(ctx context.Context, repository, operation string, params map[string]interface{}) *sentry.Span {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		return nil
	}

	span := sentry.StartSpan(ctx, "repository."+repository+"."+operation)
	if span != nil {
		span.Description = "repository." + repository + "." + operation
		span.Op = "db.postgres"

		span.SetData("repository", repository)
		span.SetData("operation", operation)
		for k, v := range params {
			span.SetData(k, v)
		}
	}

	return span
}

// FinishSpan safely finishes a span, handling nil spans
func FinishSpan(span *sentry.Span) {
	if span != nil {
		span.Finish()
	}
}

// SetSpanError marks a span as failed and adds error information
func SetSpanError(span *sentry.Span, err error) {
	if span == nil || err == nil {
		return
	}

	span.Status = sentry.SpanStatusInternalError
	span.SetData("error", err.Error())
}

// SetSpanSuccess marks a span as successful
func SetSpanSuccess(span *sentry.Span) {
	if span != nil {
		span.Status = sentry.SpanStatusOK
	}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// wrapError maps a driver error onto the error taxonomy
func wrapError(err error, entity, hint string, details map[string]interface{}) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ierr.WithError(err).
			WithHintf("%s not found", entity).
			WithReportableDetails(details).
			Mark(ierr.ErrNotFound)
	case isUniqueViolation(err):
		return ierr.WithError(err).
			WithHintf("%s already exists", entity).
			WithReportableDetails(details).
			Mark(ierr.ErrAlreadyExists)
	default:
		return ierr.WithError(err).
			WithHint(hint).
			WithReportableDetails(details).
			Mark(ierr.ErrDatabase)
	}
}

// countQuery builds a tenant scoped count over one record table.
// statusColumn and dueColumn may be empty when the table has no such column.
func countQuery(ctx context.Context, table, statusColumn, dueColumn string, filter *types.CountFilter) (string, []interface{}) {
	args := []interface{}{types.GetTenantID(ctx), filter.CompanyID, types.StatusDeleted}
	conds := []string{"tenant_id = $1", "company_id = $2", "status <> $3"}

	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CreatedIn != nil {
		conds = append(conds, "created_at >= "+next(filter.CreatedIn.Start))
		conds = append(conds, "created_at < "+next(filter.CreatedIn.Until()))
	}
	if len(filter.Statuses) > 0 && statusColumn != "" {
		conds = append(conds, statusColumn+" = ANY("+next(pq.Array(filter.Statuses))+")")
	}
	if filter.DueBefore != nil && dueColumn != "" {
		conds = append(conds, dueColumn+" < "+next(types.StartOfDay(*filter.DueBefore)))
	}

	return "SELECT COUNT(*) FROM " + table + " WHERE " + strings.Join(conds, " AND "), args
}
