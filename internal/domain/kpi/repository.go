package kpi

import (
	"context"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/types"
)

// Repository stores KPI rows of the tenant in ctx
type Repository interface {
	// Upsert inserts or updates by natural key. An existing target value is
	// kept when the incoming row has none.
	Upsert(ctx context.Context, kpi *KPI) error
	// CreateMany inserts fresh rows; callers clear the window first
	CreateMany(ctx context.Context, kpis []*KPI) error
	// Get returns the row for a natural key or a not found error
	Get(ctx context.Context, key Key) (*KPI, error)
	// GetLatestInWindow returns the most recently dated row of a category whose
	// date falls inside the window, or a not found error
	GetLatestInWindow(ctx context.Context, companyID string, category types.KPICategory, period types.KPIPeriod, window types.TimeWindow) (*KPI, error)
	// DeleteInWindow removes every row of the company and period dated inside the window
	DeleteInWindow(ctx context.Context, companyID string, period types.KPIPeriod, window types.TimeWindow) (int, error)
	// ListByDate returns the rows stored for a company, period and date
	ListByDate(ctx context.Context, companyID string, period types.KPIPeriod, date time.Time) ([]*KPI, error)
	// Stats counts rows per category and period with the latest update time
	Stats(ctx context.Context, companyID string) ([]*PopulationStat, error)
}
