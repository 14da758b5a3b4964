package service

import (
	"context"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/api/dto"
	"github.com/biznesassistant/biznesassistant/internal/domain/events"
	"github.com/biznesassistant/biznesassistant/internal/domain/kpi"
	"github.com/biznesassistant/biznesassistant/internal/domain/tenant"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// KPIPopulatorService stores full period KPI snapshots. A run replaces every row
// of the period window, so repeating it with unchanged data is a no-op.
type KPIPopulatorService interface {
	PopulateAll(ctx context.Context, tenantID, companyID string, period types.KPIPeriod) (*dto.PopulateResponse, error)
	// PopulateAllPeriods runs PopulateAll for every period, one transaction each
	PopulateAllPeriods(ctx context.Context, tenantID, companyID string) (*dto.PopulateAllResponse, error)
	GetPopulationStatus(ctx context.Context, companyID string) (*dto.PopulationStatusResponse, error)
}

type kpiPopulatorService struct {
	ServiceParams
}

func NewKPIPopulatorService(params ServiceParams) KPIPopulatorService {
	return &kpiPopulatorService{
		ServiceParams: params,
	}
}

// scope validates the tenant and company and returns a context bound to the tenant
func (s *kpiPopulatorService) scope(ctx context.Context, tenantID, companyID string) (context.Context, error) {
	t, err := s.TenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, tenant.NewTenantInactiveError(tenantID)
	}

	ctx = types.SetTenantID(ctx, tenantID)
	c, err := s.CompanyRepo.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := ensureOwned(ctx, c, "company", companyID); err != nil {
		return nil, err
	}
	return ctx, nil
}

func (s *kpiPopulatorService) PopulateAll(ctx context.Context, tenantID, companyID string, period types.KPIPeriod) (*dto.PopulateResponse, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	ctx, err := s.scope(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}

	run, err := s.populate(ctx, companyID, period)
	if s.Metrics != nil {
		s.Metrics.ObservePopulation(string(period), len(run.rows), err)
	}
	if err != nil {
		s.Logger.Errorw("kpi population failed",
			"tenant_id", tenantID,
			"company_id", companyID,
			"period", period,
			"error", err)
		return nil, err
	}

	s.publish(ctx, tenantID, companyID, run)

	s.Logger.Infow("kpis populated",
		"tenant_id", tenantID,
		"company_id", companyID,
		"period", period,
		"window", run.window.String(),
		"replaced", run.replaced)

	return run.response(), nil
}

// populationRun is the committed outcome of one period
type populationRun struct {
	period   types.KPIPeriod
	window   types.TimeWindow
	rows     []*kpi.KPI
	replaced int
	at       time.Time
}

func (r populationRun) response() *dto.PopulateResponse {
	resp := &dto.PopulateResponse{
		Period:              r.period,
		WindowStart:         types.FormatDate(r.window.Start),
		WindowEnd:           types.FormatDate(r.window.End),
		CategoriesPopulated: len(r.rows),
		TotalCategories:     len(types.KPICategories),
		Replaced:            r.replaced,
		PopulatedAt:         r.at,
		KPIs:                make(map[types.KPICategory]*dto.PopulatedKPI, len(r.rows)),
	}
	for _, row := range r.rows {
		resp.KPIs[row.Category] = &dto.PopulatedKPI{
			Value:         row.Value.InexactFloat64(),
			PreviousValue: nullableFloat(row.PreviousValue),
			TargetValue:   row.TargetValue.Decimal.InexactFloat64(),
		}
	}
	return resp
}

func (s *kpiPopulatorService) populate(ctx context.Context, companyID string, period types.KPIPeriod) (populationRun, error) {
	now := s.now()
	run := populationRun{period: period, at: now}

	window, err := types.PeriodWindow(period, now)
	if err != nil {
		return run, err
	}
	prior, err := types.PriorPeriodWindow(period, now)
	if err != nil {
		return run, err
	}
	run.window = window

	current, err := s.aggregate(ctx, companyID, window)
	if err != nil {
		return run, err
	}
	details, err := s.breakdown(ctx, companyID, window, now)
	if err != nil {
		return run, err
	}

	var (
		rows     []*kpi.KPI
		replaced int
	)
	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		previous, err := s.storedValues(txCtx, companyID, period, prior)
		if err != nil {
			return err
		}

		replaced, err = s.KPIRepo.DeleteInWindow(txCtx, companyID, period, window)
		if err != nil {
			return err
		}

		rows = lo.Map(types.KPICategories, func(c types.KPICategory, _ int) *kpi.KPI {
			base := types.GetDefaultBaseModel(txCtx)
			base.CreatedAt = now
			base.UpdatedAt = now
			return &kpi.KPI{
				ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_KPI),
				CompanyID:     companyID,
				Category:      c,
				Period:        period,
				Date:          window.Start,
				Value:         current.ValueOf(c),
				PreviousValue: previous[c],
				TargetValue:   decimal.NewNullDecimal(kpi.TargetFor(previous[c])),
				Details:       details[c],
				BaseModel:     base,
			}
		})

		return s.KPIRepo.CreateMany(txCtx, rows)
	})
	if err != nil {
		return run, err
	}

	run.rows = rows
	run.replaced = replaced
	return run, nil
}

// storedValues reads, per category, the latest value stored anywhere inside the prior window
func (s *kpiPopulatorService) storedValues(ctx context.Context, companyID string, period types.KPIPeriod, prior types.TimeWindow) (map[types.KPICategory]decimal.NullDecimal, error) {
	values := make(map[types.KPICategory]decimal.NullDecimal, len(types.KPICategories))
	for _, c := range types.KPICategories {
		stored, err := s.KPIRepo.GetLatestInWindow(ctx, companyID, c, period, prior)
		if err != nil {
			if ierr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		values[c] = decimal.NewNullDecimal(stored.Value)
	}
	return values, nil
}

// publish announces a committed run. Failures are logged, the run already succeeded.
func (s *kpiPopulatorService) publish(ctx context.Context, tenantID, companyID string, run populationRun) {
	if s.EventPublisher == nil {
		return
	}

	values := make(map[string]string, len(run.rows))
	for _, row := range run.rows {
		values[string(row.Category)] = row.Value.String()
	}

	event := events.NewKPIPopulated(tenantID, companyID, run.period, run.window, values, run.at)
	if err := s.EventPublisher.PublishKPIPopulated(ctx, event); err != nil {
		s.Logger.Errorw("failed to publish kpi populated event",
			"tenant_id", tenantID,
			"company_id", companyID,
			"period", run.period,
			"event_id", event.ID,
			"error", err)
	}
}

func (s *kpiPopulatorService) PopulateAllPeriods(ctx context.Context, tenantID, companyID string) (*dto.PopulateAllResponse, error) {
	result := &dto.PopulateAllResponse{
		Periods:     make(map[types.KPIPeriod]*dto.PopulateResponse, len(types.KPIPeriods)),
		PopulatedAt: s.now(),
	}

	for _, period := range types.KPIPeriods {
		resp, err := s.PopulateAll(ctx, tenantID, companyID, period)
		if err != nil {
			return nil, ierr.WithError(err).
				WithReportableDetails(map[string]any{
					"failed_period":    period,
					"completed_periods": lo.Keys(result.Periods),
				}).
				Error()
		}
		result.Periods[period] = resp
	}
	return result, nil
}

func (s *kpiPopulatorService) GetPopulationStatus(ctx context.Context, companyID string) (*dto.PopulationStatusResponse, error) {
	stats, err := s.KPIRepo.Stats(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return &dto.PopulationStatusResponse{
		CompanyID: companyID,
		TotalRows: lo.SumBy(stats, func(st *kpi.PopulationStat) int { return st.Count }),
		Stats:     stats,
	}, nil
}

func nullableFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}
