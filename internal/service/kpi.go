package service

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/api/dto"
	"github.com/biznesassistant/biznesassistant/internal/domain/kpi"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// KPIService computes period to date indicators of a company
type KPIService interface {
	// ComputeKPIs evaluates all categories without touching stored KPI rows
	ComputeKPIs(ctx context.Context, companyID string, period types.KPIPeriod) (*kpi.Snapshot, error)
	// PersistKPIs upserts a snapshot, all categories in one transaction
	PersistKPIs(ctx context.Context, snapshot *kpi.Snapshot) ([]*kpi.KPI, error)
	// CalculateKPIs computes and persists in one call
	CalculateKPIs(ctx context.Context, companyID string, period types.KPIPeriod) ([]*dto.KPIResponse, error)
}

type kpiService struct {
	ServiceParams
}

func NewKPIService(params ServiceParams) KPIService {
	return &kpiService{
		ServiceParams: params,
	}
}

func (s *kpiService) ComputeKPIs(ctx context.Context, companyID string, period types.KPIPeriod) (*kpi.Snapshot, error) {
	window, err := types.KPIWindow(period, s.now())
	if err != nil {
		return nil, err
	}
	previousWindow := types.PreviousKPIWindow(window)

	current, err := s.aggregate(ctx, companyID, window)
	if err != nil {
		return nil, err
	}
	previous, err := s.aggregate(ctx, companyID, previousWindow)
	if err != nil {
		return nil, err
	}

	return &kpi.Snapshot{
		CompanyID:      companyID,
		Period:         period,
		Window:         window,
		PreviousWindow: previousWindow,
		Values:         kpi.Compute(current, previous),
	}, nil
}

func (s *kpiService) PersistKPIs(ctx context.Context, snapshot *kpi.Snapshot) ([]*kpi.KPI, error) {
	now := s.now()
	rows := lo.Map(snapshot.Values, func(v kpi.Value, _ int) *kpi.KPI {
		base := types.GetDefaultBaseModel(ctx)
		base.CreatedAt = now
		base.UpdatedAt = now
		return &kpi.KPI{
			ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_KPI),
			CompanyID:     snapshot.CompanyID,
			Category:      v.Category,
			Period:        snapshot.Period,
			Date:          snapshot.Window.Start,
			Value:         v.Current,
			PreviousValue: decimal.NewNullDecimal(v.Previous),
			BaseModel:     base,
		}
	})

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		for _, row := range rows {
			if err := s.KPIRepo.Upsert(txCtx, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.Logger.Errorw("failed to persist kpis",
			"company_id", snapshot.CompanyID,
			"period", snapshot.Period,
			"error", err)
		return nil, err
	}
	return rows, nil
}

func (s *kpiService) CalculateKPIs(ctx context.Context, companyID string, period types.KPIPeriod) ([]*dto.KPIResponse, error) {
	snapshot, err := s.ComputeKPIs(ctx, companyID, period)
	if err != nil {
		return nil, err
	}

	rows, err := s.PersistKPIs(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	s.Logger.Debugw("kpis calculated",
		"company_id", companyID,
		"period", period,
		"window", snapshot.Window.String())

	return lo.Map(rows, func(k *kpi.KPI, _ int) *dto.KPIResponse {
		return dto.NewKPIResponse(k)
	}), nil
}
