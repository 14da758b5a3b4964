package service

import (
	"context"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/api/dto"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/forecast"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
)

// TrendService builds monthly history of one category and projects it forward
type TrendService interface {
	GenerateTrend(ctx context.Context, companyID string, category types.KPICategory, periodType types.KPIPeriod, periods int) (*dto.TrendResponse, error)
	Forecast(ctx context.Context, companyID string, req dto.ForecastRequest) (*dto.ForecastResponse, error)
}

type trendService struct {
	ServiceParams
}

func NewTrendService(params ServiceParams) TrendService {
	return &trendService{
		ServiceParams: params,
	}
}

func (s *trendService) bucketMode() types.TrendBucketMode {
	if s.Config == nil || s.Config.KPI.TrendBucketMode == "" {
		return types.TrendBucketCalendar
	}
	return s.Config.KPI.TrendBucketMode
}

func monthlyOnly(periodType types.KPIPeriod) error {
	if periodType == types.KPIPeriodMonthly {
		return nil
	}
	if err := periodType.Validate(); err != nil {
		return err
	}
	return ierr.NewErrorf("period type %s is not supported for trends", periodType).
		WithHint("Only monthly trends are supported").
		WithReportableDetails(map[string]any{
			"period_type": periodType,
			"supported":   []types.KPIPeriod{types.KPIPeriodMonthly},
		}).
		Mark(ierr.ErrNotSupported)
}

func (s *trendService) GenerateTrend(ctx context.Context, companyID string, category types.KPICategory, periodType types.KPIPeriod, periods int) (*dto.TrendResponse, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if err := monthlyOnly(periodType); err != nil {
		return nil, err
	}

	buckets, err := types.MonthlyBuckets(s.now(), periods, s.bucketMode())
	if err != nil {
		return nil, err
	}

	started := time.Now()
	points := make([]dto.TrendPoint, len(buckets))

	wp := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(s.aggregationWorkers(ctx))

	for i, bucket := range buckets {
		wp.Go(func(ctx context.Context) error {
			value, err := s.categoryValue(ctx, companyID, category, bucket)
			if err != nil {
				return err
			}
			points[i] = dto.TrendPoint{
				Date:  types.FormatDate(bucket.Start),
				Value: value.InexactFloat64(),
			}
			return nil
		})
	}

	if err := wp.Wait(); err != nil {
		return nil, err
	}

	if s.Metrics != nil {
		s.Metrics.ObserveTrend(string(category), time.Since(started))
	}

	return &dto.TrendResponse{
		Category:   category,
		PeriodType: periodType,
		TrendData:  points,
	}, nil
}

func (s *trendService) Forecast(ctx context.Context, companyID string, req dto.ForecastRequest) (*dto.ForecastResponse, error) {
	resp, err := s.forecast(ctx, companyID, req)
	if s.Metrics != nil {
		s.Metrics.ObserveForecast(string(req.KPICategory), err)
	}
	return resp, err
}

func (s *trendService) forecast(ctx context.Context, companyID string, req dto.ForecastRequest) (*dto.ForecastResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := monthlyOnly(req.PeriodType); err != nil {
		return nil, err
	}

	history, err := s.GenerateTrend(ctx, companyID, req.KPICategory, req.PeriodType, types.DefaultTrendMonths)
	if err != nil {
		return nil, err
	}

	values := lo.Map(history.TrendData, func(p dto.TrendPoint, _ int) float64 {
		return p.Value
	})

	line, err := forecast.Fit(values)
	if err != nil {
		return nil, err
	}

	last, err := types.ParseDate(history.TrendData[len(history.TrendData)-1].Date)
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	projected := line.Predict(req.ForecastPeriods)
	forecastData := make([]dto.TrendPoint, len(projected))
	for i, v := range projected {
		forecastData[i] = dto.TrendPoint{
			Date:     types.FormatDate(types.NextBucketStart(last, i+1, s.bucketMode())),
			Value:    v,
			Forecast: true,
		}
	}

	return &dto.ForecastResponse{
		KPICategory:     req.KPICategory,
		PeriodType:      req.PeriodType,
		HistoricalData:  history.TrendData,
		ForecastData:    forecastData,
		ConfidenceScore: line.Confidence(),
		ModelUsed:       types.ForecastModelLinearRegression,
	}, nil
}
