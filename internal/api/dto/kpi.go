package dto

import (
	"time"

	"github.com/biznesassistant/biznesassistant/internal/domain/kpi"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/biznesassistant/biznesassistant/internal/validator"
	"github.com/shopspring/decimal"
)

// GetKPIsRequest selects the period KPIs are computed for
type GetKPIsRequest struct {
	Period types.KPIPeriod `form:"period" json:"period"`
}

func (r *GetKPIsRequest) Validate() error {
	if r.Period == "" {
		r.Period = types.KPIPeriodMonthly
	}
	return r.Period.Validate()
}

// KPIResponse is one computed indicator. Values are floats only here, at the API boundary.
type KPIResponse struct {
	ID            string            `json:"id,omitempty"`
	Category      types.KPICategory `json:"category"`
	Period        types.KPIPeriod   `json:"period"`
	Value         float64           `json:"value"`
	PreviousValue *float64          `json:"previous_value"`
	TargetValue   *float64          `json:"target_value"`
	ChangePercent float64           `json:"change_percent"`
	Date          string            `json:"date"`
}

// NewKPIResponse converts a stored KPI row
func NewKPIResponse(k *kpi.KPI) *KPIResponse {
	resp := &KPIResponse{
		ID:            k.ID,
		Category:      k.Category,
		Period:        k.Period,
		Value:         k.Value.InexactFloat64(),
		PreviousValue: nullFloat(k.PreviousValue),
		TargetValue:   nullFloat(k.TargetValue),
		Date:          types.FormatDate(k.Date),
	}
	if k.PreviousValue.Valid {
		resp.ChangePercent = kpi.Value{Current: k.Value, Previous: k.PreviousValue.Decimal}.ChangePercent()
	}
	return resp
}

func nullFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

// TrendRequest selects the history returned by the trend endpoint
type TrendRequest struct {
	Category   types.KPICategory `uri:"category" json:"category"`
	PeriodType types.KPIPeriod   `form:"period_type" json:"period_type"`
	Months     int               `form:"months" json:"months" validate:"omitempty,min=1"`
}

func (r *TrendRequest) Validate() error {
	if r.PeriodType == "" {
		r.PeriodType = types.KPIPeriodMonthly
	}
	if r.Months == 0 {
		r.Months = types.DefaultTrendMonths
	}
	if err := r.Category.Validate(); err != nil {
		return err
	}
	if err := r.PeriodType.Validate(); err != nil {
		return err
	}
	if r.Months > types.MaxTrendMonths {
		return ierr.NewErrorf("months must be at most %d", types.MaxTrendMonths).
			WithHintf("Trend history is limited to %d months", types.MaxTrendMonths).
			WithReportableDetails(map[string]any{"months": r.Months}).
			Mark(ierr.ErrValidation)
	}
	return validator.ValidateRequest(r)
}

// TrendPoint is one point of a trend or forecast series
type TrendPoint struct {
	Date     string  `json:"date"`
	Value    float64 `json:"value"`
	Forecast bool    `json:"forecast"`
}

type TrendResponse struct {
	Category   types.KPICategory `json:"category"`
	PeriodType types.KPIPeriod   `json:"period_type"`
	TrendData  []TrendPoint      `json:"trend_data"`
}

// ForecastRequest asks for a projection of one category
type ForecastRequest struct {
	KPICategory     types.KPICategory `json:"kpi_category" validate:"required"`
	PeriodType      types.KPIPeriod   `json:"period_type"`
	ForecastPeriods int               `json:"forecast_periods" validate:"omitempty,min=1,max=12"`
}

func (r *ForecastRequest) Validate() error {
	if r.PeriodType == "" {
		r.PeriodType = types.KPIPeriodMonthly
	}
	if r.ForecastPeriods == 0 {
		r.ForecastPeriods = 3
	}
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.KPICategory.Validate(); err != nil {
		return err
	}
	return r.PeriodType.Validate()
}

// ForecastResponse carries history and projection. ConfidenceScore is a 0..100
// goodness-of-fit heuristic, not a statistical confidence interval.
type ForecastResponse struct {
	KPICategory     types.KPICategory `json:"kpi_category"`
	PeriodType      types.KPIPeriod   `json:"period_type"`
	HistoricalData  []TrendPoint      `json:"historical_data"`
	ForecastData    []TrendPoint      `json:"forecast_data"`
	ConfidenceScore float64           `json:"confidence_score"`
	ModelUsed       string            `json:"model_used"`
}

// PopulateRequest selects the period a population run covers
type PopulateRequest struct {
	Period types.KPIPeriod `form:"period" json:"period"`
}

func (r *PopulateRequest) Validate() error {
	if r.Period == "" {
		r.Period = types.KPIPeriodMonthly
	}
	return r.Period.Validate()
}

// PopulatedKPI is the stored result of one category after a population run
type PopulatedKPI struct {
	Value         float64  `json:"value"`
	PreviousValue *float64 `json:"previous_value"`
	TargetValue   float64  `json:"target_value"`
}

type PopulateResponse struct {
	Period              types.KPIPeriod                     `json:"period"`
	WindowStart         string                              `json:"window_start"`
	WindowEnd           string                              `json:"window_end"`
	CategoriesPopulated int                                 `json:"categories_populated"`
	TotalCategories     int                                 `json:"total_categories"`
	Replaced            int                                 `json:"replaced"`
	PopulatedAt         time.Time                           `json:"populated_at"`
	KPIs                map[types.KPICategory]*PopulatedKPI `json:"kpis"`
}

type PopulateAllResponse struct {
	Periods     map[types.KPIPeriod]*PopulateResponse `json:"periods"`
	PopulatedAt time.Time                             `json:"populated_at"`
}

// PopulationStatusResponse summarises stored KPI rows per category and period
type PopulationStatusResponse struct {
	CompanyID string                `json:"company_id"`
	TotalRows int                   `json:"total_rows"`
	Stats     []*kpi.PopulationStat `json:"stats"`
}
