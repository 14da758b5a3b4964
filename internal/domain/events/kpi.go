package events

import (
	"time"

	"github.com/biznesassistant/biznesassistant/internal/types"
)

// KPIPopulated is emitted after a population run has committed
type KPIPopulated struct {
	ID          string            `json:"id"`
	EventName   string            `json:"event_name"`
	TenantID    string            `json:"tenant_id"`
	CompanyID   string            `json:"company_id"`
	Period      types.KPIPeriod   `json:"period"`
	WindowStart string            `json:"window_start"`
	WindowEnd   string            `json:"window_end"`
	Categories  int               `json:"categories_populated"`
	Values      map[string]string `json:"values"`
	Timestamp   time.Time         `json:"timestamp"`
}

func NewKPIPopulated(tenantID, companyID string, period types.KPIPeriod, window types.TimeWindow, values map[string]string, at time.Time) *KPIPopulated {
	return &KPIPopulated{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT),
		EventName:   types.EventKPIPopulated,
		TenantID:    tenantID,
		CompanyID:   companyID,
		Period:      period,
		WindowStart: types.FormatDate(window.Start),
		WindowEnd:   types.FormatDate(window.End),
		Categories:  len(values),
		Values:      values,
		Timestamp:   at.UTC(),
	}
}
