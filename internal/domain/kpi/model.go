package kpi

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/shopspring/decimal"
)

// KPI is one stored indicator value. At most one row exists per
// (tenant, company, category, period, date).
type KPI struct {
	ID            string              `db:"id" json:"id"`
	CompanyID     string              `db:"company_id" json:"company_id"`
	Category      types.KPICategory   `db:"category" json:"category"`
	Period        types.KPIPeriod     `db:"period" json:"period"`
	Date          time.Time           `db:"date" json:"date"`
	Value         decimal.Decimal     `db:"value" json:"value"`
	PreviousValue decimal.NullDecimal `db:"previous_value" json:"previous_value"`
	TargetValue   decimal.NullDecimal `db:"target_value" json:"target_value"`
	Details       Details             `db:"details" json:"details,omitempty"`
	types.BaseModel
}

// Key identifies the natural key of a KPI row inside a tenant
type Key struct {
	CompanyID string
	Category  types.KPICategory
	Period    types.KPIPeriod
	Date      time.Time
}

func (k *KPI) Key() Key {
	return Key{
		CompanyID: k.CompanyID,
		Category:  k.Category,
		Period:    k.Period,
		Date:      types.StartOfDay(k.Date),
	}
}

// Details carries the per category breakdown counters, stored as jsonb
type Details map[string]int64

func (d Details) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

func (d *Details) Scan(src interface{}) error {
	if src == nil {
		*d = nil
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported details type %T", src)
	}
	return json.Unmarshal(raw, d)
}

// PopulationStat summarises stored rows for one category and period
type PopulationStat struct {
	Category        types.KPICategory `db:"category" json:"category"`
	Period          types.KPIPeriod   `db:"period" json:"period"`
	Count           int               `db:"count" json:"count"`
	LastPopulatedAt *time.Time        `db:"last_populated_at" json:"last_populated_at,omitempty"`
}
