package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/domain/kpi"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/samber/lo"
)

// InMemoryKPIStore implements kpi.Repository including the natural key constraint
type InMemoryKPIStore struct {
	*InMemoryStore[*kpi.KPI]
}

func NewInMemoryKPIStore() *InMemoryKPIStore {
	return &InMemoryKPIStore{
		InMemoryStore: NewInMemoryStore(copyKPI),
	}
}

func copyKPI(k *kpi.KPI) *kpi.KPI {
	c := *k
	if k.Details != nil {
		c.Details = make(kpi.Details, len(k.Details))
		for name, v := range k.Details {
			c.Details[name] = v
		}
	}
	return &c
}

func (s *InMemoryKPIStore) findByKey(ctx context.Context, key kpi.Key) (*kpi.KPI, bool) {
	found := s.InMemoryStore.List(ctx, func(ctx context.Context, k *kpi.KPI) bool {
		return InTenant(ctx, k) && sameKey(k.Key(), key)
	}, nil)
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

func sameKey(a, b kpi.Key) bool {
	return a.CompanyID == b.CompanyID &&
		a.Category == b.Category &&
		a.Period == b.Period &&
		a.Date.Equal(b.Date)
}

func (s *InMemoryKPIStore) Upsert(ctx context.Context, k *kpi.KPI) error {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return err
	}

	k.TenantID = types.GetTenantID(ctx)
	k.Date = types.StartOfDay(k.Date)

	existing, ok := s.findByKey(ctx, k.Key())
	if !ok {
		if k.ID == "" {
			k.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_KPI)
		}
		return s.InMemoryStore.Create(ctx, k.ID, k)
	}

	k.ID = existing.ID
	k.CreatedAt = existing.CreatedAt
	k.CreatedBy = existing.CreatedBy
	if !k.TargetValue.Valid {
		k.TargetValue = existing.TargetValue
	}
	return s.InMemoryStore.Update(ctx, k.ID, k)
}

func (s *InMemoryKPIStore) CreateMany(ctx context.Context, kpis []*kpi.KPI) error {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return err
	}

	tenantID := types.GetTenantID(ctx)
	for _, k := range kpis {
		k.TenantID = tenantID
		k.Date = types.StartOfDay(k.Date)

		if _, ok := s.findByKey(ctx, k.Key()); ok {
			return ierr.NewError("duplicate kpi natural key").
				WithHint("A KPI with this key already exists").
				WithReportableDetails(map[string]any{
					"category": k.Category,
					"period":   k.Period,
					"date":     types.FormatDate(k.Date),
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		if err := s.InMemoryStore.Create(ctx, k.ID, k); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryKPIStore) Get(ctx context.Context, key kpi.Key) (*kpi.KPI, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, err
	}

	key.Date = types.StartOfDay(key.Date)
	k, ok := s.findByKey(ctx, key)
	if !ok {
		return nil, ierr.NewError("kpi not found").
			WithHint("KPI not found").
			Mark(ierr.ErrNotFound)
	}
	return k, nil
}

func (s *InMemoryKPIStore) GetLatestInWindow(ctx context.Context, companyID string, category types.KPICategory, period types.KPIPeriod, window types.TimeWindow) (*kpi.KPI, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, err
	}

	found := s.InMemoryStore.List(ctx, func(ctx context.Context, k *kpi.KPI) bool {
		return InTenant(ctx, k) &&
			k.CompanyID == companyID &&
			k.Category == category &&
			k.Period == period &&
			window.Contains(k.Date)
	}, func(i, j *kpi.KPI) bool {
		if !i.Date.Equal(j.Date) {
			return i.Date.After(j.Date)
		}
		return i.UpdatedAt.After(j.UpdatedAt)
	})
	if len(found) == 0 {
		return nil, ierr.NewError("kpi not found").
			WithHint("KPI not found").
			Mark(ierr.ErrNotFound)
	}
	return found[0], nil
}

func (s *InMemoryKPIStore) DeleteInWindow(ctx context.Context, companyID string, period types.KPIPeriod, window types.TimeWindow) (int, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return 0, err
	}

	return s.InMemoryStore.DeleteWhere(ctx, func(ctx context.Context, k *kpi.KPI) bool {
		return InTenant(ctx, k) &&
			k.CompanyID == companyID &&
			k.Period == period &&
			window.Contains(k.Date)
	}), nil
}

func (s *InMemoryKPIStore) ListByDate(ctx context.Context, companyID string, period types.KPIPeriod, date time.Time) ([]*kpi.KPI, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, err
	}

	day := types.StartOfDay(date)
	return s.InMemoryStore.List(ctx, func(ctx context.Context, k *kpi.KPI) bool {
		return InTenant(ctx, k) && k.CompanyID == companyID && k.Period == period && k.Date.Equal(day)
	}, func(i, j *kpi.KPI) bool {
		return i.Category < j.Category
	}), nil
}

func (s *InMemoryKPIStore) Stats(ctx context.Context, companyID string) ([]*kpi.PopulationStat, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, err
	}

	rows := s.InMemoryStore.List(ctx, func(ctx context.Context, k *kpi.KPI) bool {
		return InTenant(ctx, k) && k.CompanyID == companyID
	}, nil)

	type group struct {
		category types.KPICategory
		period   types.KPIPeriod
	}
	stats := make(map[group]*kpi.PopulationStat)
	for _, k := range rows {
		g := group{k.Category, k.Period}
		stat, ok := stats[g]
		if !ok {
			stat = &kpi.PopulationStat{Category: k.Category, Period: k.Period}
			stats[g] = stat
		}
		stat.Count++
		if stat.LastPopulatedAt == nil || k.UpdatedAt.After(*stat.LastPopulatedAt) {
			stat.LastPopulatedAt = lo.ToPtr(k.UpdatedAt)
		}
	}

	result := lo.Values(stats)
	sortStats(result)
	return result, nil
}

func sortStats(stats []*kpi.PopulationStat) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Period != stats[j].Period {
			return stats[i].Period < stats[j].Period
		}
		return stats[i].Category < stats[j].Category
	})
}
