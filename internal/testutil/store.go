package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/samber/lo"
)

// FilterFunc is a generic filter function type
type FilterFunc[T any] func(ctx context.Context, item T) bool

// SortFunc is a generic sort function type
type SortFunc[T any] func(i, j T) bool

// Snapshotter is implemented by stores that can be rolled back by MockPostgresClient
type Snapshotter interface {
	// Snapshot captures the current contents and returns a func that restores them
	Snapshot() (restore func())
}

// InMemoryStore implements a generic in-memory store.
// Items are copied on the way in and out so callers never share state with the store.
type InMemoryStore[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	copy  func(T) T
}

// NewInMemoryStore creates a new InMemoryStore using copyFn to clone items
func NewInMemoryStore[T any](copyFn func(T) T) *InMemoryStore[T] {
	return &InMemoryStore[T]{
		items: make(map[string]T),
		copy:  copyFn,
	}
}

// Create adds a new item to the store
func (s *InMemoryStore[T]) Create(ctx context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return ierr.NewErrorf("item %s already exists", id).
			WithHint("Item already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	s.items[id] = s.copy(item)
	return nil
}

// Get retrieves an item by ID
func (s *InMemoryStore[T]) Get(ctx context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if item, exists := s.items[id]; exists {
		return s.copy(item), nil
	}

	var zero T
	return zero, ierr.NewErrorf("item %s not found", id).
		WithHint("Item not found").
		Mark(ierr.ErrNotFound)
}

// List retrieves the items passing filterFn, ordered by sortFn when given
func (s *InMemoryStore[T]) List(ctx context.Context, filterFn FilterFunc[T], sortFn SortFunc[T]) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0)
	for _, item := range s.items {
		if filterFn == nil || filterFn(ctx, item) {
			result = append(result, s.copy(item))
		}
	}

	if sortFn != nil {
		sort.Slice(result, func(i, j int) bool {
			return sortFn(result[i], result[j])
		})
	}
	return result
}

// Count returns the total number of items matching the filter
func (s *InMemoryStore[T]) Count(ctx context.Context, filterFn FilterFunc[T]) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.items {
		if filterFn == nil || filterFn(ctx, item) {
			count++
		}
	}
	return count
}

// Update replaces an existing item
func (s *InMemoryStore[T]) Update(ctx context.Context, id string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return ierr.NewErrorf("item %s not found", id).
			WithHint("Item not found").
			Mark(ierr.ErrNotFound)
	}

	s.items[id] = s.copy(item)
	return nil
}

// DeleteWhere removes every item passing filterFn and returns how many were removed
func (s *InMemoryStore[T]) DeleteWhere(ctx context.Context, filterFn FilterFunc[T]) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for id, item := range s.items {
		if filterFn(ctx, item) {
			delete(s.items, id)
			deleted++
		}
	}
	return deleted
}

// Clear removes all items from the store
func (s *InMemoryStore[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]T)
}

// Snapshot implements Snapshotter
func (s *InMemoryStore[T]) Snapshot() func() {
	s.mu.RLock()
	saved := make(map[string]T, len(s.items))
	for id, item := range s.items {
		saved[id] = s.copy(item)
	}
	s.mu.RUnlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.items = saved
	}
}

// InTenant reports whether a record belongs to the tenant in ctx
func InTenant(ctx context.Context, item types.TenantScoped) bool {
	return item.GetTenantID() == types.GetTenantID(ctx)
}

// Visible reports whether a record of the company should be returned by queries
func Visible(ctx context.Context, base types.BaseModel, companyID, filterCompanyID string) bool {
	return base.TenantID == types.GetTenantID(ctx) &&
		companyID == filterCompanyID &&
		base.Status != types.StatusDeleted
}

// MatchesCount applies the created-in window and status list of a count filter
func MatchesCount(filter *types.CountFilter, createdAt time.Time, status string, due *time.Time) bool {
	if filter.CreatedIn != nil && !filter.CreatedIn.Contains(createdAt) {
		return false
	}
	if len(filter.Statuses) > 0 && !lo.Contains(filter.Statuses, status) {
		return false
	}
	if filter.DueBefore != nil {
		if due == nil || !due.Before(types.StartOfDay(*filter.DueBefore)) {
			return false
		}
	}
	return true
}
