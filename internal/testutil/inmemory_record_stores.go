package testutil

import (
	"context"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/domain/contact"
	"github.com/biznesassistant/biznesassistant/internal/domain/deal"
	"github.com/biznesassistant/biznesassistant/internal/domain/invoice"
	"github.com/biznesassistant/biznesassistant/internal/domain/lead"
	"github.com/biznesassistant/biznesassistant/internal/domain/task"
	"github.com/biznesassistant/biznesassistant/internal/domain/transaction"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/shopspring/decimal"
)

func clone[T any](v *T) *T {
	c := *v
	return &c
}

// stamp fills the tenant and audit fields the way the postgres repositories expect callers to
func stamp(ctx context.Context, base *types.BaseModel) error {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return err
	}
	base.TenantID = types.GetTenantID(ctx)
	if base.Status == "" {
		base.Status = types.StatusActive
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = time.Now().UTC()
	}
	if base.UpdatedAt.IsZero() {
		base.UpdatedAt = base.CreatedAt
	}
	return nil
}

type InMemoryTransactionStore struct {
	*InMemoryStore[*transaction.Transaction]
}

func NewInMemoryTransactionStore() *InMemoryTransactionStore {
	return &InMemoryTransactionStore{
		InMemoryStore: NewInMemoryStore(clone[transaction.Transaction]),
	}
}

func (s *InMemoryTransactionStore) Create(ctx context.Context, txn *transaction.Transaction) error {
	if txn == nil {
		return ierr.NewError("transaction cannot be nil").Mark(ierr.ErrValidation)
	}
	if err := stamp(ctx, &txn.BaseModel); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, txn.ID, txn)
}

func (s *InMemoryTransactionStore) Sum(ctx context.Context, companyID string, txnType types.TransactionType, window types.TimeWindow) (decimal.Decimal, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, txn := range s.InMemoryStore.List(ctx, func(ctx context.Context, t *transaction.Transaction) bool {
		return Visible(ctx, t.BaseModel, t.CompanyID, companyID) &&
			t.Type == txnType &&
			window.Contains(t.Date)
	}, nil) {
		total = total.Add(txn.Amount)
	}
	return total, nil
}

func (s *InMemoryTransactionStore) Count(ctx context.Context, filter *types.CountFilter) (int, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return 0, err
	}
	return s.InMemoryStore.Count(ctx, func(ctx context.Context, t *transaction.Transaction) bool {
		return Visible(ctx, t.BaseModel, t.CompanyID, filter.CompanyID) &&
			MatchesCount(filter, t.CreatedAt, "", nil)
	}), nil
}

type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore(clone[invoice.Invoice]),
	}
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").Mark(ierr.ErrValidation)
	}
	if err := stamp(ctx, &inv.BaseModel); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, inv.ID, inv)
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.CountFilter) (int, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return 0, err
	}
	return s.InMemoryStore.Count(ctx, func(ctx context.Context, inv *invoice.Invoice) bool {
		return Visible(ctx, inv.BaseModel, inv.CompanyID, filter.CompanyID) &&
			MatchesCount(filter, inv.CreatedAt, string(inv.InvoiceStatus), &inv.DueDate)
	}), nil
}

type InMemoryContactStore struct {
	*InMemoryStore[*contact.Contact]
}

func NewInMemoryContactStore() *InMemoryContactStore {
	return &InMemoryContactStore{
		InMemoryStore: NewInMemoryStore(clone[contact.Contact]),
	}
}

func (s *InMemoryContactStore) Create(ctx context.Context, c *contact.Contact) error {
	if c == nil {
		return ierr.NewError("contact cannot be nil").Mark(ierr.ErrValidation)
	}
	if err := stamp(ctx, &c.BaseModel); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, c.ID, c)
}

func (s *InMemoryContactStore) Count(ctx context.Context, filter *types.CountFilter) (int, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return 0, err
	}
	return s.InMemoryStore.Count(ctx, func(ctx context.Context, c *contact.Contact) bool {
		return Visible(ctx, c.BaseModel, c.CompanyID, filter.CompanyID) &&
			MatchesCount(filter, c.CreatedAt, "", nil)
	}), nil
}

type InMemoryLeadStore struct {
	*InMemoryStore[*lead.Lead]
}

func NewInMemoryLeadStore() *InMemoryLeadStore {
	return &InMemoryLeadStore{
		InMemoryStore: NewInMemoryStore(clone[lead.Lead]),
	}
}

func (s *InMemoryLeadStore) Create(ctx context.Context, l *lead.Lead) error {
	if l == nil {
		return ierr.NewError("lead cannot be nil").Mark(ierr.ErrValidation)
	}
	if err := stamp(ctx, &l.BaseModel); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, l.ID, l)
}

func (s *InMemoryLeadStore) Count(ctx context.Context, filter *types.CountFilter) (int, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return 0, err
	}
	return s.InMemoryStore.Count(ctx, func(ctx context.Context, l *lead.Lead) bool {
		return Visible(ctx, l.BaseModel, l.CompanyID, filter.CompanyID) &&
			MatchesCount(filter, l.CreatedAt, string(l.LeadStatus), nil)
	}), nil
}

type InMemoryDealStore struct {
	*InMemoryStore[*deal.Deal]
}

func NewInMemoryDealStore() *InMemoryDealStore {
	return &InMemoryDealStore{
		InMemoryStore: NewInMemoryStore(clone[deal.Deal]),
	}
}

func (s *InMemoryDealStore) Create(ctx context.Context, d *deal.Deal) error {
	if d == nil {
		return ierr.NewError("deal cannot be nil").Mark(ierr.ErrValidation)
	}
	if err := stamp(ctx, &d.BaseModel); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, d.ID, d)
}

func (s *InMemoryDealStore) Count(ctx context.Context, filter *types.CountFilter) (int, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return 0, err
	}
	return s.InMemoryStore.Count(ctx, func(ctx context.Context, d *deal.Deal) bool {
		return Visible(ctx, d.BaseModel, d.CompanyID, filter.CompanyID) &&
			MatchesCount(filter, d.CreatedAt, string(d.DealStatus), nil)
	}), nil
}

type InMemoryTaskStore struct {
	*InMemoryStore[*task.Task]
}

func NewInMemoryTaskStore() *InMemoryTaskStore {
	return &InMemoryTaskStore{
		InMemoryStore: NewInMemoryStore(clone[task.Task]),
	}
}

func (s *InMemoryTaskStore) Create(ctx context.Context, t *task.Task) error {
	if t == nil {
		return ierr.NewError("task cannot be nil").Mark(ierr.ErrValidation)
	}
	if err := stamp(ctx, &t.BaseModel); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, t.ID, t)
}

func (s *InMemoryTaskStore) Count(ctx context.Context, filter *types.CountFilter) (int, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return 0, err
	}
	return s.InMemoryStore.Count(ctx, func(ctx context.Context, t *task.Task) bool {
		return Visible(ctx, t.BaseModel, t.CompanyID, filter.CompanyID) &&
			MatchesCount(filter, t.CreatedAt, string(t.TaskStatus), t.DueDate)
	}), nil
}
