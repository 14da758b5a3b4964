package dto

import (
	"context"
	"time"

	"github.com/biznesassistant/biznesassistant/internal/domain/invoice"
	"github.com/biznesassistant/biznesassistant/internal/domain/task"
	"github.com/biznesassistant/biznesassistant/internal/domain/transaction"
	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/biznesassistant/biznesassistant/internal/types"
	"github.com/biznesassistant/biznesassistant/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest books an income or expense. Type is accepted in any case.
type CreateTransactionRequest struct {
	Type        string          `json:"type" validate:"required"`
	Category    string          `json:"category" validate:"required,max=100"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
	Description string          `json:"description,omitempty" validate:"omitempty,max=500"`
	// Date is YYYY-MM-DD; today when empty
	Date string `json:"date,omitempty"`
}

func (r *CreateTransactionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if !r.Amount.IsPositive() {
		return ierr.NewError("amount must be positive").
			WithHint("Transaction amount must be greater than zero").
			WithReportableDetails(map[string]any{"amount": r.Amount.String()}).
			Mark(ierr.ErrValidation)
	}
	if _, err := types.ParseTransactionType(r.Type); err != nil {
		return err
	}
	if r.Date != "" {
		if _, err := types.ParseDate(r.Date); err != nil {
			return ierr.WithError(err).
				WithHint("Date must be formatted as YYYY-MM-DD").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// ToTransaction canonicalises the type once, here at the boundary
func (r *CreateTransactionRequest) ToTransaction(ctx context.Context, companyID string, now time.Time) *transaction.Transaction {
	txnType, _ := types.ParseTransactionType(r.Type)
	date := types.StartOfDay(now)
	if r.Date != "" {
		date, _ = types.ParseDate(r.Date)
	}

	return &transaction.Transaction{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRANSACTION),
		CompanyID:   companyID,
		Type:        txnType,
		Category:    r.Category,
		Amount:      r.Amount,
		Description: r.Description,
		Date:        date,
		BaseModel:   baseModelAt(ctx, now),
	}
}

type TransactionResponse struct {
	*transaction.Transaction
}

// CreateInvoiceRequest issues an invoice; the number is generated
type CreateInvoiceRequest struct {
	ContactID   *string         `json:"contact_id,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount" swaggertype:"string"`
	IssueDate   string          `json:"issue_date,omitempty"`
	DueDate     string          `json:"due_date" validate:"required"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.TotalAmount.IsNegative() {
		return ierr.NewError("total amount cannot be negative").
			WithHint("Invoice total must not be negative").
			Mark(ierr.ErrValidation)
	}

	due, err := types.ParseDate(r.DueDate)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Due date must be formatted as YYYY-MM-DD").
			Mark(ierr.ErrValidation)
	}
	if r.IssueDate != "" {
		issue, err := types.ParseDate(r.IssueDate)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Issue date must be formatted as YYYY-MM-DD").
				Mark(ierr.ErrValidation)
		}
		if due.Before(issue) {
			return ierr.NewError("due date before issue date").
				WithHint("Due date cannot be before the issue date").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

func (r *CreateInvoiceRequest) ToInvoice(ctx context.Context, companyID string, now time.Time) *invoice.Invoice {
	issue := types.StartOfDay(now)
	if r.IssueDate != "" {
		issue, _ = types.ParseDate(r.IssueDate)
	}
	due, _ := types.ParseDate(r.DueDate)

	return &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		CompanyID:     companyID,
		ContactID:     r.ContactID,
		InvoiceNumber: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE),
		InvoiceStatus: types.InvoiceStatusDraft,
		IssueDate:     issue,
		DueDate:       due,
		TotalAmount:   r.TotalAmount,
		BaseModel:     baseModelAt(ctx, now),
	}
}

type InvoiceResponse struct {
	*invoice.Invoice
}

type CreateTaskRequest struct {
	Title       string             `json:"title" validate:"required,max=255"`
	Description string             `json:"description,omitempty"`
	Priority    types.TaskPriority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	DueDate     string             `json:"due_date,omitempty"`
}

func (r *CreateTaskRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.DueDate != "" {
		if _, err := types.ParseDate(r.DueDate); err != nil {
			return ierr.WithError(err).
				WithHint("Due date must be formatted as YYYY-MM-DD").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

func (r *CreateTaskRequest) ToTask(ctx context.Context, companyID string, now time.Time) *task.Task {
	t := &task.Task{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TASK),
		CompanyID:   companyID,
		Title:       r.Title,
		Description: r.Description,
		TaskStatus:  types.TaskStatusPending,
		Priority:    r.Priority,
		BaseModel:   baseModelAt(ctx, now),
	}
	if t.Priority == "" {
		t.Priority = types.TaskPriorityMedium
	}
	if r.DueDate != "" {
		due, _ := types.ParseDate(r.DueDate)
		t.DueDate = &due
	}
	return t
}

type TaskResponse struct {
	*task.Task
}

// baseModelAt stamps audit fields with the service clock rather than the wall clock
func baseModelAt(ctx context.Context, now time.Time) types.BaseModel {
	base := types.GetDefaultBaseModel(ctx)
	base.CreatedAt = now.UTC()
	base.UpdatedAt = now.UTC()
	return base
}
