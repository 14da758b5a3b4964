package types

import (
	"time"

	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/samber/lo"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusSent,
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
		InvoiceStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewErrorf("invalid invoice status: %s", s).
			WithHintf("Invoice status must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

type DealStatus string

const (
	DealStatusOpen DealStatus = "open"
	DealStatusWon  DealStatus = "won"
	DealStatusLost DealStatus = "lost"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) Validate() error {
	allowed := []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusDone}
	if !lo.Contains(allowed, s) {
		return ierr.NewErrorf("invalid task status: %s", s).
			WithHintf("Task status must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// CountFilter narrows a count over one company's records
type CountFilter struct {
	CompanyID string
	// CreatedIn restricts to rows whose created_at falls in the window
	CreatedIn *TimeWindow
	// Statuses restricts to rows in any of the given statuses
	Statuses []string
	// DueBefore restricts to rows with a due date strictly before the given day
	DueBefore *time.Time
}

func NewCountFilter(companyID string, window TimeWindow) *CountFilter {
	return &CountFilter{
		CompanyID: companyID,
		CreatedIn: &window,
	}
}

// WithStatuses returns a copy of the filter restricted to the given statuses
func (f CountFilter) WithStatuses(statuses ...string) *CountFilter {
	f.Statuses = statuses
	return &f
}

// WithDueBefore returns a copy of the filter restricted to rows due before day
func (f CountFilter) WithDueBefore(day time.Time) *CountFilter {
	f.DueBefore = &day
	return &f
}
