package service

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/api/dto"
	"github.com/biznesassistant/biznesassistant/internal/types"
)

// RecordService creates the quota bound business records. Every create is
// checked against the tenant's monthly limit first.
type RecordService interface {
	CreateTransaction(ctx context.Context, companyID string, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	CreateTask(ctx context.Context, companyID string, req dto.CreateTaskRequest) (*dto.TaskResponse, error)
}

type recordService struct {
	ServiceParams
	usage UsageService
}

func NewRecordService(params ServiceParams, usage UsageService) RecordService {
	return &recordService{
		ServiceParams: params,
		usage:         usage,
	}
}

func (s *recordService) CreateTransaction(ctx context.Context, companyID string, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.usage.EnforceLimit(ctx, companyID, types.UsageResourceTransactions); err != nil {
		return nil, err
	}

	txn := req.ToTransaction(ctx, companyID, s.now())
	if err := s.TransactionRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	s.Logger.Debugw("transaction created",
		"transaction_id", txn.ID,
		"company_id", companyID,
		"type", txn.Type)

	return &dto.TransactionResponse{Transaction: txn}, nil
}

func (s *recordService) CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.usage.EnforceLimit(ctx, companyID, types.UsageResourceInvoices); err != nil {
		return nil, err
	}

	inv := req.ToInvoice(ctx, companyID, s.now())
	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Debugw("invoice created",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"company_id", companyID)

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *recordService) CreateTask(ctx context.Context, companyID string, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.usage.EnforceLimit(ctx, companyID, types.UsageResourceTasks); err != nil {
		return nil, err
	}

	t := req.ToTask(ctx, companyID, s.now())
	if err := s.TaskRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	return &dto.TaskResponse{Task: t}, nil
}
