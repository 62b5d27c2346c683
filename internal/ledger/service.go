package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/dateutil"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
}

type ListFilter struct {
	Type       *Type
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Type        Type
	Category    string
	Amount      int64
	Date        time.Time
	Description string
	CustomerID  *uuid.UUID
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if params.Type != TypeCredit && params.Type != TypeDebit {
		return nil, fmt.Errorf("invalid transaction type %q", params.Type)
	}

	if params.Amount < 0 {
		return nil, fmt.Errorf("transaction amount must be non-negative")
	}

	category := params.Category
	if category == "" {
		category = CategoryOther
	}

	tx := &Transaction{
		ID:          uuid.New(),
		Type:        params.Type,
		Category:    category,
		Amount:      params.Amount,
		Date:        dateutil.Day(params.Date),
		Description: params.Description,
		CustomerID:  params.CustomerID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// ListForMonth returns the month's transactions, both directions.
func (s *Service) ListForMonth(ctx context.Context, month time.Time) ([]*Transaction, error) {
	start, end := dateutil.MonthInterval(month)

	return s.repo.ListTransactions(ctx, ListFilter{StartDate: &start, EndDate: &end})
}
