package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	UpsertCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	ListCustomers(ctx context.Context, filter ListFilter) ([]*Customer, error)
}

type ListFilter struct {
	ActiveOnly bool
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name            string
	Phone           string
	WhatsApp        string
	Address         string
	Rate            int64
	DefaultQuantity float64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Customer, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("customer name is required")
	}

	if params.Rate < 0 || params.DefaultQuantity < 0 {
		return nil, fmt.Errorf("rate and default quantity must be non-negative")
	}

	c := &Customer{
		ID:              uuid.New(),
		Name:            params.Name,
		Phone:           params.Phone,
		WhatsApp:        params.WhatsApp,
		Address:         params.Address,
		Rate:            params.Rate,
		DefaultQuantity: params.DefaultQuantity,
		Active:          true,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.UpsertCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Update overwrites the customer record. Rate changes do not touch
// existing delivery entries; those keep the rate snapshotted at save time.
func (s *Service) Update(ctx context.Context, c *Customer) error {
	if c.Rate < 0 || c.DefaultQuantity < 0 {
		return fmt.Errorf("rate and default quantity must be non-negative")
	}

	return s.repo.UpsertCustomer(ctx, c)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx, filter)
}

// ListActive is the customer set every daily sheet works over.
func (s *Service) ListActive(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx, ListFilter{ActiveOnly: true})
}

// Deactivate soft-deletes a customer. Historical entries and transactions
// keep referencing the id.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return err
	}

	c.Active = false

	return s.repo.UpsertCustomer(ctx, c)
}
