package entry

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=entry
type Repository interface {
	UpsertEntry(ctx context.Context, e *Entry) error
	DeleteEntry(ctx context.Context, id string) error
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)
}

type ListFilter struct {
	Date       *time.Time
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

func (s *Service) Upsert(ctx context.Context, e *Entry) error {
	return s.repo.UpsertEntry(ctx, e)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteEntry(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, filter)
}

// ListForDate returns all persisted entries of one calendar day.
func (s *Service) ListForDate(ctx context.Context, date time.Time) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, ListFilter{Date: &date})
}
