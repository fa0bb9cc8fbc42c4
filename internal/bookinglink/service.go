package bookinglink

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, ownerID string, link *Link) (*Link, error)
	GetByID(ctx context.Context, ownerID, id string) (*Link, error)
	List(ctx context.Context, ownerID string) ([]Link, error)
	Update(ctx context.Context, ownerID string, link *Link) (*Link, error)
	Delete(ctx context.Context, ownerID, id string) error

	// Resolve looks a link up by id or slug without an owner scope.
	// It backs the public slot listing and booking endpoints.
	Resolve(ctx context.Context, idOrSlug string) (*Link, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, ownerID string, link *Link) (*Link, error) {
	link.ID = uuid.NewString()
	link.OwnerID = ownerID
	link.Slug = strings.ToLower(strings.TrimSpace(link.Slug))
	if link.Slug == "" {
		link.Slug = link.ID
	}
	if err := link.validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *service) GetByID(ctx context.Context, ownerID, id string) (*Link, error) {
	link, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if link.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return link, nil
}

func (s *service) List(ctx context.Context, ownerID string) ([]Link, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Update(ctx context.Context, ownerID string, link *Link) (*Link, error) {
	current, err := s.GetByID(ctx, ownerID, link.ID)
	if err != nil {
		return nil, err
	}
	link.OwnerID = current.OwnerID
	link.Slug = strings.ToLower(strings.TrimSpace(link.Slug))
	if link.Slug == "" {
		link.Slug = current.Slug
	}
	if err := link.validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}

func (s *service) Resolve(ctx context.Context, idOrSlug string) (*Link, error) {
	if _, err := uuid.Parse(idOrSlug); err == nil {
		return s.repo.GetByID(ctx, idOrSlug)
	}
	return s.repo.GetBySlug(ctx, strings.ToLower(idOrSlug))
}
