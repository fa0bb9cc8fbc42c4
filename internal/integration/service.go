package integration

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	// BeginConnect returns the provider consent URL for the owner.
	BeginConnect(ctx context.Context, ownerID string, provider Provider) (string, error)
	// CompleteConnect exchanges the consent code, stores the
	// integration, and triggers an immediate first sync.
	CompleteConnect(ctx context.Context, ownerID string, provider Provider, code string) (*CalendarIntegration, error)
	List(ctx context.Context, ownerID string) ([]CalendarIntegration, error)
	Disconnect(ctx context.Context, ownerID, id string) error
	Delete(ctx context.Context, ownerID, id string) error
}

type service struct {
	repo   Repository
	google *GoogleFetcher
	syncer *Syncer
}

func NewService(repo Repository, google *GoogleFetcher, syncer *Syncer) Service {
	return &service{repo: repo, google: google, syncer: syncer}
}

func (s *service) BeginConnect(_ context.Context, ownerID string, provider Provider) (string, error) {
	if provider != ProviderGoogle {
		return "", ErrInvalidProvider
	}
	return s.google.AuthCodeURL(ownerID), nil
}

func (s *service) CompleteConnect(ctx context.Context, ownerID string, provider Provider, code string) (*CalendarIntegration, error) {
	if provider != ProviderGoogle {
		return nil, ErrInvalidProvider
	}

	token, err := s.google.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	integ := &CalendarIntegration{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Provider:  provider,
		Connected: true,
		Token:     token,
	}
	if err := s.repo.Create(ctx, integ); err != nil {
		return nil, err
	}

	// First snapshot right away so the new calendar's busy time shows
	// up without waiting for the next tick.
	go s.syncer.SyncAll(context.WithoutCancel(ctx))

	return integ, nil
}

func (s *service) List(ctx context.Context, ownerID string) ([]CalendarIntegration, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Disconnect(ctx context.Context, ownerID, id string) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.SetConnected(ctx, id, false)
}

func (s *service) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}

func (s *service) getOwned(ctx context.Context, ownerID, id string) (*CalendarIntegration, error) {
	integ, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if integ.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return integ, nil
}
