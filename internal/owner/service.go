package owner

import (
	"context"
	"errors"
	"strings"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/auth"
	"github.com/agilityengineers/SmartScheduler-sub007/internal/timezone"
)

type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
	Timezone    string
}

type UpdateRequest struct {
	DisplayName *string
	Timezone    *string
}

// SlotCacheInvalidator drops cached slot computations that rule changes
// make stale. Satisfied by the availability service.
type SlotCacheInvalidator interface {
	InvalidateOwner(ctx context.Context, ownerID string)
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Owner, error)
	Login(ctx context.Context, email, password string) (*Owner, error)
	GetByID(ctx context.Context, id string) (*Owner, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Owner, error)

	GetWorkingHours(ctx context.Context, ownerID string) (WeeklyHours, error)
	SetWorkingHours(ctx context.Context, ownerID string, hours WeeklyHours) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
	slots  SlotCacheInvalidator
}

func NewService(repo Repository, hasher auth.PasswordHasher, slots SlotCacheInvalidator) Service {
	return &service{repo: repo, hasher: hasher, slots: slots}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Owner, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(req.Password) < 8 {
		return nil, ErrPasswordTooShort
	}
	if _, err := timezone.LoadLocation(req.Timezone); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	o := &Owner{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  req.DisplayName,
		Timezone:     req.Timezone,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*Owner, error) {
	o, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidLogin
		}
		return nil, err
	}

	if err := s.hasher.Compare(o.PasswordHash, password); err != nil {
		return nil, ErrInvalidLogin
	}
	return o, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Owner, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Owner, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		o.DisplayName = *req.DisplayName
	}
	if req.Timezone != nil {
		if _, err := timezone.LoadLocation(*req.Timezone); err != nil {
			return nil, err
		}
		o.Timezone = *req.Timezone
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) GetWorkingHours(ctx context.Context, ownerID string) (WeeklyHours, error) {
	if _, err := s.repo.GetByID(ctx, ownerID); err != nil {
		return WeeklyHours{}, err
	}
	return s.repo.GetWorkingHours(ctx, ownerID)
}

func (s *service) SetWorkingHours(ctx context.Context, ownerID string, hours WeeklyHours) error {
	if _, err := s.repo.GetByID(ctx, ownerID); err != nil {
		return err
	}
	if err := hours.Validate(); err != nil {
		return err
	}
	if err := s.repo.ReplaceWorkingHours(ctx, ownerID, hours); err != nil {
		return err
	}
	if s.slots != nil {
		s.slots.InvalidateOwner(ctx, ownerID)
	}
	return nil
}
