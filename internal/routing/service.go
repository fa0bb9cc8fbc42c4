package routing

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, ownerID string, form *Form) (*Form, error)
	GetByID(ctx context.Context, ownerID, id string) (*Form, error)
	List(ctx context.Context, ownerID string) ([]Form, error)
	Update(ctx context.Context, ownerID string, form *Form) (*Form, error)
	Delete(ctx context.Context, ownerID, id string) error

	// Submit evaluates a visitor's answers against the form and
	// returns exactly one action.
	Submit(ctx context.Context, formID string, answers Answers) (Action, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, ownerID string, form *Form) (*Form, error) {
	form.ID = uuid.NewString()
	form.OwnerID = ownerID
	assignIDs(form)
	if err := form.validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *service) GetByID(ctx context.Context, ownerID, id string) (*Form, error) {
	form, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return form, nil
}

func (s *service) List(ctx context.Context, ownerID string) ([]Form, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Update(ctx context.Context, ownerID string, form *Form) (*Form, error) {
	current, err := s.GetByID(ctx, ownerID, form.ID)
	if err != nil {
		return nil, err
	}
	form.OwnerID = current.OwnerID
	assignIDs(form)
	if err := form.validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}

func (s *service) Submit(ctx context.Context, formID string, answers Answers) (Action, error) {
	form, err := s.repo.GetByID(ctx, formID)
	if err != nil {
		return Action{}, err
	}
	return Decide(form, answers)
}

// assignIDs fills in ids for questions and rules created inline, so
// clients may omit them on create and rule conditions can reference
// client-chosen question ids.
func assignIDs(form *Form) {
	for i := range form.Questions {
		if form.Questions[i].ID == "" {
			form.Questions[i].ID = uuid.NewString()
		}
	}
	for i := range form.Rules {
		if form.Rules[i].ID == "" {
			form.Rules[i].ID = uuid.NewString()
		}
	}
}
