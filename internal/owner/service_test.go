package owner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/timezone"
)

type memoryRepo struct {
	owners map[string]*Owner
	hours  map[string]WeeklyHours
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{owners: make(map[string]*Owner), hours: make(map[string]WeeklyHours)}
}

func (r *memoryRepo) Create(_ context.Context, o *Owner) error {
	for _, existing := range r.owners {
		if existing.Email == o.Email {
			return ErrEmailTaken
		}
	}
	o.ID = fmt.Sprintf("owner-%d", len(r.owners)+1)
	r.owners[o.ID] = o
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Owner, error) {
	o, ok := r.owners[id]
	if !ok {
		return nil, ErrNotFound
	}
	return o, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*Owner, error) {
	for _, o := range r.owners {
		if o.Email == email {
			return o, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) Update(_ context.Context, o *Owner) error {
	if _, ok := r.owners[o.ID]; !ok {
		return ErrNotFound
	}
	r.owners[o.ID] = o
	return nil
}

func (r *memoryRepo) GetWorkingHours(_ context.Context, ownerID string) (WeeklyHours, error) {
	return r.hours[ownerID], nil
}

func (r *memoryRepo) ReplaceWorkingHours(_ context.Context, ownerID string, hours WeeklyHours) error {
	r.hours[ownerID] = hours
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type recordingInvalidator struct {
	owners []string
}

func (r *recordingInvalidator) InvalidateOwner(_ context.Context, ownerID string) {
	r.owners = append(r.owners, ownerID)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	newService := func() Service {
		return NewService(newMemoryRepo(), plainHasher{}, &recordingInvalidator{})
	}

	t.Run("success normalizes email", func(t *testing.T) {
		o, err := newService().Register(ctx, RegisterRequest{
			Email:    "  Dana@Example.COM ",
			Password: "supersecret",
			Timezone: "Europe/Berlin",
		})
		require.NoError(t, err)
		assert.Equal(t, "dana@example.com", o.Email)
		assert.NotEmpty(t, o.ID)
	})

	t.Run("email required", func(t *testing.T) {
		_, err := newService().Register(ctx, RegisterRequest{Password: "supersecret", Timezone: "UTC"})
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := newService().Register(ctx, RegisterRequest{Email: "a@b.c", Password: "short", Timezone: "UTC"})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("invalid timezone", func(t *testing.T) {
		_, err := newService().Register(ctx, RegisterRequest{Email: "a@b.c", Password: "supersecret", Timezone: "Moon/Base"})
		assert.ErrorIs(t, err, timezone.ErrInvalidTimezone)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := newService()
		req := RegisterRequest{Email: "a@b.c", Password: "supersecret", Timezone: "UTC"}

		_, err := svc.Register(ctx, req)
		require.NoError(t, err)
		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo(), plainHasher{}, &recordingInvalidator{})

	_, err := svc.Register(ctx, RegisterRequest{Email: "dana@example.com", Password: "supersecret", Timezone: "UTC"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		o, err := svc.Login(ctx, "Dana@Example.com", "supersecret")
		require.NoError(t, err)
		assert.Equal(t, "dana@example.com", o.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "dana@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidLogin)
	})

	t.Run("unknown email maps to invalid login", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@example.com", "supersecret")
		assert.ErrorIs(t, err, ErrInvalidLogin)
	})
}

func TestSetWorkingHours(t *testing.T) {
	ctx := context.Background()
	invalidator := &recordingInvalidator{}
	svc := NewService(newMemoryRepo(), plainHasher{}, invalidator)

	o, err := svc.Register(ctx, RegisterRequest{Email: "dana@example.com", Password: "supersecret", Timezone: "UTC"})
	require.NoError(t, err)

	t.Run("valid hours stored and cache invalidated", func(t *testing.T) {
		err := svc.SetWorkingHours(ctx, o.ID, weekly(time.Monday, "09:00", "17:00"))
		require.NoError(t, err)
		assert.Contains(t, invalidator.owners, o.ID)

		got, err := svc.GetWorkingHours(ctx, o.ID)
		require.NoError(t, err)
		assert.True(t, got[time.Monday].Enabled)
		assert.Equal(t, "09:00", got[time.Monday].Start)
	})

	t.Run("invalid window rejected", func(t *testing.T) {
		err := svc.SetWorkingHours(ctx, o.ID, weekly(time.Monday, "17:00", "09:00"))
		assert.ErrorIs(t, err, ErrInvalidDayWindow)
	})

	t.Run("unknown owner", func(t *testing.T) {
		err := svc.SetWorkingHours(ctx, "ghost", weekly(time.Monday, "09:00", "17:00"))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
