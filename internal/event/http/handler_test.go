package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/event"
)

type stubService struct {
	events []*event.Event
	total  int
}

func (s *stubService) Create(context.Context, string, event.CreateRequest) (*event.Event, error) {
	return nil, event.ErrNotFound
}

func (s *stubService) GetByID(context.Context, string, string) (*event.Event, error) {
	return nil, event.ErrNotFound
}

func (s *stubService) List(context.Context, string, event.Filter) ([]*event.Event, int, error) {
	return s.events, s.total, nil
}

func (s *stubService) Update(context.Context, string, string, event.UpdateRequest) (*event.Event, error) {
	return nil, event.ErrNotFound
}

func (s *stubService) Cancel(context.Context, string, string) error {
	return event.ErrNotFound
}

func TestListHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	start := time.Date(2026, time.March, 2, 14, 0, 0, 0, time.UTC)

	newContext := func(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
		t.Helper()
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Set("ownerID", "owner-1")
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		return c, rec
	}

	t.Run("renders events with paging metadata", func(t *testing.T) {
		handler := NewHandler(&stubService{
			events: []*event.Event{
				{ID: "evt-1", Title: "Standup", StartUTC: start, EndUTC: start.Add(30 * time.Minute)},
				{ID: "evt-2", Title: "Review", StartUTC: start.Add(time.Hour), EndUTC: start.Add(90 * time.Minute)},
			},
			total: 42,
		})
		c, rec := newContext(t, "/events?page=2&page_size=2")

		handler.List(c)

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Items    []EventResponse `json:"items"`
			Page     int             `json:"page"`
			PageSize int             `json:"page_size"`
			Total    int             `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Items, 2)
		assert.Equal(t, "evt-1", body.Items[0].ID)
		assert.Equal(t, "evt-2", body.Items[1].ID)
		assert.Equal(t, 2, body.Page)
		assert.Equal(t, 2, body.PageSize)
		assert.Equal(t, 42, body.Total)
	})

	t.Run("empty list renders an empty items array", func(t *testing.T) {
		handler := NewHandler(&stubService{})
		c, rec := newContext(t, "/events")

		handler.List(c)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"items":[]`)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		handler := NewHandler(&stubService{})
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/events", nil)

		handler.List(c)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
