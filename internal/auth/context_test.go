package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/apperror"
)

func TestGetOwnerID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns the id set by the middleware", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("ownerID", "owner-1")

		id, err := GetOwnerID(c)
		require.NoError(t, err)
		assert.Equal(t, "owner-1", id)
	})

	t.Run("unauthenticated context", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())

		_, err := GetOwnerID(c)
		assert.ErrorIs(t, err, ErrUnauthenticated)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	})

	t.Run("empty id is unauthenticated", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("ownerID", "")

		_, err := GetOwnerID(c)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
