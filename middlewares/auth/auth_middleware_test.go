package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityRouter() (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)

	var seen uuid.UUID
	r := gin.New()
	r.Use(GatewayIdentity())
	r.GET("/whoami", func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "identity missing from context"})
			return
		}
		seen = id
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r, &seen
}

func TestGatewayIdentityRejectsMissingHeader(t *testing.T) {
	r, _ := identityRouter()

	req, err := http.NewRequest(http.MethodGet, "/whoami", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing caller identity")
}

func TestGatewayIdentityRejectsMalformedHeader(t *testing.T) {
	r, _ := identityRouter()

	req, err := http.NewRequest(http.MethodGet, "/whoami", nil)
	require.NoError(t, err)
	req.Header.Set("X-User-ID", "not-a-uuid")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "malformed caller identity")
}

func TestGatewayIdentityExposesUserID(t *testing.T) {
	r, seen := identityRouter()
	userID := uuid.Must(uuid.NewV7())

	req, err := http.NewRequest(http.MethodGet, "/whoami", nil)
	require.NoError(t, err)
	req.Header.Set("X-User-ID", userID.String())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, *seen)
}

func TestUserIDWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := UserID(c)
	assert.False(t, ok)
}
