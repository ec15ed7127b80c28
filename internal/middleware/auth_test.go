// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/12pranavr/kirana911-backend/internal/utils"
)

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		role, _ := c.Get("user_role")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	r.GET("/owner-only", AuthRequired(), OwnerRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func requestWithToken(t *testing.T, router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("GET", path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	w := requestWithToken(t, authTestRouter(), "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsMalformedHeader(t *testing.T) {
	router := authTestRouter()

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsInvalidToken(t *testing.T) {
	w := requestWithToken(t, authTestRouter(), "/protected", "not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	token, err := utils.GenerateJWT(uuid.New(), "Ravi", "owner", 1)
	require.NoError(t, err)

	w := requestWithToken(t, authTestRouter(), "/protected", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"owner"`)
}

func TestOwnerRequiredBlocksStaff(t *testing.T) {
	router := authTestRouter()

	staffToken, err := utils.GenerateJWT(uuid.New(), "Meena", "staff", 1)
	require.NoError(t, err)
	w := requestWithToken(t, router, "/owner-only", staffToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	ownerToken, err := utils.GenerateJWT(uuid.New(), "Ravi", "owner", 1)
	require.NoError(t, err)
	w = requestWithToken(t, router, "/owner-only", ownerToken)
	assert.Equal(t, http.StatusOK, w.Code)

	adminToken, err := utils.GenerateJWT(uuid.New(), "Admin", "admin", 1)
	require.NoError(t, err)
	w = requestWithToken(t, router, "/owner-only", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
