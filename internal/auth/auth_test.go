package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"popularvideogames/backend/pkg/jwt"
)

var secret = []byte("test-secret")

func router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AuthMiddleware(secret), AdminMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(SubjectKey))
	})
	return r
}

func get(t *testing.T, r http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminRoute(t *testing.T) {
	r := router()

	admin, err := jwt.GenerateToken("ops", jwt.RoleAdmin, secret, time.Hour)
	require.NoError(t, err)
	w := get(t, r, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ops", w.Body.String())

	viewer, err := jwt.GenerateToken("ops", "viewer", secret, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(t, r, viewer).Code)

	assert.Equal(t, http.StatusUnauthorized, get(t, r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(t, r, "garbage").Code)
}

func TestAdminKey(t *testing.T) {
	hash, err := HashAdminKey("letmein")
	require.NoError(t, err)

	assert.True(t, CheckAdminKey(hash, "letmein"))
	assert.False(t, CheckAdminKey(hash, "letmeout"))
	assert.False(t, CheckAdminKey("", ""))
}
