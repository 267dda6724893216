package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("KEY", "test-secret")

	token, err := GenerateToken("alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	username, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	t.Setenv("KEY", "test-secret")

	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongKey(t *testing.T) {
	t.Setenv("KEY", "test-secret")
	token, err := GenerateToken("alice")
	assert.NoError(t, err)

	t.Setenv("KEY", "other-secret")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestAuthRequired(t *testing.T) {
	t.Setenv("KEY", "test-secret")
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", AuthRequired, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString("username")})
	})

	// No token
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token
	token, err := GenerateToken("alice")
	assert.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}
