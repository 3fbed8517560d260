package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"role":    "staff",
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runValidateToken(authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/user/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	ValidateToken(c)
	return c, w
}

func TestValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("missing header", func(t *testing.T) {
		c, w := runValidateToken("")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, c.IsAborted())
	})

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, "test-secret", time.Now().Add(time.Hour))
		c, _ := runValidateToken("Bearer " + token)
		assert.False(t, c.IsAborted())
		userID, _ := c.Get("user_id")
		assert.Equal(t, "u1", userID)
		role, _ := c.Get("role")
		assert.Equal(t, "staff", role)
	})

	t.Run("bare token without Bearer prefix", func(t *testing.T) {
		token := signToken(t, "test-secret", time.Now().Add(time.Hour))
		c, _ := runValidateToken(token)
		assert.False(t, c.IsAborted())
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, "test-secret", time.Now().Add(-time.Hour))
		c, w := runValidateToken("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, c.IsAborted())
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", time.Now().Add(time.Hour))
		c, w := runValidateToken("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, c.IsAborted())
	})

	t.Run("non-string user_id claim", func(t *testing.T) {
		// validly signed, but user_id is a number; handlers expect a string
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": 42,
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		c, w := runValidateToken("Bearer " + signed)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.True(t, c.IsAborted())
		_, exists := c.Get("user_id")
		assert.False(t, exists)
	})
}

func TestValidateAPIKey(t *testing.T) {
	t.Setenv("POS_API_KEY", "admin-key")

	run := func(key string) (*gin.Context, *httptest.ResponseRecorder) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		if key != "" {
			c.Request.Header.Set("X-API-KEY", key)
		}
		ValidateAPIKey(c)
		return c, w
	}

	c, _ := run("admin-key")
	assert.False(t, c.IsAborted())

	c, w := run("wrong-key")
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = run("")
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
