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
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func testClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"name":   "Mario Rossi",
		"email":  "mario@example.com",
		"role":   role,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
}

func newGuardedRouter(guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", guard, func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "email": user.Email, "role": user.Role})
	})
	return r
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthGuardMissingToken(t *testing.T) {
	r := newGuardedRouter(UserAuth(testSecret))
	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthGuardMalformedHeader(t *testing.T) {
	r := newGuardedRouter(UserAuth(testSecret))
	for _, header := range []string{"Bearer", "Basic abc", "justatoken"} {
		w := doRequest(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestAuthGuardWrongSecret(t *testing.T) {
	r := newGuardedRouter(UserAuth(testSecret))
	token := signToken(t, testClaims("user"), "other-secret")
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthGuardExpiredToken(t *testing.T) {
	r := newGuardedRouter(UserAuth(testSecret))
	claims := testClaims("user")
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, claims, testSecret)
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthGuardInvalidUserID(t *testing.T) {
	r := newGuardedRouter(UserAuth(testSecret))
	claims := testClaims("user")
	claims["userId"] = "not-an-object-id"
	token := signToken(t, claims, testSecret)
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthGuardValidToken(t *testing.T) {
	r := newGuardedRouter(UserAuth(testSecret))
	token := signToken(t, testClaims("user"), testSecret)
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mario@example.com")
}

func TestAdminAuthRejectsUserRole(t *testing.T) {
	r := newGuardedRouter(AdminAuth(testSecret))
	token := signToken(t, testClaims("user"), testSecret)
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminAuthAcceptsAdminRole(t *testing.T) {
	r := newGuardedRouter(AdminAuth(testSecret))
	token := signToken(t, testClaims("admin"), testSecret)
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserAuthAcceptsAdminRole(t *testing.T) {
	r := newGuardedRouter(UserAuth(testSecret))
	token := signToken(t, testClaims("admin"), testSecret)
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, AuthUser{Role: "admin"}.IsAdmin())
	assert.False(t, AuthUser{Role: "user"}.IsAdmin())
	assert.False(t, AuthUser{}.IsAdmin())
}
