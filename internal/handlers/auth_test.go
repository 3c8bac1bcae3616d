package handlers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "Passw0rd", ""},
		{"valid long", "Sup3rSecretPhrase", ""},
		{"too short", "Ab1", "Password must be at least 8 characters"},
		{"no uppercase", "password1", "Password must contain uppercase, lowercase, and number"},
		{"no lowercase", "PASSWORD1", "Password must contain uppercase, lowercase, and number"},
		{"no digit", "Passwords", "Password must contain uppercase, lowercase, and number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestIssueToken(t *testing.T) {
	user := models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Mario Rossi",
		Email: "mario@example.com",
		Role:  models.RoleUser,
	}

	signed, err := issueToken(user, "test-secret", time.Hour)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.Hex(), claims["userId"])
	assert.Equal(t, "Mario Rossi", claims["name"])
	assert.Equal(t, "mario@example.com", claims["email"])
	assert.Equal(t, models.RoleUser, claims["role"])
}

func TestSanitizeUserOmitsPassword(t *testing.T) {
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         "Mario Rossi",
		Email:        "mario@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         models.RoleUser,
	}

	data := sanitizeUser(user)

	assert.Equal(t, user.ID.Hex(), data["id"])
	assert.Equal(t, "mario@example.com", data["email"])
	assert.NotContains(t, data, "password")
	assert.NotContains(t, data, "passwordHash")
}
