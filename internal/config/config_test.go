package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"MONGO_URI", "DB_NAME", "JWT_SECRET", "ACCESS_TOKEN_TTL", "UPLOAD_DIR", "PORT"} {
		t.Setenv(key, "")
	}

	Load()

	assert.Equal(t, "perfetto-pizza", AppEnv.DBName)
	assert.Equal(t, 7*24*time.Hour, AppEnv.AccessTokenTTL)
	assert.Equal(t, "./public", AppEnv.UploadDir)
	assert.Equal(t, "8080", AppEnv.Port)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "pizza-test")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ACCESS_TOKEN_TTL", "24")
	t.Setenv("UPLOAD_DIR", "/tmp/uploads")
	t.Setenv("PORT", "9090")

	Load()

	assert.Equal(t, "mongodb://localhost:27017", AppEnv.MongoURI)
	assert.Equal(t, "pizza-test", AppEnv.DBName)
	assert.Equal(t, "s3cret", AppEnv.JWTSecret)
	assert.Equal(t, 24*time.Hour, AppEnv.AccessTokenTTL)
	assert.Equal(t, "/tmp/uploads", AppEnv.UploadDir)
	assert.Equal(t, "9090", AppEnv.Port)
}

func TestGetDurationEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "soon")
	assert.Equal(t, 7*24*time.Hour, getDurationEnv("ACCESS_TOKEN_TTL", 7*24, time.Hour))

	t.Setenv("ACCESS_TOKEN_TTL", "-3")
	assert.Equal(t, 7*24*time.Hour, getDurationEnv("ACCESS_TOKEN_TTL", 7*24, time.Hour))
}
