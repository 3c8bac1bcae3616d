package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImageExtension(t *testing.T) {
	for _, name := range []string{"photo.jpg", "photo.JPEG", "photo.png", "photo.webp"} {
		ext, err := validateImageExtension(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, ext)
	}

	for _, name := range []string{"photo.gif", "photo.svg", "photo", "script.sh"} {
		_, err := validateImageExtension(name)
		assert.Error(t, err, name)
	}
}

func TestParseBoolValue(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"false", false, false},
		{"on", true, false},
		{"ON", true, false},
		{"1", true, false},
		{"0", false, false},
		{" true ", true, false},
		{"yes", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		got, err := parseBoolValue(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSafeDeleteUpload(t *testing.T) {
	dir := t.TempDir()

	uploaded := filepath.Join(dir, "uploads", "pizzas")
	require.NoError(t, os.MkdirAll(uploaded, 0o755))
	target := filepath.Join(uploaded, "photo.jpg")
	require.NoError(t, os.WriteFile(target, []byte("img"), 0o644))

	require.NoError(t, safeDeleteUpload(dir, "uploads/pizzas/photo.jpg"))
	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))
}

func TestSafeDeleteUploadMissingFile(t *testing.T) {
	assert.NoError(t, safeDeleteUpload(t.TempDir(), "uploads/pizzas/gone.jpg"))
}

func TestSafeDeleteUploadBlankPath(t *testing.T) {
	assert.NoError(t, safeDeleteUpload(t.TempDir(), "  "))
}

func TestSafeDeleteUploadRefusesNonUploadPaths(t *testing.T) {
	dir := t.TempDir()
	secret := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("keep"), 0o644))

	assert.Error(t, safeDeleteUpload(dir, "secret.txt"))
	assert.Error(t, safeDeleteUpload(dir, "images/pizzas/default.jpg"))
	assert.Error(t, safeDeleteUpload(dir, "../outside.txt"))
	assert.Error(t, safeDeleteUpload(dir, "uploads/../secret.txt"))

	_, err := os.Stat(secret)
	assert.NoError(t, err)
}
