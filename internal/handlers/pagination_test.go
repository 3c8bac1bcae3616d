package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaginationParamsDefaults(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(50), limit)
}

func TestParsePaginationParams(t *testing.T) {
	page, limit, err := parsePaginationParams("3", "10")
	require.NoError(t, err)
	assert.Equal(t, int64(3), page)
	assert.Equal(t, int64(10), limit)
}

func TestParsePaginationParamsInvalid(t *testing.T) {
	for _, tt := range []struct{ page, limit string }{
		{"0", ""},
		{"-1", "10"},
		{"abc", ""},
		{"1", "0"},
		{"1", "-5"},
		{"1", "ten"},
	} {
		_, _, err := parsePaginationParams(tt.page, tt.limit)
		assert.Error(t, err, "page=%q limit=%q", tt.page, tt.limit)
	}
}
