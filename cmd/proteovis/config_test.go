package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceConfigValue(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  any
	}{
		{"store.path", "/data/pv.duckdb", "/data/pv.duckdb"},
		{"verbose", "true", true},
		{"verbose", "off", false},
		{"classify.workers", "8", 8},
	}
	for _, tt := range tests {
		got, err := coerceConfigValue(tt.key, tt.value)
		require.NoError(t, err, "%s=%s", tt.key, tt.value)
		assert.Equal(t, tt.want, got, "%s=%s", tt.key, tt.value)
	}
}

func TestCoerceConfigValue_Rejects(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"no.such.key", "x"},
		{"verbose", "maybe"},
		{"classify.workers", "zero"},
		{"classify.workers", "0"},
		{"classify.workers", "-2"},
	}
	for _, tt := range tests {
		_, err := coerceConfigValue(tt.key, tt.value)
		assert.Error(t, err, "%s=%s", tt.key, tt.value)
	}
}
