package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePropertyID_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"int", 42},
		{"int64", int64(42)},
		{"whole float (JSON number)", float64(42)},
		{"numeric string", "42"},
		{"canonical string", "properties/42"},
		{"json.Number", json.Number("42")},
		{"string with spaces", "  42  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePropertyID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, "properties/42", got)
		})
	}
}

func TestNormalizePropertyID_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"non-numeric string", "abc"},
		{"canonical prefix with non-numeric", "properties/abc"},
		{"negative int", -1},
		{"zero-value input", nil},
		{"fractional number", 3.5},
		{"boolean", true},
		{"empty string", ""},
		{"bare prefix", "properties/"},
		{"doubled prefix", "properties/properties/42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizePropertyID(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid property ID")
		})
	}
}

func TestNormalize(t *testing.T) {
	in := struct {
		Name        string `json:"name"`
		DisplayName string `json:"displayName,omitempty"`
		Skipped     string `json:"skipped,omitempty"`
	}{Name: "properties/123", DisplayName: "X"}

	out, err := Normalize(in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "properties/123", "displayName": "X"}, out)
}

func TestNormalizeSlice_NilYieldsEmpty(t *testing.T) {
	out, err := NormalizeSlice[struct{}](nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
