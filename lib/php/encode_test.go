package php

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"null", nil, "null"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"string", "wp-blocks", "'wp-blocks'"},
		{"string with quote", "it's", `'it\'s'`},
		{"string with backslash", `a\b`, `'a\\b'`},
		{"nil string pointer", (*string)(nil), "null"},
		{"empty list", []string{}, "array()"},
		{"list", []string{"wp-blocks", "wp-i18n"}, "array('wp-blocks', 'wp-i18n')"},
		{"mixed list", []any{"a", 1, nil}, "array('a', 1, null)"},
		{
			"ordered map",
			Map{{Key: "dependencies", Value: []string{"wp-element"}}, {Key: "version", Value: nil}},
			"array('dependencies' => array('wp-element'), 'version' => null)",
		},
		{
			"plain map sorts keys",
			map[string]any{"b": 2, "a": "x"},
			"array('a' => 'x', 'b' => 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMarshalUnsupported(t *testing.T) {
	_, err := Marshal(Map{{Key: "bad", Value: struct{}{}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `key "bad"`)
}
