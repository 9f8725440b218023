package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ProductID
	}{
		{name: "integer", input: `12`, expected: "12"},
		{name: "integral float", input: `12.0`, expected: "12"},
		{name: "numeric string", input: `"12"`, expected: "12"},
		{name: "padded string", input: `" 12 "`, expected: "12"},
		{name: "opaque string", input: `"sku-9"`, expected: "sku-9"},
		{name: "null", input: `null`, expected: ""},
		{name: "empty string", input: `""`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ProductID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestProductID_UnmarshalJSON_Invalid(t *testing.T) {
	var id ProductID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestProductID_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A ProductID `json:"a"`
		B ProductID `json:"b"`
	}{A: "12", B: "sku-9"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 12, "b": "sku-9"}`, string(out))
}

func TestProductID_IsZero(t *testing.T) {
	assert.True(t, ProductID("").IsZero())
	assert.True(t, ProductID("  ").IsZero())
	assert.False(t, ProductID("0").IsZero())
}
