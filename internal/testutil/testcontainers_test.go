//go:build integration

package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeDBName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "subtest separators", input: "TestBundles/create ok", expected: "TestBundles_create_ok_"},
		{name: "dots", input: "TestA.b", expected: "TestA_b_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeDBName(tt.input)
			assert.True(t, strings.HasPrefix(got, tt.expected), got)
		})
	}

	long := SanitizeDBName(strings.Repeat("x", 120))
	assert.LessOrEqual(t, len(long), maxDBNameLen+7)
}

func TestGetSharedContainerURI_PanicsWithoutContainer(t *testing.T) {
	assert.Panics(t, func() { GetSharedContainerURI() })
}
