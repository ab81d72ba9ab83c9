package stringsx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestTrim_Table(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want string
	}{
		{"nil", nil, ""},
		{"empty", ptr(""), ""},
		{"spaces", ptr(" \n\t "), ""},
		{"padded", ptr("  buy milk  "), "buy milk"},
		{"inner spaces kept", ptr("a  b"), "a  b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Trim(tt.in))
		})
	}
}

func TestOrDefault_And_IsEmpty(t *testing.T) {
	require.Equal(t, "Anonym", OrDefault("", "Anonym"))
	require.Equal(t, "Anonym", OrDefault("   ", "Anonym"))
	require.Equal(t, "Alice", OrDefault("Alice", "Anonym"))
	require.True(t, IsEmpty("   \n\t  "))
	require.False(t, IsEmpty(" x "))
}
