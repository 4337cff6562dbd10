package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0750 123 4567", "07501234567"},
		{"+964-750-123-4567", "9647501234567"},
		{"(0750) 1234567", "07501234567"},
		{"07501234567", "07501234567"},
		{"abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), "input %q", tt.in)
	}
}
