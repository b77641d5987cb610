package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardinalFromDegrees(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		degrees float64
		want    string
	}{
		{name: "due north", degrees: 0, want: "N"},
		{name: "due east", degrees: 90, want: "E"},
		{name: "due south", degrees: 180, want: "S"},
		{name: "due west", degrees: 270, want: "W"},
		{name: "northwest", degrees: 315, want: "NW"},
		{name: "west northwest", degrees: 292.5, want: "WNW"},
		{name: "rounds to nearest point", degrees: 280, want: "W"},
		{name: "wraps past north", degrees: 355, want: "N"},
		{name: "full circle", degrees: 360, want: "N"},
		{name: "beyond full circle", degrees: 450, want: "E"},
		{name: "negative wraps", degrees: -90, want: "W"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CardinalFromDegrees(tt.degrees))
		})
	}
}
