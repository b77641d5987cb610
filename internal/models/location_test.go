package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		location Location
		wantErr  bool
	}{
		{name: "valid", location: Location{Latitude: 33.618, Longitude: -118.317}},
		{name: "latitude boundary", location: Location{Latitude: 90, Longitude: 180}},
		{name: "latitude too high", location: Location{Latitude: 90.1, Longitude: 0}, wantErr: true},
		{name: "latitude too low", location: Location{Latitude: -90.1, Longitude: 0}, wantErr: true},
		{name: "longitude too high", location: Location{Latitude: 0, Longitude: 180.1}, wantErr: true},
		{name: "longitude too low", location: Location{Latitude: 0, Longitude: -180.1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.location.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPrefersWindDirection(t *testing.T) {
	t.Parallel()

	rule := AlertRule{PreferredWindDirections: []string{"W", "NW"}}

	assert.True(t, rule.PrefersWindDirection("W"))
	assert.True(t, rule.PrefersWindDirection("NW"))
	assert.False(t, rule.PrefersWindDirection("E"))

	// An empty preference list is a wildcard.
	wildcard := AlertRule{}
	assert.True(t, wildcard.PrefersWindDirection("SSE"))
}

func TestCurrentConditionsIsLive(t *testing.T) {
	t.Parallel()

	assert.True(t, CurrentConditions{Source: SourceLiveBuoy}.IsLive())
	assert.False(t, CurrentConditions{Source: SourceModelFallback}.IsLive())
}
