package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellbound/surfcast/internal/models"
)

func TestSuccess(t *testing.T) {
	tests := []struct {
		name     string
		response interface{}
		wantType string
	}{
		{
			name:     "stations response",
			response: NewStationsResponse([]models.Station{}),
			wantType: "stations",
		},
		{
			name:     "forecast response",
			response: NewForecastResponse("san-pedro", []models.ReconciledForecast{}),
			wantType: "forecast",
		},
		{
			name:     "conditions response",
			response: NewConditionsResponse(&models.CurrentConditions{Source: models.SourceLiveBuoy}),
			wantType: "conditions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Success(tt.response)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, got.StatusCode)

			var resp APIResponse
			err = json.Unmarshal([]byte(got.Body), &resp)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, resp.ResponseType)

			assert.Equal(t, "application/json", got.Headers["Content-Type"])
			assert.Equal(t, "*", got.Headers["Access-Control-Allow-Origin"])
		})
	}
}

func TestError(t *testing.T) {
	got, err := Error("test error", http.StatusBadRequest)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, got.StatusCode)

	var resp ErrorResponse
	err = json.Unmarshal([]byte(got.Body), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.ResponseType)
	assert.Equal(t, "test error", resp.Error)
}

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]string
		wantLat float64
		wantLon float64
		wantErr error
	}{
		{
			name:    "valid coordinates",
			params:  map[string]string{"lat": "33.618", "lon": "-118.317"},
			wantLat: 33.618,
			wantLon: -118.317,
		},
		{
			name:    "missing both",
			params:  map[string]string{},
			wantErr: ErrMissingCoordinates,
		},
		{
			name:    "missing longitude",
			params:  map[string]string{"lat": "33.618"},
			wantErr: ErrMissingCoordinates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, err := ParseCoordinates(tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantLat, lat, 0.0001)
			assert.InDelta(t, tt.wantLon, lon, 0.0001)
		})
	}
}

func TestParseCoordinatesInvalid(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
	}{
		{name: "latitude out of range", params: map[string]string{"lat": "91", "lon": "0"}},
		{name: "longitude out of range", params: map[string]string{"lat": "0", "lon": "181"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseCoordinates(tt.params)
			require.Error(t, err)

			var invalidErr InvalidCoordinatesError
			assert.ErrorAs(t, err, &invalidErr)
		})
	}
}

func TestParseCoordinatesUnparseable(t *testing.T) {
	_, _, err := ParseCoordinates(map[string]string{"lat": "north", "lon": "0"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingCoordinates)
}
