package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swellbound/surfcast/internal/api"
	"github.com/swellbound/surfcast/internal/models"
)

type stubForecastService struct {
	forecasts  []models.ReconciledForecast
	conditions *models.CurrentConditions
	err        error
}

func (s *stubForecastService) GetForecast(_ context.Context, _ models.Location) ([]models.ReconciledForecast, error) {
	return s.forecasts, s.err
}

func (s *stubForecastService) BuildForecast(_ context.Context, _ models.Location) ([]models.ReconciledForecast, error) {
	return s.forecasts, s.err
}

func (s *stubForecastService) BuildCurrentConditions(_ context.Context, _ models.Location) (*models.CurrentConditions, error) {
	return s.conditions, s.err
}

type stubResolver struct {
	locations map[string]models.Location
}

func (s *stubResolver) GetLocation(_ context.Context, id string) (*models.Location, error) {
	location, ok := s.locations[id]
	if !ok {
		return nil, fmt.Errorf("spot not found: %s", id)
	}
	return &location, nil
}

func requestWith(params map[string]string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{QueryStringParameters: params}
}

func TestForecastHandlerByCoordinates(t *testing.T) {
	service := &stubForecastService{
		forecasts: []models.ReconciledForecast{
			{Timestamp: time.Date(2025, 8, 30, 18, 0, 0, 0, time.UTC), WaveHeight: 3.3, Confidence: 100},
		},
	}
	h := NewForecastHandler(service, nil)

	resp, err := h.HandleRequest(context.Background(), requestWith(map[string]string{
		"lat": "33.618", "lon": "-118.317",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.ForecastResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, "forecast", body.ResponseType)
	assert.Equal(t, "33.6180,-118.3170", body.LocationID)
	require.Len(t, body.Forecasts, 1)
	assert.InDelta(t, 3.3, body.Forecasts[0].WaveHeight, 0.0001)
}

func TestForecastHandlerBySpotID(t *testing.T) {
	service := &stubForecastService{forecasts: []models.ReconciledForecast{}}
	resolver := &stubResolver{locations: map[string]models.Location{
		"san-pedro": {ID: "san-pedro", Name: "San Pedro", Latitude: 33.618, Longitude: -118.317},
	}}
	h := NewForecastHandler(service, resolver)

	resp, err := h.HandleRequest(context.Background(), requestWith(map[string]string{"spotId": "san-pedro"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.ForecastResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, "san-pedro", body.LocationID)
}

func TestForecastHandlerUnknownSpot(t *testing.T) {
	h := NewForecastHandler(&stubForecastService{}, &stubResolver{})

	resp, err := h.HandleRequest(context.Background(), requestWith(map[string]string{"spotId": "nowhere"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestForecastHandlerBadParameters(t *testing.T) {
	h := NewForecastHandler(&stubForecastService{}, nil)

	tests := []struct {
		name   string
		params map[string]string
	}{
		{name: "missing coordinates", params: map[string]string{}},
		{name: "out of range", params: map[string]string{"lat": "91", "lon": "0"}},
		{name: "not numeric", params: map[string]string{"lat": "north", "lon": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := h.HandleRequest(context.Background(), requestWith(tt.params))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestForecastHandlerServiceFailure(t *testing.T) {
	h := NewForecastHandler(&stubForecastService{err: fmt.Errorf("upstream down")}, nil)

	resp, err := h.HandleRequest(context.Background(), requestWith(map[string]string{
		"lat": "33.618", "lon": "-118.317",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestConditionsHandler(t *testing.T) {
	stationID := "46222"
	service := &stubForecastService{
		conditions: &models.CurrentConditions{
			Source:        models.SourceLiveBuoy,
			WaveHeight:    2.5,
			WindDirection: "W",
			StationID:     &stationID,
		},
	}
	h := NewConditionsHandler(service, nil)

	resp, err := h.HandleRequest(context.Background(), requestWith(map[string]string{
		"lat": "33.618", "lon": "-118.317",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body api.ConditionsResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, "conditions", body.ResponseType)
	require.NotNil(t, body.Conditions)
	assert.Equal(t, models.SourceLiveBuoy, body.Conditions.Source)
	require.NotNil(t, body.Conditions.StationID)
	assert.Equal(t, "46222", *body.Conditions.StationID)
}

func TestConditionsHandlerServiceFailure(t *testing.T) {
	h := NewConditionsHandler(&stubForecastService{err: fmt.Errorf("no data")}, nil)

	resp, err := h.HandleRequest(context.Background(), requestWith(map[string]string{
		"lat": "33.618", "lon": "-118.317",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
