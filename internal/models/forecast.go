package models

import "time"

// RawModelPoint is one time sample from the gridded wave-model provider,
// before any calibration against observed conditions.
type RawModelPoint struct {
	Timestamp      time.Time `json:"timestamp"`
	WaveHeight     float64   `json:"waveHeight"`
	WavePeriod     float64   `json:"wavePeriod"`
	WindSpeed      float64   `json:"windSpeed"`
	WindDirection  string    `json:"windDirection"`
	SwellDirection float64   `json:"swellDirection"`
	SwellHeight    float64   `json:"swellHeight"`
	SwellPeriod    float64   `json:"swellPeriod"`
}

// ReconciledForecast is one forecast time-point after the model series has
// been calibrated against the nearest buoy observation. Confidence is always
// within [0, 100]; wave and swell heights carry the adjustment factor.
type ReconciledForecast struct {
	Timestamp      time.Time `json:"timestamp" dynamodbav:"timestamp,unixtime"`
	WaveHeight     float64   `json:"waveHeight" dynamodbav:"waveHeight"`
	WavePeriod     float64   `json:"wavePeriod" dynamodbav:"wavePeriod"`
	WindSpeed      float64   `json:"windSpeed" dynamodbav:"windSpeed"`
	WindDirection  string    `json:"windDirection" dynamodbav:"windDirection"`
	SwellDirection float64   `json:"swellDirection" dynamodbav:"swellDirection"`
	SwellHeight    float64   `json:"swellHeight" dynamodbav:"swellHeight"`
	SwellPeriod    float64   `json:"swellPeriod" dynamodbav:"swellPeriod"`
	Confidence     int       `json:"confidence" dynamodbav:"confidence"`
	WaterTemp      *float64  `json:"waterTemp,omitempty" dynamodbav:"waterTemp,omitempty"`
}

// ForecastRecord is a cached forecast series for one location. WrittenAt
// drives the read-time freshness check; TTL is the DynamoDB item expiry.
type ForecastRecord struct {
	LocationID string               `json:"locationId" dynamodbav:"locationId"`
	Forecasts  []ReconciledForecast `json:"forecasts" dynamodbav:"forecasts"`
	WrittenAt  int64                `json:"writtenAt" dynamodbav:"writtenAt"`
	TTL        int64                `json:"ttl" dynamodbav:"ttl"`
}
