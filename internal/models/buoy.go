package models

import "time"

// BuoyReading is a single real-time observation parsed from a station's
// realtime2 text report.
type BuoyReading struct {
	StationID     string    `json:"stationId"`
	Timestamp     time.Time `json:"timestamp"`
	WaveHeight    float64   `json:"waveHeight"`
	WavePeriod    float64   `json:"wavePeriod"`
	WindSpeed     float64   `json:"windSpeed"`
	WindDirection string    `json:"windDirection"`
	WaterTemp     *float64  `json:"waterTemp,omitempty"`
}
