package models

import "time"

// ConditionsSource tags which upstream produced a CurrentConditions snapshot.
type ConditionsSource string

const (
	// SourceLiveBuoy means the snapshot came straight from a reporting buoy.
	SourceLiveBuoy ConditionsSource = "LIVE_BUOY"
	// SourceModelFallback means no buoy was reachable and the snapshot is the
	// nearest-time point of the model forecast.
	SourceModelFallback ConditionsSource = "MODEL_FALLBACK"
)

// CurrentConditions is a single "now" snapshot for a location. Fields that
// only one variant can supply are pointers: StationID is set for live buoy
// snapshots, the swell triple for model fallbacks.
type CurrentConditions struct {
	Source         ConditionsSource `json:"source"`
	Timestamp      time.Time        `json:"timestamp"`
	WaveHeight     float64          `json:"waveHeight"`
	WavePeriod     float64          `json:"wavePeriod"`
	WindSpeed      float64          `json:"windSpeed"`
	WindDirection  string           `json:"windDirection"`
	StationID      *string          `json:"stationId,omitempty"`
	SwellHeight    *float64         `json:"swellHeight,omitempty"`
	SwellPeriod    *float64         `json:"swellPeriod,omitempty"`
	SwellDirection *float64         `json:"swellDirection,omitempty"`
	WaterTemp      *float64         `json:"waterTemp,omitempty"`
}

// IsLive reports whether the snapshot was sourced from a real observation
// rather than the model fallback.
func (c CurrentConditions) IsLive() bool {
	return c.Source == SourceLiveBuoy
}
