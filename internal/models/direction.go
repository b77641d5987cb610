package models

import "math"

// cardinalPoints is the 16-point compass rose, ordered clockwise from north.
var cardinalPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CardinalFromDegrees converts a bearing in degrees to the nearest of the 16
// compass points. Each point spans 22.5 degrees centered on its bearing, so
// 348.75..11.25 maps to N, 11.25..33.75 to NNE, and so on.
func CardinalFromDegrees(deg float64) string {
	idx := int(math.Round(deg/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return cardinalPoints[idx]
}
