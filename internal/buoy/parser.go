package buoy

import (
	"strconv"
	"strings"
	"time"

	"github.com/swellbound/surfcast/internal/models"
)

// ParseReport parses an NDBC realtime2 station report: a header line of
// column names, a units line, then data rows most-recent-first. Only the
// first data row is read. It is a pure function of its input.
func ParseReport(raw string) (*models.BuoyReading, error) {
	lines := splitLines(raw)
	if len(lines) < 3 {
		return nil, newParseError("expected header, units and at least one data row, got %d lines", len(lines))
	}

	header := strings.Fields(strings.TrimPrefix(lines[0], "#"))
	row := strings.Fields(lines[2])
	if len(header) != len(row) {
		return nil, newParseError("header has %d columns, data row has %d", len(header), len(row))
	}

	values := make(map[string]string, len(header))
	for i, name := range header {
		values[name] = row[i]
	}

	ts, err := parseTimestamp(values)
	if err != nil {
		return nil, err
	}

	waveHeight, err := requiredFloat(values, "WVHT")
	if err != nil {
		return nil, err
	}
	wavePeriod, err := requiredFloat(values, "DPD")
	if err != nil {
		return nil, err
	}
	windSpeed, err := requiredFloat(values, "WSPD")
	if err != nil {
		return nil, err
	}
	windDeg, err := requiredFloat(values, "WD", "WDIR")
	if err != nil {
		return nil, err
	}

	reading := &models.BuoyReading{
		Timestamp:     ts,
		WaveHeight:    waveHeight,
		WavePeriod:    wavePeriod,
		WindSpeed:     windSpeed,
		WindDirection: models.CardinalFromDegrees(windDeg),
	}

	// Water temperature is optional; a missing or unreadable value is
	// simply omitted rather than failing the whole report.
	if raw, ok := values["WTMP"]; ok {
		if temp, err := strconv.ParseFloat(raw, 64); err == nil {
			reading.WaterTemp = &temp
		}
	}

	return reading, nil
}

func parseTimestamp(values map[string]string) (time.Time, error) {
	year, err := requiredInt(values, "YY", "YYYY")
	if err != nil {
		return time.Time{}, err
	}
	// Reports carry a 2-digit year; some stations publish 4 digits.
	if year < 100 {
		year += 2000
	}

	month, err := requiredInt(values, "MM")
	if err != nil {
		return time.Time{}, err
	}
	day, err := requiredInt(values, "DD")
	if err != nil {
		return time.Time{}, err
	}
	hour, err := requiredInt(values, "hh")
	if err != nil {
		return time.Time{}, err
	}
	minute, err := requiredInt(values, "mm")
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), nil
}

func requiredFloat(values map[string]string, names ...string) (float64, error) {
	for _, name := range names {
		raw, ok := values[name]
		if !ok {
			continue
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, newParseError("column %s is not numeric: %q", name, raw)
		}
		return parsed, nil
	}
	return 0, newParseError("missing required column %s", names[0])
}

func requiredInt(values map[string]string, names ...string) (int, error) {
	for _, name := range names {
		raw, ok := values[name]
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, newParseError("column %s is not numeric: %q", name, raw)
		}
		return parsed, nil
	}
	return 0, newParseError("missing required column %s", names[0])
}

func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
