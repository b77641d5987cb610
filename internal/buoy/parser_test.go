package buoy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `#YY  MM DD hh mm WVHT  DPD  WSPD WD   WTMP
#yr  mo dy hr mn m    sec  m/s  degT degC
25   08 30 17 40 4.5  10.0 12.0 270  18.2
25   08 30 16 40 4.2  9.0  11.0 260  18.1
`

func TestParseReport(t *testing.T) {
	t.Parallel()

	reading, err := ParseReport(sampleReport)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 8, 30, 17, 40, 0, 0, time.UTC), reading.Timestamp)
	assert.InDelta(t, 4.5, reading.WaveHeight, 0.0001)
	assert.InDelta(t, 10.0, reading.WavePeriod, 0.0001)
	assert.InDelta(t, 12.0, reading.WindSpeed, 0.0001)
	assert.Equal(t, "W", reading.WindDirection)
	require.NotNil(t, reading.WaterTemp)
	assert.InDelta(t, 18.2, *reading.WaterTemp, 0.0001)
}

func TestParseReportColumnAliases(t *testing.T) {
	t.Parallel()

	// Some stations publish WDIR and a 4-digit year instead of WD and YY.
	report := `#YYYY MM DD hh mm WVHT DPD WSPD WDIR
#yr   mo dy hr mn m    sec m/s  degT
2025  01 02 03 04 1.5  8.0 5.0  90
`
	reading, err := ParseReport(report)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC), reading.Timestamp)
	assert.Equal(t, "E", reading.WindDirection)
	assert.Nil(t, reading.WaterTemp)
}

func TestParseReportUnreadableWaterTemp(t *testing.T) {
	t.Parallel()

	// NDBC uses "MM" for missing measurements; the reading survives without
	// a water temperature.
	report := `#YY MM DD hh mm WVHT DPD WSPD WD WTMP
#yr mo dy hr mn m   sec m/s  degT degC
25  08 30 17 40 2.0 9.0 6.0  180  MM
`
	reading, err := ParseReport(report)
	require.NoError(t, err)
	assert.Nil(t, reading.WaterTemp)
}

func TestParseReportMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty input", raw: ""},
		{name: "header only", raw: "#YY MM DD hh mm WVHT DPD WSPD WD\n"},
		{
			name: "column count mismatch",
			raw:  "#YY MM DD hh mm WVHT DPD WSPD WD\n#yr mo dy hr mn m sec m/s degT\n25 08 30 17 40 4.5 10.0\n",
		},
		{
			name: "missing wave height column",
			raw:  "#YY MM DD hh mm DPD WSPD WD\n#yr mo dy hr mn sec m/s degT\n25 08 30 17 40 10.0 12.0 270\n",
		},
		{
			name: "non-numeric wave height",
			raw:  "#YY MM DD hh mm WVHT DPD WSPD WD\n#yr mo dy hr mn m sec m/s degT\n25 08 30 17 40 MM 10.0 12.0 270\n",
		},
		{
			name: "non-numeric timestamp",
			raw:  "#YY MM DD hh mm WVHT DPD WSPD WD\n#yr mo dy hr mn m sec m/s degT\nxx 08 30 17 40 4.5 10.0 12.0 270\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReport(tt.raw)
			require.Error(t, err)

			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestParseReportUsesMostRecentRow(t *testing.T) {
	t.Parallel()

	reading, err := ParseReport(sampleReport)
	require.NoError(t, err)

	// Data rows are most-recent-first: the 17:40 row wins over 16:40.
	assert.Equal(t, 17, reading.Timestamp.Hour())
	assert.InDelta(t, 4.5, reading.WaveHeight, 0.0001)
}
