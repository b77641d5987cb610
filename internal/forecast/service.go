package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/swellbound/surfcast/internal/buoy"
	"github.com/swellbound/surfcast/internal/cache"
	"github.com/swellbound/surfcast/internal/models"
	"github.com/swellbound/surfcast/internal/observability/metrics"
	"github.com/swellbound/surfcast/internal/wavemodel"
)

const (
	// Bounds for the model-vs-buoy wave height adjustment factor.
	adjustmentFactorMin = 0.5
	adjustmentFactorMax = 2.0

	// neutralAdjustment applies when no calibration signal is usable.
	neutralAdjustment = 1.0

	// Confidence drops by one step for each full day of forecast lead time.
	confidenceDecayStep  = 10
	confidenceDecayHours = 24
)

// Service reconciles the gridded model forecast with the nearest buoy
// observation into a calibrated series and a current-conditions snapshot.
type Service struct {
	modelClient wavemodel.PointFetcher
	buoyClient  buoy.Reader
	cache       cache.ForecastProvider

	now func() time.Time
}

func NewService(modelClient wavemodel.PointFetcher, buoyClient buoy.Reader, forecastCache cache.ForecastProvider) *Service {
	return &Service{
		modelClient: modelClient,
		buoyClient:  buoyClient,
		cache:       forecastCache,
		now:         time.Now,
	}
}

// GetForecast returns the reconciled series for a location, served from the
// cache while fresh and rebuilt on a miss.
func (s *Service) GetForecast(ctx context.Context, location models.Location) ([]models.ReconciledForecast, error) {
	if s.cache != nil {
		record, err := s.cache.Get(ctx, location.ID)
		if err != nil {
			log.Warn().Err(err).Str("location_id", location.ID).Msg("Forecast cache read failed")
		}
		if record != nil {
			log.Debug().Str("location_id", location.ID).Msg("Cache HIT for forecast")
			return record.Forecasts, nil
		}
		log.Debug().Str("location_id", location.ID).Msg("Cache MISS for forecast")
	}

	forecasts, err := s.BuildForecast(ctx, location)
	if err != nil {
		return nil, err
	}

	// A cancelled build must never leave a partial entry behind.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, location.ID, forecasts); err != nil {
			log.Warn().Err(err).Str("location_id", location.ID).Msg("Forecast cache write failed")
		}
	}

	return forecasts, nil
}

// BuildForecast fetches the model series and the nearest buoy reading
// concurrently and merges them. Forecasts need both signals, so either fetch
// failing fails the build with *CalculationError.
func (s *Service) BuildForecast(ctx context.Context, location models.Location) ([]models.ReconciledForecast, error) {
	if err := location.Validate(); err != nil {
		return nil, fmt.Errorf("validating location: %w", err)
	}

	var (
		points  []models.RawModelPoint
		reading *models.BuoyReading
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		points, err = s.modelClient.FetchPoint(gctx, location, time.Time{})
		if err != nil {
			return fmt.Errorf("fetching model forecast: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		reading, err = s.buoyClient.FetchNearest(gctx, location)
		if err != nil {
			return fmt.Errorf("fetching buoy reading: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, NewCalculationError("forecast requires both model and buoy data", err)
	}

	factor := adjustmentFactor(points, reading)
	now := s.now()

	forecasts := make([]models.ReconciledForecast, len(points))
	for i, p := range points {
		forecasts[i] = models.ReconciledForecast{
			Timestamp:      p.Timestamp,
			WaveHeight:     p.WaveHeight * factor,
			WavePeriod:     p.WavePeriod,
			WindSpeed:      p.WindSpeed,
			WindDirection:  p.WindDirection,
			SwellDirection: p.SwellDirection,
			SwellHeight:    p.SwellHeight * factor,
			SwellPeriod:    p.SwellPeriod,
			Confidence:     confidenceAt(now, p.Timestamp),
			WaterTemp:      reading.WaterTemp,
		}
	}

	log.Debug().Str("location_id", location.ID).Float64("adjustment_factor", factor).
		Int("points", len(forecasts)).Msg("Built reconciled forecast")

	return forecasts, nil
}

// BuildCurrentConditions returns a "now" snapshot: the live buoy reading
// when one is reachable, otherwise the model's nearest time-point.
func (s *Service) BuildCurrentConditions(ctx context.Context, location models.Location) (*models.CurrentConditions, error) {
	if err := location.Validate(); err != nil {
		return nil, fmt.Errorf("validating location: %w", err)
	}

	reading, err := s.buoyClient.FetchNearest(ctx, location)
	if err == nil {
		stationID := reading.StationID
		return &models.CurrentConditions{
			Source:        models.SourceLiveBuoy,
			Timestamp:     reading.Timestamp,
			WaveHeight:    reading.WaveHeight,
			WavePeriod:    reading.WavePeriod,
			WindSpeed:     reading.WindSpeed,
			WindDirection: reading.WindDirection,
			StationID:     &stationID,
			WaterTemp:     reading.WaterTemp,
		}, nil
	}

	// Buoy failures are soft: fall back to the model rather than surfacing
	// the error to the caller.
	log.Debug().Err(err).Str("location_id", location.ID).
		Msg("Buoy unavailable, falling back to model conditions")
	metrics.ConditionsFallback()

	points, err := s.modelClient.FetchPoint(ctx, location, time.Time{})
	if err != nil {
		return nil, wavemodel.NewInvalidDataError("no usable conditions source", err)
	}
	if len(points) == 0 {
		return nil, wavemodel.NewInvalidDataError("model returned an empty series", nil)
	}

	p := points[0]
	return &models.CurrentConditions{
		Source:         models.SourceModelFallback,
		Timestamp:      p.Timestamp,
		WaveHeight:     p.WaveHeight,
		WavePeriod:     p.WavePeriod,
		WindSpeed:      p.WindSpeed,
		WindDirection:  p.WindDirection,
		SwellHeight:    &p.SwellHeight,
		SwellPeriod:    &p.SwellPeriod,
		SwellDirection: &p.SwellDirection,
	}, nil
}

// adjustmentFactor derives the multiplicative wave height correction from
// the disagreement between the buoy observation and the model's first point.
// This uses a single pair, not a per-hour bias correction; that is the
// historical behavior and a known accuracy limitation.
func adjustmentFactor(points []models.RawModelPoint, reading *models.BuoyReading) float64 {
	if len(points) == 0 {
		// No model signal to calibrate against.
		return neutralAdjustment
	}
	base := points[0].WaveHeight
	if base <= 0 {
		// A flat or invalid first point would make the ratio meaningless.
		return neutralAdjustment
	}
	return clampFloat(reading.WaveHeight/base, adjustmentFactorMin, adjustmentFactorMax)
}

// confidenceAt decays trust in day-sized steps over forecast lead time,
// never leaving [0, 100].
func confidenceAt(now, pointTime time.Time) int {
	hoursAhead := int(pointTime.Sub(now).Hours())
	if hoursAhead < 0 {
		hoursAhead = 0
	}
	return clampInt(100-(hoursAhead/confidenceDecayHours)*confidenceDecayStep, 0, 100)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
