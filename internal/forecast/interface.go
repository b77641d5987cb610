package forecast

import (
	"context"

	"github.com/swellbound/surfcast/internal/models"
)

// ForecastService is what the handlers and the alert engine program against.
type ForecastService interface {
	GetForecast(ctx context.Context, location models.Location) ([]models.ReconciledForecast, error)
	BuildForecast(ctx context.Context, location models.Location) ([]models.ReconciledForecast, error)
	BuildCurrentConditions(ctx context.Context, location models.Location) (*models.CurrentConditions, error)
}
