package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"

	"github.com/swellbound/surfcast/internal/api"
	"github.com/swellbound/surfcast/internal/forecast"
	"github.com/swellbound/surfcast/internal/models"
)

// LocationResolver turns a spot ID into a surf location. The alert store
// satisfies this.
type LocationResolver interface {
	GetLocation(ctx context.Context, id string) (*models.Location, error)
}

// ForecastHandler serves the reconciled hourly forecast for a spot or a raw
// coordinate pair.
type ForecastHandler struct {
	service   forecast.ForecastService
	locations LocationResolver
}

func NewForecastHandler(service forecast.ForecastService, locations LocationResolver) *ForecastHandler {
	return &ForecastHandler{
		service:   service,
		locations: locations,
	}
}

func (h *ForecastHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := request.QueryStringParameters
	log.Info().Msg("Handling forecast request")

	location, errResp, ok := resolveLocation(ctx, params, h.locations)
	if !ok {
		return errResp, nil
	}

	forecasts, err := h.service.GetForecast(ctx, location)
	if err != nil {
		log.Error().Err(err).Str("location_id", location.ID).Msg("Error building forecast")
		return api.Error("Error getting forecast data", http.StatusInternalServerError)
	}

	return api.Success(api.NewForecastResponse(location.ID, forecasts))
}

// resolveLocation maps request parameters to a location: a spotId wins over
// coordinates, and coordinates get a synthetic ID so the cache can key them.
func resolveLocation(ctx context.Context, params map[string]string, locations LocationResolver) (models.Location, events.APIGatewayProxyResponse, bool) {
	if spotID, ok := params["spotId"]; ok {
		if locations == nil {
			resp, _ := api.Error("Spot lookup not available", http.StatusNotImplemented)
			return models.Location{}, resp, false
		}
		location, err := locations.GetLocation(ctx, spotID)
		if err != nil {
			resp, _ := api.Error("Spot not found", http.StatusNotFound)
			return models.Location{}, resp, false
		}
		return *location, events.APIGatewayProxyResponse{}, true
	}

	lat, lon, err := api.ParseCoordinates(params)
	if err != nil {
		var invalidCoordErr api.InvalidCoordinatesError
		if errors.As(err, &invalidCoordErr) || errors.Is(err, api.ErrMissingCoordinates) {
			resp, _ := api.Error(err.Error(), http.StatusBadRequest)
			return models.Location{}, resp, false
		}
		resp, _ := api.Error("Invalid parameters", http.StatusBadRequest)
		return models.Location{}, resp, false
	}

	return models.Location{
		ID:        fmt.Sprintf("%.4f,%.4f", lat, lon),
		Name:      "ad-hoc",
		Latitude:  lat,
		Longitude: lon,
	}, events.APIGatewayProxyResponse{}, true
}
