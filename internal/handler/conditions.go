package handler

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"

	"github.com/swellbound/surfcast/internal/api"
	"github.com/swellbound/surfcast/internal/forecast"
)

// ConditionsHandler serves the current conditions snapshot, live buoy data
// when the nearest station reports and a model fallback otherwise.
type ConditionsHandler struct {
	service   forecast.ForecastService
	locations LocationResolver
}

func NewConditionsHandler(service forecast.ForecastService, locations LocationResolver) *ConditionsHandler {
	return &ConditionsHandler{
		service:   service,
		locations: locations,
	}
}

func (h *ConditionsHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := request.QueryStringParameters
	log.Info().Msg("Handling conditions request")

	location, errResp, ok := resolveLocation(ctx, params, h.locations)
	if !ok {
		return errResp, nil
	}

	conditions, err := h.service.BuildCurrentConditions(ctx, location)
	if err != nil {
		log.Error().Err(err).Str("location_id", location.ID).Msg("Error building current conditions")
		return api.Error("Error getting current conditions", http.StatusInternalServerError)
	}

	return api.Success(api.NewConditionsResponse(conditions))
}
