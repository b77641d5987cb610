package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"

	"github.com/swellbound/surfcast/internal/api"
	"github.com/swellbound/surfcast/internal/buoy"
)

// StationsHandler lists the buoy stations nearest a coordinate pair.
type StationsHandler struct {
	buoyClient *buoy.Client
}

func NewStationsHandler(buoyClient *buoy.Client) *StationsHandler {
	return &StationsHandler{
		buoyClient: buoyClient,
	}
}

func (h *StationsHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := request.QueryStringParameters

	lat, lon, err := api.ParseCoordinates(params)
	if err != nil {
		var invalidCoordErr api.InvalidCoordinatesError
		if errors.As(err, &invalidCoordErr) || errors.Is(err, api.ErrMissingCoordinates) {
			return api.Error(err.Error(), http.StatusBadRequest)
		}
		return api.Error("Invalid parameters", http.StatusBadRequest)
	}

	// Default limit to 5 if not specified
	limit := 5
	if limitStr, ok := params["limit"]; ok {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil {
			limit = parsedLimit
		}
	}

	stations, err := h.buoyClient.FindNearestStations(ctx, lat, lon, limit)
	if err != nil {
		return api.Error("Error finding stations", http.StatusInternalServerError)
	}

	return api.Success(api.NewStationsResponse(stations))
}
