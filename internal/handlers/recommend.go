package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"psp-advisor/internal/models"
	"psp-advisor/internal/services/recommender"
	"psp-advisor/internal/utils"
)

// RecommendHandler serves POST /recommendations.
type RecommendHandler struct {
	service *recommender.Service
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(service *recommender.Service) *RecommendHandler {
	return &RecommendHandler{service: service}
}

// Handle processes the API Gateway request for a recommendation run.
func (h *RecommendHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    corsHeaders(),
		}, nil
	}

	if request.HTTPMethod != "" && request.HTTPMethod != http.MethodPost {
		return errorResponse(http.StatusMethodNotAllowed, "Use POST")
	}

	profile, err := utils.ParseProfile("request.json", []byte(request.Body))
	if err != nil {
		return errorResponse(http.StatusBadRequest, err.Error())
	}

	if locale := request.QueryStringParameters["locale"]; locale != "" {
		profile.Locale = models.Locale(strings.ToLower(locale))
		if !profile.Locale.IsValid() {
			return errorResponse(http.StatusBadRequest, models.ErrInvalidLocale.Error())
		}
	}

	run, err := h.service.Recommend(ctx, profile)
	if err != nil {
		utils.GetLogger().Error("Recommendation run failed", zap.Error(err))
		return errorResponse(StatusForError(err), "Recommendations are temporarily unavailable")
	}

	return jsonResponse(http.StatusOK, run)
}

// StatusForError maps service errors to HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, recommender.ErrCatalogUnavailable),
		errors.Is(err, recommender.ErrWeightsUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
