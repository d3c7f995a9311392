package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"scentMatch/domain"
	redisRepo "scentMatch/internal/repository/redis"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type (
	RecommendationHandler struct {
		validate           *validator.Validate
		recommendService   RecommendationService
		experienceService  ExperienceService
		interactionService InteractionService
		sessionReader      SessionReader
	}

	RecommendationService interface {
		Recommend(ctx context.Context, req domain.RecommendationRequest) domain.RecommendationResult
	}

	ExperienceService interface {
		Classify(ctx context.Context, userID uint) (domain.ExperienceProfile, error)
	}

	InteractionService interface {
		SaveInteraction(ctx context.Context, interaction domain.UserInteraction) error
	}

	SessionReader interface {
		GetSession(ctx context.Context, token string) (*domain.RecommendationSession, error)
	}

	InteractionRequest struct {
		FragranceID  uint64 `json:"fragrance_id" validate:"required"`
		EventType    string `json:"event_type" validate:"required,oneof=view like dislike sample_order"`
		SessionToken string `json:"session_token"`
	}
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func NewRecommendationHandler(
	recommendService RecommendationService,
	experienceService ExperienceService,
	interactionService InteractionService,
	sessionReader SessionReader,
) *RecommendationHandler {
	return &RecommendationHandler{
		validate:           validator.New(),
		recommendService:   recommendService,
		experienceService:  experienceService,
		interactionService: interactionService,
		sessionReader:      sessionReader,
	}
}

// POST /api/v1/recommendations
// Anonymous requests are allowed; user_id is set by OptionalAuth when a
// valid bearer token is present.
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	var req domain.RecommendationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if userID, ok := c.Get("user_id").(uint); ok {
		req.UserID = userID
	}

	result := h.recommendService.Recommend(c.Request().Context(), req)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// GET /api/v1/recommendations/experience
func (h *RecommendationHandler) ExperienceProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	profile, err := h.experienceService.Classify(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(profile))
}

// GET /api/v1/recommendations/session/:token
func (h *RecommendationHandler) GetSession(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "token is required"})
	}

	session, err := h.sessionReader.GetSession(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, redisRepo.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(session))
}

// POST /api/v1/recommendations/feedback
func (h *RecommendationHandler) Feedback(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req InteractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	interaction := domain.UserInteraction{
		UserID:          userID,
		FragranceID:     req.FragranceID,
		InteractionType: req.EventType,
		CreatedAt:       time.Now(),
	}
	if req.SessionToken != "" {
		interaction.Context = datatypes.JSONMap{"session_token": req.SessionToken}
	}

	if err := h.interactionService.SaveInteraction(c.Request().Context(), interaction); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("feedback recorded"))
}
