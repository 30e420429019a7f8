package rest

import (
	"comicSnap/business/recommendation"
	"comicSnap/domain"
	"context"
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const HeaderRecommendationStatus = "X-Recommendation-Status"

type (
	RecommendationHandler struct {
		validate              *validator.Validate
		recommendationService RecommendationService
	}

	RecommendationService interface {
		GenerateRecommendations(ctx context.Context, userID uint, limit int) recommendation.Result
	}

	RecommendQuery struct {
		N int `query:"n" validate:"gte=0,lte=100"`
	}

	RecommendationDebug struct {
		Entries  []domain.RecommendationEntry `json:"entries"`
		Status   string                       `json:"status"`
		Degraded []string                     `json:"degraded"`
		Query    string                       `json:"query"`
	}
)

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:              validator.New(),
		recommendationService: svc,
	}
}

// GET /api/v1/recommendations?n=10
//
// Engine failures never turn into 5xx: the list is just empty and the reason
// goes into the X-Recommendation-Status header.
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	res, ok, err := h.run(c)
	if !ok {
		return err
	}

	c.Response().Header().Set(HeaderRecommendationStatus, string(res.Failure))
	return c.JSON(http.StatusOK, fres.Response.StatusOK(res.Entries))
}

// GET /api/v1/recommendations/debug?n=10
//
// The underlying error stays in the engine logs; only its classification is
// returned.
func (h *RecommendationHandler) DebugRecommend(c echo.Context) error {
	res, ok, err := h.run(c)
	if !ok {
		return err
	}

	out := RecommendationDebug{
		Entries:  res.Entries,
		Status:   string(res.Failure),
		Degraded: res.Degraded,
		Query:    res.Query,
	}
	if out.Degraded == nil {
		out.Degraded = []string{}
	}

	c.Response().Header().Set(HeaderRecommendationStatus, string(res.Failure))
	return c.JSON(http.StatusOK, fres.Response.StatusOK(out))
}

// run validates the request and calls the engine. When ok is false the
// error response has already been written.
func (h *RecommendationHandler) run(c echo.Context) (res recommendation.Result, ok bool, err error) {
	userID, ok := currentUserID(c)
	if !ok {
		return res, false, c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return res, false, c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return res, false, c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return h.recommendationService.GenerateRecommendations(c.Request().Context(), userID, q.N), true, nil
}
