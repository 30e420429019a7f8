package rest

import (
	"comicSnap/business/preference"
	"comicSnap/domain"
	"context"
	"errors"
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	PreferenceHandler struct {
		preferenceService PreferenceService
	}

	PreferenceService interface {
		AddPreference(ctx context.Context, userID uint, in preference.PreferenceInput) (domain.Preference, error)
		ListPreferredComicIDs(ctx context.Context, userID uint) ([]string, error)
	}
)

func NewPreferenceHandler(svc PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: svc}
}

// POST /api/v1/preferences
func (h *PreferenceHandler) AddPreference(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req preference.PreferenceInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	pref, err := h.preferenceService.AddPreference(c.Request().Context(), userID, req)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, fres.Response.StatusCreated(pref))
	case errors.Is(err, preference.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, preference.ErrAlreadyPreferred):
		return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to save preference"})
	}
}

// GET /api/v1/preferences
func (h *PreferenceHandler) ListPreferences(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ids, err := h.preferenceService.ListPreferredComicIDs(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to list preferences"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(ids))
}
