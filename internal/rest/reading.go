package rest

import (
	"comicSnap/business/reading"
	"comicSnap/domain"
	"context"
	"errors"
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	ReadingHandler struct {
		readingService ReadingService
	}

	ReadingService interface {
		MarkAsRead(ctx context.Context, userID uint, in reading.ReadInput) error
		IsRead(ctx context.Context, userID uint, comicID string) (bool, error)
		ListRead(ctx context.Context, userID uint) ([]domain.ReadComic, error)
	}

	ReadStatusResponse struct {
		ComicID string `json:"comic_id"`
		Read    bool   `json:"read"`
	}
)

func NewReadingHandler(svc ReadingService) *ReadingHandler {
	return &ReadingHandler{readingService: svc}
}

// POST /api/v1/readings
func (h *ReadingHandler) MarkAsRead(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req reading.ReadInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	err := h.readingService.MarkAsRead(c.Request().Context(), userID, req)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, fres.Response.StatusCreated("comic marked as read"))
	case errors.Is(err, reading.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, reading.ErrAlreadyRead):
		return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to save reading"})
	}
}

// GET /api/v1/readings
func (h *ReadingHandler) ListRead(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	comics, err := h.readingService.ListRead(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to list read comics"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(comics))
}

// GET /api/v1/readings/:comic_id
func (h *ReadingHandler) IsRead(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	comicID := c.Param("comic_id")
	read, err := h.readingService.IsRead(c.Request().Context(), userID, comicID)
	if err != nil {
		if errors.Is(err, reading.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to check reading"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(ReadStatusResponse{ComicID: comicID, Read: read}))
}
