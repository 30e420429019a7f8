package rest

import (
	"comicSnap/business/catalog"
	"comicSnap/domain"
	"context"
	"errors"
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	CatalogHandler struct {
		validate       *validator.Validate
		catalogService CatalogService
	}

	CatalogService interface {
		Search(ctx context.Context, query string, limit int) ([]domain.CandidateItem, error)
	}

	SearchQuery struct {
		Q string `query:"q" validate:"required"`
		N int    `query:"n" validate:"gte=0"`
	}
)

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{
		validate:       validator.New(),
		catalogService: svc,
	}
}

// GET /api/v1/search?q=batman&n=20
func (h *CatalogHandler) Search(c echo.Context) error {
	var q SearchQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	items, err := h.catalogService.Search(c.Request().Context(), q.Q, q.N)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
	case errors.Is(err, catalog.ErrEmptyQuery):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrCatalogTimeout):
		return c.JSON(http.StatusGatewayTimeout, ResponseError{Message: "catalog did not respond in time"})
	default:
		return c.JSON(http.StatusBadGateway, ResponseError{Message: "catalog unavailable"})
	}
}
