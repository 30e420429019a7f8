package router

import (
	"comicSnap/internal/rest"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)
	reco.GET("", handler.Recommend)
	reco.GET("/debug", handler.DebugRecommend)
}

func SetReadingRoutes(api *echo.Group, handler *rest.ReadingHandler, authRequired echo.MiddlewareFunc) {
	readings := api.Group("/readings", authRequired)
	readings.POST("", handler.MarkAsRead)
	readings.GET("", handler.ListRead)
	readings.GET("/:comic_id", handler.IsRead)
}

func SetPreferenceRoutes(api *echo.Group, handler *rest.PreferenceHandler, authRequired echo.MiddlewareFunc) {
	prefs := api.Group("/preferences", authRequired)
	prefs.POST("", handler.AddPreference)
	prefs.GET("", handler.ListPreferences)
}

func SetCatalogRoutes(api *echo.Group, handler *rest.CatalogHandler) {
	api.GET("/search", handler.Search)
}

func SetOpsRoutes(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
