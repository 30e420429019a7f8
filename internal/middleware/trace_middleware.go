package middleware

import (
	"comicSnap/business/recommendation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceID reuses an incoming X-Request-ID or generates one, echoes it back
// and stores it in the request context for log correlation.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			tid := req.Header.Get(echo.HeaderXRequestID)
			if tid == "" || len(tid) > 128 {
				tid = uuid.NewString()
			}

			c.Response().Header().Set(echo.HeaderXRequestID, tid)
			c.SetRequest(req.WithContext(recommendation.WithTraceID(req.Context(), tid)))

			return next(c)
		}
	}
}
