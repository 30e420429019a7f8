package rest

import "github.com/labstack/echo/v4"

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func currentUserID(c echo.Context) (uint, bool) {
	userID, ok := c.Get("user_id").(uint)
	return userID, ok && userID > 0
}
