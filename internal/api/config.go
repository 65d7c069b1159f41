package api

import (
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
	"net/http"
)

func registerConfigEndpoints(rest *echo.Echo, deps Dependencies) {
	rest.GET("/config/", func(c echo.Context) error {
		data := reprint.This(*deps.Config)
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})
}
