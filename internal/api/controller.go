package api

import (
	"errors"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/pid2go/internal/pid"
	"net/http"
)

type valueRequest struct {
	Value *float64 `json:"value"`
}

type valueResponse struct {
	Value float64 `json:"value"`
}

func registerControllerEndpoints(rest *echo.Echo, deps Dependencies) {
	group := rest.Group("/controller")

	group.GET("/", func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, deps.Controller.Log(), indentationChar)
	})
	group.POST("/gains/", func(c echo.Context) error {
		return setGains(c, deps.Controller)
	})
	group.GET("/setpoint/", func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, &valueResponse{Value: deps.Setpoint.Target()}, indentationChar)
	})
	group.PUT("/setpoint/", func(c echo.Context) error {
		value, err := bindValue(c)
		if err != nil {
			return returnError(c, http.StatusBadRequest, "Bad Request", err)
		}
		deps.Setpoint.SetTarget(value)
		return c.JSONPretty(http.StatusOK, &valueResponse{Value: value}, indentationChar)
	})

	plantGroup := rest.Group("/plant")
	plantGroup.GET("/position/", func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, &valueResponse{Value: deps.Plant.Position()}, indentationChar)
	})
	plantGroup.PUT("/position/", func(c echo.Context) error {
		value, err := bindValue(c)
		if err != nil {
			return returnError(c, http.StatusBadRequest, "Bad Request", err)
		}
		deps.Plant.SetPosition(value)
		return c.JSONPretty(http.StatusOK, &valueResponse{Value: deps.Plant.Position()}, indentationChar)
	})
}

func setGains(c echo.Context, controller Controller) error {
	var update pid.GainUpdate
	if err := c.Bind(&update); err != nil {
		return returnError(c, http.StatusBadRequest, "Bad Request", err)
	}

	err := controller.SetGains(update)
	var modeErr *pid.InvalidModeError
	if errors.As(err, &modeErr) {
		return returnError(c, http.StatusConflict, "Invalid Mode", err)
	} else if err != nil {
		return returnError(c, http.StatusInternalServerError, "Unknown Error", err)
	}

	return c.JSONPretty(http.StatusOK, controller.Log(), indentationChar)
}

func bindValue(c echo.Context) (float64, error) {
	var request valueRequest
	if err := c.Bind(&request); err != nil {
		return 0, err
	}
	if request.Value == nil {
		return 0, errors.New("missing field 'value'")
	}
	return *request.Value, nil
}
