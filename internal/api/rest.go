package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/prometheus/client_golang/prometheus"
	"net/http"
)

const (
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}

	// Controller is implemented by pid.Controller
	Controller interface {
		Log() pid.Snapshot
		SetGains(update pid.GainUpdate) error
	}

	// SetpointTarget is implemented by control_loop.SetpointRamp
	SetpointTarget interface {
		SetTarget(target float64)
		Target() float64
	}

	// PositionOverride is implemented by plant.Plant
	PositionOverride interface {
		SetPosition(position float64)
		Position() float64
	}

	Dependencies struct {
		Controller Controller
		Setpoint   SetpointTarget
		Plant      PositionOverride
		Config     *configuration.Configuration
		// request metrics are only recorded if a registerer is given
		Registerer prometheus.Registerer
	}
)

func CreateRestService(deps Dependencies) (*echo.Echo, error) {
	echoRest := echo.New()
	echoRest.HideBanner = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())

	echoRest.Use(middleware.Logger())
	echoRest.Use(middleware.Recover())

	if deps.Registerer != nil {
		metricsMiddleware, err := echoprometheus.MiddlewareConfig{
			Namespace:  "pid2go",
			Subsystem:  "api",
			Registerer: deps.Registerer,
		}.ToMiddleware()
		if err != nil {
			return nil, err
		}
		echoRest.Use(metricsMiddleware)
	}

	echoRest.GET("/alive/", isAlive)

	registerControllerEndpoints(echoRest, deps)
	registerConfigEndpoints(echoRest, deps)

	return echoRest, nil
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return the error message of an error
func returnError(c echo.Context, status int, name string, e error) (err error) {
	return c.JSONPretty(status, &Result{
		Name:    name,
		Message: e.Error(),
	}, indentationChar)
}
