package configuration

import (
	"errors"
	"fmt"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/ui"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validateController(config)
	if err != nil {
		return err
	}
	err = validatePlant(config)
	if err != nil {
		return err
	}
	return validateServices(config)
}

func validateController(config *Configuration) error {
	if !config.Controller.Mode.Valid() {
		return fmt.Errorf("controller: unsupported mode '%s', use one of: %s | %s", config.Controller.Mode, pid.ModeManual, pid.ModeAutomatic)
	}

	if config.Controller.TickRate <= 0 {
		return errors.New("controller: tickRate must be positive")
	}

	if err := config.ToParameters().Validate(); err != nil {
		return fmt.Errorf("controller: %w", err)
	}

	if !config.Escalation.ClampGains && config.Escalation.Enabled && config.Controller.Mode == pid.ModeAutomatic {
		ui.Warning("Escalation gain clamping is disabled, gains may grow without bounds while the setpoint is not reached")
	}

	return nil
}

func validatePlant(config *Configuration) error {
	plant := config.Plant
	if plant.Min >= plant.Max {
		return fmt.Errorf("plant: min (%v) must be smaller than max (%v)", plant.Min, plant.Max)
	}
	if plant.InitialPosition < plant.Min || plant.InitialPosition > plant.Max {
		return fmt.Errorf("plant: initialPosition (%v) must be within [%v..%v]", plant.InitialPosition, plant.Min, plant.Max)
	}
	if plant.Gain <= 0 {
		return fmt.Errorf("plant: gain (%v) must be positive", plant.Gain)
	}

	if config.Setpoint.MaxChangePerSecond < 0 {
		return fmt.Errorf("setpoint: maxChangePerSecond (%v) must not be negative", config.Setpoint.MaxChangePerSecond)
	}
	return nil
}

func validateServices(config *Configuration) error {
	if config.Api.Enabled && !isValidPort(config.Api.Port) {
		return fmt.Errorf("api: invalid port %d", config.Api.Port)
	}
	if config.Statistics.Enabled && !isValidPort(config.Statistics.Port) {
		return fmt.Errorf("statistics: invalid port %d", config.Statistics.Port)
	}
	if config.Profiling.Enabled && !isValidPort(config.Profiling.Port) {
		return fmt.Errorf("profiling: invalid port %d", config.Profiling.Port)
	}
	if config.Trace.Enabled && len(config.Trace.DbPath) <= 0 {
		return errors.New("trace: dbPath is required when tracing is enabled")
	}
	return nil
}

func isValidPort(port int) bool {
	return port > 0 && port < 65535
}
