package pid

import "fmt"

// InvalidModeError is returned when an operation is not allowed in the controller's mode.
type InvalidModeError struct {
	Operation string
	Mode      Mode
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("%s is only allowed in %s mode, controller is in %s mode", e.Operation, ModeManual, e.Mode)
}

// InvalidConfigurationError is returned when a controller is constructed with invalid settings.
type InvalidConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration value for %s (%v): %s", e.Field, e.Value, e.Reason)
}
