package pid

// Actuator receives the bounded controller output at the end of every tick.
// Implementations must not call back into the Controller.
type Actuator interface {
	Apply(output float64)
}

// ActuatorFunc adapts a plain function to the Actuator interface
type ActuatorFunc func(output float64)

func (f ActuatorFunc) Apply(output float64) {
	f(output)
}
