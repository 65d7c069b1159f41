package configuration

type SetpointConfig struct {
	// Setpoint used when the daemon starts
	Initial float64 `json:"initial"`
	// Limits how fast a new setpoint is approached, 0 disables the ramp
	MaxChangePerSecond float64 `json:"maxChangePerSecond"`
}

type PlantConfig struct {
	InitialPosition float64 `json:"initialPosition"`
	Min             float64 `json:"min"`
	Max             float64 `json:"max"`
	// Position change per unit of controller output and tick
	Gain float64 `json:"gain"`
}
