package configuration

// ProfilingConfig exposes net/http/pprof on a separate listener
type ProfilingConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port,omitempty"`
}
