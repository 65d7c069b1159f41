package configuration

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

type TraceConfig struct {
	Enabled bool   `json:"enabled"`
	DbPath  string `json:"dbPath"`
}
