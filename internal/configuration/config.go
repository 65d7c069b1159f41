package configuration

import (
	"errors"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"os"
	"strings"
	"time"
)

type Configuration struct {
	Controller ControllerConfig `json:"controller"`
	Tuning     TuningConfig     `json:"tuning"`
	Escalation EscalationConfig `json:"escalation"`

	Setpoint SetpointConfig `json:"setpoint"`
	Plant    PlantConfig    `json:"plant"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
	Trace      TraceConfig      `json:"trace"`
	Profiling  ProfilingConfig  `json:"profiling"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("pid2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/pid2go/")
	}

	viper.SetEnvPrefix("pid2go")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("controller.mode", "automatic")
	viper.SetDefault("controller.gains.kp", 1.0)
	viper.SetDefault("controller.gains.ki", 0.1)
	viper.SetDefault("controller.gains.kd", 0.05)
	viper.SetDefault("controller.outputMin", -100.0)
	viper.SetDefault("controller.outputMax", 100.0)
	viper.SetDefault("controller.defaultDt", 100*time.Millisecond)
	viper.SetDefault("controller.minDt", time.Microsecond)
	viper.SetDefault("controller.tolerance", 2.0)
	viper.SetDefault("controller.tickRate", 100*time.Millisecond)
	viper.SetDefault("controller.errorWindowSize", 50)

	viper.SetDefault("tuning.windowSize", 10)
	viper.SetDefault("tuning.thresholdTime", 1*time.Second)
	viper.SetDefault("tuning.stabilityThreshold", 1.0)
	viper.SetDefault("tuning.damping", 0.95)
	viper.SetDefault("tuning.maxGains.kp", 10.0)
	viper.SetDefault("tuning.maxGains.ki", 2.0)
	viper.SetDefault("tuning.maxGains.kd", 1.0)

	viper.SetDefault("escalation.enabled", true)
	viper.SetDefault("escalation.deadline", 1*time.Second)
	viper.SetDefault("escalation.boost.kp", 1.5)
	viper.SetDefault("escalation.boost.ki", 1.2)
	viper.SetDefault("escalation.boost.kd", 1.1)
	viper.SetDefault("escalation.clampGains", true)

	viper.SetDefault("setpoint.initial", 50.0)
	viper.SetDefault("setpoint.maxChangePerSecond", 0.0)

	viper.SetDefault("plant.initialPosition", 0.0)
	viper.SetDefault("plant.min", 0.0)
	viper.SetDefault("plant.max", 100.0)
	viper.SetDefault("plant.gain", 0.5)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("trace.enabled", false)
	viper.SetDefault("trace.dbPath", "/var/lib/pid2go/trace.db")

	viper.SetDefault("profiling.enabled", false)
	viper.SetDefault("profiling.host", "localhost")
	viper.SetDefault("profiling.port", 6060)
}

// DetectConfigFile reads the config file, if any, and returns its path.
// pid2go can run on defaults alone, so a missing file is not an error.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			ui.Warning("No configuration file found, using defaults")
			return ""
		}
		// a config file that exists but cannot be read is fatal
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

// LoadConfig decodes the current viper state into CurrentConfig
func LoadConfig() error {
	return viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		ModeHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// EffectiveSettings returns all settings known to viper, defaults included.
// Durations are formatted the way they are written in a config file.
func EffectiveSettings() map[string]interface{} {
	return formatSettings(viper.AllSettings())
}

func formatSettings(settings map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(settings))
	for key, value := range settings {
		switch v := value.(type) {
		case map[string]interface{}:
			result[key] = formatSettings(v)
		case time.Duration:
			result[key] = v.String()
		default:
			result[key] = v
		}
	}
	return result
}
