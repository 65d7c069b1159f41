package configuration

import (
	"github.com/spf13/viper"
	"strings"
	"testing"
)

// loadTestConfig resets viper, applies the defaults and the given yaml content
func loadTestConfig(t *testing.T, yaml string) (Configuration, error) {
	t.Helper()
	viper.Reset()
	setDefaultValues()
	if len(yaml) > 0 {
		viper.SetConfigType("yaml")
		if err := viper.ReadConfig(strings.NewReader(yaml)); err != nil {
			t.Fatalf("unable to read test config: %v", err)
		}
	}
	CurrentConfig = Configuration{}
	err := LoadConfig()
	return CurrentConfig, err
}
