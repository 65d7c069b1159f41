package configuration

import (
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"reflect"
	"testing"
)

func TestModeHookFunc(t *testing.T) {
	type TestConfig struct {
		Mode pid.Mode `mapstructure:"mode"`
	}

	tests := []struct {
		name     string
		inputMap map[string]interface{}
		expected pid.Mode
		wantErr  bool
	}{
		{
			name:     "manual",
			inputMap: map[string]interface{}{"mode": "manual"},
			expected: pid.ModeManual,
		},
		{
			name:     "automatic",
			inputMap: map[string]interface{}{"mode": "automatic"},
			expected: pid.ModeAutomatic,
		},
		{
			name:     "unknown",
			inputMap: map[string]interface{}{"mode": "Manual"},
			wantErr:  true,
		},
		{
			name:     "missing",
			inputMap: map[string]interface{}{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg TestConfig

			decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				DecodeHook: ModeHookFunc(),
				Result:     &cfg,
			})
			if err != nil {
				t.Fatalf("failed to create decoder: %v", err)
			}

			err = decoder.Decode(tt.inputMap)
			if tt.wantErr {
				// mapstructure flattens hook errors into its own error type
				assert.ErrorContains(t, err, "invalid configuration value for mode (Manual)")
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Mode)
		})
	}
}

func TestModeHookSkipsUnrelatedTypes(t *testing.T) {
	// GIVEN
	hook := ModeHookFunc()

	// WHEN
	res, err := hook(reflect.TypeOf("string"), reflect.TypeOf(123), "some string")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "some string", res)
}
