package configuration

import (
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/mitchellh/mapstructure"
	"reflect"
)

// ModeHookFunc returns a mapstructure decode hook that parses controller
// mode strings, rejecting unknown values.
func ModeHookFunc() mapstructure.DecodeHookFuncType {
	modeType := reflect.TypeOf(pid.Mode(""))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != modeType {
			return data, nil
		}

		value, ok := data.(string)
		if !ok {
			return data, nil
		}
		return pid.ParseMode(value)
	}
}
