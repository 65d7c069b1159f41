package pid

// Mode determines who owns the gains of a Controller.
type Mode string

const (
	// ModeManual gains are only changed through SetGains
	ModeManual Mode = "manual"
	// ModeAutomatic gains are owned by the self-tuning estimator and the escalation policy
	ModeAutomatic Mode = "automatic"
)

// ParseMode converts the given string to a Mode, failing with an
// InvalidConfigurationError for unknown values.
func ParseMode(value string) (Mode, error) {
	mode := Mode(value)
	if !mode.Valid() {
		return "", &InvalidConfigurationError{
			Field:  "mode",
			Value:  value,
			Reason: "must be one of: " + string(ModeManual) + " | " + string(ModeAutomatic),
		}
	}
	return mode, nil
}

func (m Mode) Valid() bool {
	return m == ModeManual || m == ModeAutomatic
}

func (m Mode) String() string {
	return string(m)
}
