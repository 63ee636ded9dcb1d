package config

// ConfigInitError reports a config file that is missing or incomplete.
// Commands treat it as a prompt to run `modular init`.
type ConfigInitError struct {
	msg string
}

func (e *ConfigInitError) Error() string {
	return e.msg
}
