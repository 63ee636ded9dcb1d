package constants

const (
	Version        = `0.1.0`
	AppName        = `modular`
	ConfigFile     = `config`
	ConfigFileType = `yaml`
	ConfigDir      = `/.modular/`

	// EnvFile is read from the working directory before the config file.
	EnvFile   = `.env`
	EnvPrefix = `MODULAR`
)
