package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/Paintersrp/modular/internal/constants"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml keys rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// EnsureConfigExists writes a default config to path unless one is already
// there. It reports whether a file was created.
func EnsureConfigExists(path string, cfg *Config) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, errors.Wrap(err, "failed to check config file existence")
	}

	if cfg == nil {
		cfg = Default()
	}
	if err := cfg.Save(path); err != nil {
		return false, err
	}
	return true, nil
}

// Validate checks the loaded values and lists every offending key.
func (cfg *Config) Validate() error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate config")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return &ConfigInitError{msg: "invalid config: " + strings.Join(msgs, "; ")}
}

func formatFieldError(e validator.FieldError) string {
	// Drop the leading struct name from the namespace.
	field := e.Namespace()
	if dot := strings.Index(field, "."); dot >= 0 {
		field = field[dot+1:]
	}

	switch e.Tag() {
	case "required":
		return field + " is required"
	case "url":
		return field + " must be an absolute URL"
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "gt":
		return field + " must be greater than " + e.Param()
	case "gte":
		return field + " must be at least " + e.Param()
	case "lte":
		return field + " must be at most " + e.Param()
	default:
		return field + " is invalid"
	}
}
