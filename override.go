// FILE: lixenwraith/filelog/override.go
package filelog

import (
	"reflect"
	"strconv"
	"strings"
)

// NewConfigFromOverrides builds a validated Config from defaults plus "key=value" strings.
//
// Example:
//
//	cfg, err := filelog.NewConfigFromOverrides(
//	    "directory=/var/log/app",
//	    "level=warn",
//	    "retention=count",
//	    "max_files=10",
//	)
func NewConfigFromOverrides(overrides ...string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.ApplyOverride(overrides...); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverride applies "key=value" strings to the configuration in place.
// All overrides are attempted; failures are combined into one error.
func (c *Config) ApplyOverride(overrides ...string) error {
	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(c, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return combineConfigErrors(errors)
	}
	return nil
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("multiple configuration errors:")
	for i, err := range errors {
		// Drop the per-error prefix to avoid repeating it
		errMsg := strings.TrimPrefix(err.Error(), "filelog: ")
		sb.WriteString("\n  " + strconv.Itoa(i+1) + ". " + errMsg)
	}
	return fmtErrorf("%s", sb.String())
}

// applyConfigField parses value according to the type of the setting named key
func applyConfigField(cfg *Config, key, value string) error {
	// Level accepts names as well as numbers
	if key == "level" {
		lvl, err := ParseLevel(value)
		if err != nil {
			return err
		}
		cfg.Level = lvl
		return nil
	}

	v := reflect.ValueOf(&cfg.Settings).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") != key {
			continue
		}
		field := v.Field(i)

		switch field.Kind() {
		case reflect.String:
			field.SetString(value)
		case reflect.Int64:
			intVal, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmtErrorf("invalid integer value for %s '%s': %w", key, value, err)
			}
			field.SetInt(intVal)
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmtErrorf("invalid float value for %s '%s': %w", key, value, err)
			}
			field.SetFloat(floatVal)
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(value)
			if err != nil {
				return fmtErrorf("invalid boolean value for %s '%s': %w", key, value, err)
			}
			field.SetBool(boolVal)
		default:
			return fmtErrorf("unsupported type for %s: %v", key, field.Kind())
		}
		return nil
	}

	return fmtErrorf("unknown configuration key '%s'", key)
}
