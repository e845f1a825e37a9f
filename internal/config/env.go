package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// EnvPrefix namespaces overrides: STUDENT_DB_HOST wins over DB_HOST.
const EnvPrefix = "STUDENT_"

// lookupEnv returns the prefixed variable when set, otherwise the bare one.
func lookupEnv(name string) (string, string, bool) {
	if value, ok := os.LookupEnv(EnvPrefix + name); ok {
		return EnvPrefix + name, value, true
	}
	value, ok := os.LookupEnv(name)
	return name, value, ok
}

// applyEnvOverrides sets every field tagged `env:"NAME"` whose variable is
// present. Sections are walked recursively and field paths use yaml names,
// so errors read like "database.max_open_conns". All bad values are reported.
func applyEnvOverrides(section reflect.Value, path string) error {
	var errs error
	typ := section.Type()

	for i := 0; i < section.NumField(); i++ {
		field := section.Field(i)
		meta := typ.Field(i)

		name := strings.Split(meta.Tag.Get("yaml"), ",")[0]
		if name == "" {
			name = strings.ToLower(meta.Name)
		}
		if path != "" {
			name = path + "." + name
		}

		if field.Kind() == reflect.Struct {
			errs = errors.Join(errs, applyEnvOverrides(field, name))
			continue
		}

		tag := meta.Tag.Get("env")
		if tag == "" {
			continue
		}
		variable, raw, ok := lookupEnv(tag)
		if !ok {
			continue
		}

		if err := setField(field, raw); err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s (from %s): %w", name, variable, err))
		}
	}

	return errs
}

func setField(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		field.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}
