package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/hpcalc/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. HPCALC_GAS_PRICE.
const EnvPrefix = "HPCALC_"

// EnvName returns the environment variable that overrides a field.
func EnvName(field domain.Field) string {
	return EnvPrefix + strings.ToUpper(field.Name)
}

// LoadDotEnv loads dotenv files into the process environment. Variables
// already set win over the file. With no paths it tries ./.env and
// silently skips it when absent; named paths must exist.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// LoadEnvOverrides reads HPCALC_<FIELD> variables from the process environment.
func LoadEnvOverrides() (domain.Overrides, error) {
	return lookupEnvOverrides(os.LookupEnv)
}

// ReadEnvFile parses a dotenv file into overrides without touching the
// process environment.
func ReadEnvFile(path string) (domain.Overrides, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return domain.Overrides{}, fmt.Errorf("read env file %s: %w", path, err)
	}
	return lookupEnvOverrides(func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	})
}

func lookupEnvOverrides(lookup func(string) (string, bool)) (domain.Overrides, error) {
	var overrides domain.Overrides
	for _, field := range domain.Fields() {
		name := EnvName(field)
		raw, ok := lookup(name)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return domain.Overrides{}, fmt.Errorf("%s: invalid number %q", name, raw)
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return domain.Overrides{}, fmt.Errorf("%s: %q is not a finite number", name, raw)
		}
		overrides, err = overrides.Set(field.Name, v)
		if err != nil {
			return domain.Overrides{}, err
		}
	}
	return overrides, nil
}
