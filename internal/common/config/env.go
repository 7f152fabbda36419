package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// IntFromEnv reads an integer from the environment.
func IntFromEnv(key string, defaultValue int) (int, error) {
	rawValue, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue, nil
	}

	rawValue = strings.TrimSpace(rawValue)
	if rawValue == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(rawValue)
	if err != nil {
		return 0, fmt.Errorf("invalid int env %s=%q: %w", key, rawValue, err)
	}

	return value, nil
}

// Int64FromEnv reads a 64-bit integer from the environment.
func Int64FromEnv(key string, defaultValue int64) (int64, error) {
	rawValue, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue, nil
	}

	rawValue = strings.TrimSpace(rawValue)
	if rawValue == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseInt(rawValue, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid int64 env %s=%q: %w", key, rawValue, err)
	}

	return value, nil
}

// Float64FromEnv reads a 64-bit float from the environment.
func Float64FromEnv(key string, defaultValue float64) (float64, error) {
	rawValue, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue, nil
	}

	rawValue = strings.TrimSpace(rawValue)
	if rawValue == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float env %s=%q: %w", key, rawValue, err)
	}

	return value, nil
}

// BoolFromEnv reads a boolean from the environment.
func BoolFromEnv(key string, defaultValue bool) (bool, error) {
	rawValue, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue, nil
	}

	rawValue = strings.TrimSpace(rawValue)
	if rawValue == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseBool(rawValue)
	if err != nil {
		return false, fmt.Errorf("invalid bool env %s=%q: %w", key, rawValue, err)
	}

	return value, nil
}

// StringFromEnv reads a string from the environment.
func StringFromEnv(key string, defaultValue string) string {
	rawValue, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	rawValue = strings.TrimSpace(rawValue)
	if rawValue == "" {
		return defaultValue
	}

	return rawValue
}

// DurationSecondsFromEnv reads a duration expressed in whole seconds.
func DurationSecondsFromEnv(key string, defaultSeconds int64) (time.Duration, error) {
	seconds, err := Int64FromEnv(key, defaultSeconds)
	if err != nil {
		return 0, err
	}
	if seconds < 0 {
		return 0, fmt.Errorf("invalid duration env %s: %d", key, seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}

// StringFromEnvFirstNonEmpty reads the first key that carries a non-empty
// value, falling back to defaultValue.
func StringFromEnvFirstNonEmpty(keys []string, defaultValue string) string {
	for _, key := range keys {
		rawValue, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		rawValue = strings.TrimSpace(rawValue)
		if rawValue != "" {
			return rawValue
		}
	}
	return defaultValue
}

// IntFromEnvFirstNonEmpty reads the first key that carries a non-empty
// integer value.
func IntFromEnvFirstNonEmpty(keys []string, defaultValue int) (int, error) {
	for _, key := range keys {
		rawValue, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		rawValue = strings.TrimSpace(rawValue)
		if rawValue == "" {
			continue
		}
		value, err := strconv.Atoi(rawValue)
		if err != nil {
			return 0, fmt.Errorf("invalid int env %s=%q: %w", key, rawValue, err)
		}
		return value, nil
	}
	return defaultValue, nil
}

// Int64FromEnvFirstNonEmpty reads the first key that carries a non-empty
// 64-bit integer value.
func Int64FromEnvFirstNonEmpty(keys []string, defaultValue int64) (int64, error) {
	for _, key := range keys {
		rawValue, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		rawValue = strings.TrimSpace(rawValue)
		if rawValue == "" {
			continue
		}
		value, err := strconv.ParseInt(rawValue, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid int64 env %s=%q: %w", key, rawValue, err)
		}
		return value, nil
	}
	return defaultValue, nil
}

// BoolFromEnvFirstNonEmpty reads the first key that carries a non-empty
// boolean value.
func BoolFromEnvFirstNonEmpty(keys []string, defaultValue bool) (bool, error) {
	for _, key := range keys {
		rawValue, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		rawValue = strings.TrimSpace(rawValue)
		if rawValue == "" {
			continue
		}
		value, err := strconv.ParseBool(rawValue)
		if err != nil {
			return false, fmt.Errorf("invalid bool env %s=%q: %w", key, rawValue, err)
		}
		return value, nil
	}
	return defaultValue, nil
}

// StringListFromEnvFirstNonEmpty reads a comma-separated list from the first
// key carrying a non-empty value.
func StringListFromEnvFirstNonEmpty(keys []string, defaultValue []string) []string {
	raw := StringFromEnvFirstNonEmpty(keys, "")
	if raw == "" {
		return defaultValue
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

// Int64ListFromEnvFirstNonEmpty reads a comma-separated list of 64-bit
// integers from the first key carrying a non-empty value.
func Int64ListFromEnvFirstNonEmpty(keys []string, defaultValue []int64) ([]int64, error) {
	raw := StringFromEnvFirstNonEmpty(keys, "")
	if raw == "" {
		return defaultValue, nil
	}

	parts := strings.Split(raw, ",")
	values := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid int64 list element %q: %w", part, err)
		}
		values = append(values, value)
	}
	if len(values) == 0 {
		return defaultValue, nil
	}
	return values, nil
}
