package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// New snapshots the process environment as a key/value map.
func New() map[string]string {
	environ := os.Environ()
	env := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		key, value := split(entry)
		env[key] = value
	}
	return env
}

// split cuts KEY=VALUE at the first '='. An entry without one has an empty value.
func split(entry string) (key, value string) {
	key, value, _ = strings.Cut(entry, "=")
	return key, value
}

// lookup returns the trimmed value for key, or false when it is unset or blank.
func lookup(env map[string]string, key string) (string, bool) {
	raw, ok := env[key]
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func GetString(env map[string]string, key string, defaultValue string) string {
	if v, ok := lookup(env, key); ok {
		return v
	}
	return defaultValue
}

func GetInt(env map[string]string, key string, defaultValue int) int {
	v, ok := lookup(env, key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func GetBool(env map[string]string, key string, defaultValue bool) bool {
	v, ok := lookup(env, key)
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

// GetDuration reads an integer count of unit, e.g. GetDuration(env, "IDLE_TIMEOUT_SECONDS", time.Second, 180).
func GetDuration(env map[string]string, key string, unit time.Duration, defaultValue int) time.Duration {
	return time.Duration(GetInt(env, key, defaultValue)) * unit
}

// GetList splits a comma separated value, dropping blanks.
func GetList(env map[string]string, key string, defaultValue []string) []string {
	v, ok := lookup(env, key)
	if !ok {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
