package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(s)
	if err != nil {
		return defaultValue
	}

	return asBool
}

// GetDuration reads a duration value such as "24h" or "90s". Plain integers
// are interpreted as seconds.
func GetDuration(config map[string]string, key string, defaultValue time.Duration) time.Duration {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	if asInt, err := strconv.Atoi(s); err == nil {
		return time.Duration(asInt) * time.Second
	}

	asDuration, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}

	return asDuration
}
