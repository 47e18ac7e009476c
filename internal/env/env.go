package env

import (
	"os"
	"strconv"
	"strings"
)

func GetString(key, fallback string) string {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return val
}

func GetInt(key string, fallback int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	valInt, err := strconv.Atoi(val)

	if err != nil {
		return fallback
	}
	return valInt
}

func GetBool(key string, fallback bool) bool {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	valBool, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return valBool
}

// GetList splits a comma-separated variable, dropping blank entries.
// An unset variable yields the fallback; a set but empty one yields an empty list.
func GetList(key string, fallback []string) []string {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	out := []string{}
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func GetIntList(key string, fallback []int) []int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	out := []int{}
	for _, part := range strings.Split(val, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
