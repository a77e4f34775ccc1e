// Package configuration reads generic Unix-type configuration files and maps
// their keys into the typed application configuration.
package configuration

import (
	"strconv"
	"strings"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Handler is the principal implementation for the configuration services.
type Handler struct {
	GenericHandler genericConfigProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		GenericHandler: genericHandler,
	}
}

// ReadGeneric reads the given configuration files into a map (map[key]value).
func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	return c.GenericHandler.Read(filenames...)
}

func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

// MapKeyToInt returns the integer value of key, or -1 if the key is absent or
// not an integer.
func (c *Handler) MapKeyToInt(envMap map[string]string, key string) int {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}

	return intValue
}

// MapKeyToBool returns the boolean value of key, or def if the key is absent
// or not a boolean.
func (c *Handler) MapKeyToBool(envMap map[string]string, key string, def bool) bool {
	value := strings.TrimSpace(c.MapKeyToString(envMap, key))
	if value == "" {
		return def
	}

	switch strings.ToLower(value) {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}

	return boolValue
}
