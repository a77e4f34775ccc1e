package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"
)

const (
	KeyLogLevel      = "MEMFS_LOG_LEVEL"
	KeyLogTimeFormat = "MEMFS_LOG_TIME_FORMAT"
	KeyLogFile       = "MEMFS_LOG_FILE"
	KeyNoColor       = "MEMFS_NO_COLOR"
	KeyHumanSizes    = "MEMFS_HUMAN_SIZES"

	KeyChecksumWorkers = "MEMFS_CHECKSUM_WORKERS"
)

// DefaultChecksumWorkers is the default number of files checksummed at once.
const DefaultChecksumWorkers = 4

// AppConfiguration is the principal structure holding the application configuration.
type AppConfiguration struct {
	// LogLevel is the minimum level of emitted log records.
	LogLevel slog.Level

	// LogTimeFormat is the time layout used by the console log handler.
	LogTimeFormat string

	// LogFile is an optional path receiving JSON log records in addition to
	// the console.
	LogFile string

	// NoColor disables colored console output.
	NoColor bool

	// HumanSizes renders sizes in human-readable units instead of bytes.
	HumanSizes bool

	// ChecksumWorkers is the maximum number of files checksummed at once.
	ChecksumWorkers int
}

// NewAppConfiguration returns a pointer to a new [AppConfiguration] holding
// the defaults.
func NewAppConfiguration() *AppConfiguration {
	return &AppConfiguration{
		LogLevel:      slog.LevelInfo,
		LogTimeFormat: time.Kitchen,
		HumanSizes:    true,

		ChecksumWorkers: DefaultChecksumWorkers,
	}
}

// LoadAppConfiguration reads the given configuration files and returns the
// resulting [AppConfiguration]. Absent keys keep their defaults, missing files
// are not an error.
func (c *Handler) LoadAppConfiguration(filenames ...string) (*AppConfiguration, error) {
	config := NewAppConfiguration()

	if len(filenames) == 0 {
		return config, nil
	}

	envMap, err := c.ReadGeneric(filenames...)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Configuration file not found, using defaults.",
				"files", filenames,
			)

			return config, nil
		}

		return nil, fmt.Errorf("(config) failed to read configuration: %w", err)
	}

	if level := c.MapKeyToString(envMap, KeyLogLevel); level != "" {
		if err := config.LogLevel.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
			return nil, fmt.Errorf("(config) invalid %s: %w", KeyLogLevel, err)
		}
	}

	if format := c.MapKeyToString(envMap, KeyLogTimeFormat); format != "" {
		config.LogTimeFormat = timeLayout(format)
	}

	config.LogFile = strings.TrimSpace(c.MapKeyToString(envMap, KeyLogFile))
	config.NoColor = c.MapKeyToBool(envMap, KeyNoColor, config.NoColor)
	config.HumanSizes = c.MapKeyToBool(envMap, KeyHumanSizes, config.HumanSizes)

	if raw := c.MapKeyToString(envMap, KeyChecksumWorkers); raw != "" {
		workers := c.MapKeyToInt(envMap, KeyChecksumWorkers)
		if workers < 1 {
			return nil, fmt.Errorf("(config) %w: %s=%q", ErrInvalidWorkers, KeyChecksumWorkers, raw)
		}
		config.ChecksumWorkers = workers
	}

	return config, nil
}

// timeLayout maps the names of the [time] package layouts to their layout,
// any other value is taken as a layout itself.
func timeLayout(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "datetime":
		return time.DateTime
	case "timeonly":
		return time.TimeOnly
	case "stampmilli":
		return time.StampMilli
	default:
		return name
	}
}
