// Package settings manages persistent user settings for the vlanconv CLI.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/newtron-network/vlanconv/pkg/dialect"
	"github.com/newtron-network/vlanconv/pkg/dialect/dlink"
	"github.com/newtron-network/vlanconv/pkg/generate"
	"github.com/newtron-network/vlanconv/pkg/util"
)

// Settings holds persistent user preferences. Zero values fall back to the
// built-in defaults through the getters.
type Settings struct {
	// Dialect is the input dialect used when -D is not specified
	Dialect string `yaml:"dialect,omitempty"`

	// VLANsPerLine caps VLAN IDs per generated line
	VLANsPerLine int `yaml:"vlans_per_line,omitempty"`

	// InterfaceFormat is the Raisecom interface name template
	InterfaceFormat string `yaml:"interface_format,omitempty"`

	// PortConflict is the D-Link port conflict policy
	PortConflict string `yaml:"port_conflict,omitempty"`

	// LogLevel is the default logrus level
	LogLevel string `yaml:"log_level,omitempty"`
}

// Keys lists the settable keys in file order
var Keys = []string{"dialect", "vlans_per_line", "interface_format", "port_conflict", "log_level"}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vlanconv_settings.yaml"
	}
	return filepath.Join(home, ".vlanconv", "settings.yaml")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist
			return s, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks every non-empty field
func (s *Settings) Validate() error {
	v := &util.ValidationBuilder{}
	if s.Dialect != "" {
		if _, err := dialect.Lookup(s.Dialect); err != nil {
			v.AddErrorf("dialect: %v", err)
		}
	}
	v.Add(s.VLANsPerLine >= 0, "vlans_per_line must not be negative")
	if s.InterfaceFormat != "" {
		v.Add(strings.Count(s.InterfaceFormat, "%d") == 1, "interface_format must contain exactly one %d")
	}
	if _, err := dlink.ParsePolicy(s.PortConflict); err != nil {
		v.AddErrorf("port_conflict: %v", err)
	}
	if s.LogLevel != "" {
		switch s.LogLevel {
		case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
		default:
			v.AddErrorf("log_level %q is not a log level", s.LogLevel)
		}
	}
	return v.Build()
}

// GetDialect returns the configured dialect (with fallback)
func (s *Settings) GetDialect() string {
	if s.Dialect != "" {
		return s.Dialect
	}
	return dialect.Raisecom.String()
}

// GetVLANsPerLine returns the per-line VLAN cap (with fallback)
func (s *Settings) GetVLANsPerLine() int {
	if s.VLANsPerLine > 0 {
		return s.VLANsPerLine
	}
	return generate.DefaultVLANsPerLine
}

// GetInterfaceFormat returns the interface name template (with fallback)
func (s *Settings) GetInterfaceFormat() string {
	if s.InterfaceFormat != "" {
		return s.InterfaceFormat
	}
	return generate.DefaultInterfaceFormat
}

// GetPortConflict returns the port conflict policy (with fallback)
func (s *Settings) GetPortConflict() string {
	if s.PortConflict != "" {
		return s.PortConflict
	}
	return string(dlink.LastWriteWins)
}

// GetLogLevel returns the log level (with fallback)
func (s *Settings) GetLogLevel() string {
	if s.LogLevel != "" {
		return s.LogLevel
	}
	return "warn"
}

// Get returns the effective value of key
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case "dialect":
		return s.GetDialect(), nil
	case "vlans_per_line":
		return strconv.Itoa(s.GetVLANsPerLine()), nil
	case "interface_format":
		return s.GetInterfaceFormat(), nil
	case "port_conflict":
		return s.GetPortConflict(), nil
	case "log_level":
		return s.GetLogLevel(), nil
	}
	return "", unknownKey(key)
}

// Set assigns value to key. An empty value resets the key to its default.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "dialect":
		s.Dialect = value
	case "vlans_per_line":
		if value == "" {
			s.VLANsPerLine = 0
			break
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("vlans_per_line: %q is not a number", value)
		}
		s.VLANsPerLine = n
	case "interface_format":
		s.InterfaceFormat = value
	case "port_conflict":
		s.PortConflict = value
	case "log_level":
		s.LogLevel = value
	default:
		return unknownKey(key)
	}
	return s.Validate()
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}

func unknownKey(key string) error {
	valid := append([]string(nil), Keys...)
	sort.Strings(valid)
	return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(valid, ", "))
}
