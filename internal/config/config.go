package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Documented default scheduling parameters; stable across versions so
// published grids stay reproducible.
const (
	DefaultDayHeadcount      = 4
	DefaultNightHeadcount    = 4
	DefaultCeilingHours      = 166
	DefaultDayShiftHours     = 12
	DefaultNightShiftHours   = 12
	DefaultWeekendShiftHours = 10
	DefaultScheduleSheetTab  = "Schedule"
)

// HolidayRule declares an extra or corrected holiday as a recurrence rule,
// letting hosts fix the moving feast days the built-in table freezes
type HolidayRule struct {
	RRule string `yaml:"rrule" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	DayHeadcount      int `yaml:"dayHeadcount,omitempty" validate:"omitempty,min=1"`
	NightHeadcount    int `yaml:"nightHeadcount,omitempty" validate:"omitempty,min=1"`
	CeilingHours      int `yaml:"ceilingHours,omitempty" validate:"omitempty,min=1"`
	DayShiftHours     int `yaml:"dayShiftHours,omitempty" validate:"omitempty,min=1"`
	NightShiftHours   int `yaml:"nightShiftHours,omitempty" validate:"omitempty,min=1"`
	WeekendShiftHours int `yaml:"weekendShiftHours,omitempty" validate:"omitempty,min=1"`

	SingleCoverageSpecialties []string `yaml:"singleCoverageSpecialties,omitempty"`
	SurgicalSpecialties       []string `yaml:"surgicalSpecialties,omitempty"`

	HolidayRules []HolidayRule `yaml:"holidayRules,omitempty" validate:"dive"`

	ScheduleSheetID  string `yaml:"scheduleSheetID,omitempty"`
	ScheduleSheetTab string `yaml:"scheduleSheetTab,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from roster_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, rule := range cfg.HolidayRules {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in holidayRules[%d]: %w", i, err)
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.DayHeadcount == 0 {
		c.DayHeadcount = DefaultDayHeadcount
	}
	if c.NightHeadcount == 0 {
		c.NightHeadcount = DefaultNightHeadcount
	}
	if c.CeilingHours == 0 {
		c.CeilingHours = DefaultCeilingHours
	}
	if c.DayShiftHours == 0 {
		c.DayShiftHours = DefaultDayShiftHours
	}
	if c.NightShiftHours == 0 {
		c.NightShiftHours = DefaultNightShiftHours
	}
	if c.WeekendShiftHours == 0 {
		c.WeekendShiftHours = DefaultWeekendShiftHours
	}
	if c.ScheduleSheetTab == "" {
		c.ScheduleSheetTab = DefaultScheduleSheetTab
	}
}

// findConfigFile searches for roster_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "roster_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
