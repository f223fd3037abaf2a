package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for flowsheet.
// Values are read by Viper from config.yaml in the workspace or from
// FLOWSHEET_* environment variables.
type Config struct {
	Workspace WorkspaceConfig `mapstructure:"workspace"`
	Editor    EditorConfig    `mapstructure:"editor"`
	Timers    TimersConfig    `mapstructure:"timers"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Log       LogConfig       `mapstructure:"log"`
}

type WorkspaceConfig struct {
	Dir string `mapstructure:"dir"`
}

// EditorConfig tunes the interactive editor.
type EditorConfig struct {
	Trigger       string  `mapstructure:"trigger"`        // opens the catalog picker from an empty name
	PickerColumns int     `mapstructure:"picker_columns"` // grid width of the picker
	DeadZone      float64 `mapstructure:"dead_zone"`      // half-height of the drag dead zone, in terminal rows
	RowHeight     int     `mapstructure:"row_height"`     // terminal rows per intervention row

	// The pointer is sampled at cell centres, so the dead zone only engages
	// when a row has a middle cell: row_height 3 or more.
}

// TimersConfig holds the cosmetic delays.
type TimersConfig struct {
	Pulse            time.Duration `mapstructure:"pulse"`
	Removal          time.Duration `mapstructure:"removal"`
	Tooltip          time.Duration `mapstructure:"tooltip"`
	LinkTooltipClose time.Duration `mapstructure:"link_tooltip_close"`
}

type CatalogConfig struct {
	LinkTemplate string `mapstructure:"link_template"`
}

type LogConfig struct {
	Mode  string `mapstructure:"mode"`
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// TriggerRune returns the first rune of the trigger setting, '/' when unset.
func (c EditorConfig) TriggerRune() rune {
	for _, r := range c.Trigger {
		return r
	}
	return '/'
}

// DefaultDir returns ~/.flowsheet.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".flowsheet"), nil
}

// Load reads configuration from path/config.yaml and the environment.
// A missing config file is not an error.
func Load(path string) (Config, error) {
	var config Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("flowsheet")
	v.AutomaticEnv()
	// editor.dead_zone -> FLOWSHEET_EDITOR_DEAD_ZONE
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// Empty unless set explicitly; the caller picks the workspace.
	v.SetDefault("workspace.dir", "")
	v.SetDefault("editor.trigger", "/")
	v.SetDefault("editor.picker_columns", 3)
	v.SetDefault("editor.dead_zone", 0.25)
	v.SetDefault("editor.row_height", 2)
	v.SetDefault("timers.pulse", "420ms")
	v.SetDefault("timers.removal", "250ms")
	v.SetDefault("timers.tooltip", "500ms")
	v.SetDefault("timers.link_tooltip_close", "100ms")
	v.SetDefault("catalog.link_template", "https://www.hep2go.com/exercise_editor.php?exId=%s")
	v.SetDefault("log.mode", "development")
	v.SetDefault("log.file", filepath.Join(path, "flowsheet.log"))
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, err
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return config, err
	}
	if config.Editor.PickerColumns <= 0 {
		config.Editor.PickerColumns = 3
	}
	if config.Editor.RowHeight <= 0 {
		config.Editor.RowHeight = 2
	}
	return config, nil
}

// DefaultYAML is the config file written by `flowsheet init`.
const DefaultYAML = `# flowsheet configuration
editor:
  trigger: "/"
  picker_columns: 3
  # dead_zone needs row_height >= 3 to engage
  dead_zone: 0.25
  row_height: 2
timers:
  pulse: 420ms
  removal: 250ms
  tooltip: 500ms
  link_tooltip_close: 100ms
catalog:
  link_template: "https://www.hep2go.com/exercise_editor.php?exId=%s"
log:
  mode: development
  level: info
`
