package models

import "time"

// TrelloConfig holds credentials and destination settings for the board API.
type TrelloConfig struct {
	Key      string `yaml:"key" mapstructure:"key"`
	Token    string `yaml:"token" mapstructure:"token"`
	BoardID  string `yaml:"board_id" mapstructure:"board_id"`
	ListID   string `yaml:"list_id,omitempty" mapstructure:"list_id"`
	ListName string `yaml:"list_name,omitempty" mapstructure:"list_name"`
	APIURL   string `yaml:"api_url,omitempty" mapstructure:"api_url"`
}

// ExportConfig holds the pacing used between card creation calls.
type ExportConfig struct {
	SingleDelay  time.Duration `yaml:"single_delay" mapstructure:"single_delay"`
	GroupedDelay time.Duration `yaml:"grouped_delay" mapstructure:"grouped_delay"`
}

// Config is the fully resolved configuration for one mdboard invocation,
// read from .mdboard.yaml and the environment via Viper.
type Config struct {
	Trello     TrelloConfig `yaml:"trello" mapstructure:"trello"`
	SourceFile string       `yaml:"source_file" mapstructure:"source_file"`
	Scan       ScanOptions  `yaml:"scan" mapstructure:"scan"`
	Export     ExportConfig `yaml:"export" mapstructure:"export"`
	EventsPath string       `yaml:"events_path,omitempty" mapstructure:"events_path"`
}

// SingleDestination reports whether every card goes to one pre-supplied list.
func (c *Config) SingleDestination() bool {
	return c.Trello.ListID != ""
}
