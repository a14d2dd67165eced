// Package core contains the business logic for mdboard: configuration,
// the markdown checklist scanner, and the board exporter.
package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/valter-silva-au/mdboard/pkg/models"
)

// ErrMissingCredentials is returned when the board credentials or board id
// are not configured.
var ErrMissingCredentials = errors.New("missing Trello configuration")

// Defaults applied when neither .mdboard.yaml nor the environment set a value.
const (
	DefaultSourceFile = "docs/SYSTEM_ANALYSIS.md"
	DefaultAPIURL     = "https://api.trello.com/1"
	DefaultEventsFile = ".mdboard_events.jsonl"
)

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"trello.key":             "TRELLO_KEY",
	"trello.token":           "TRELLO_TOKEN",
	"trello.board_id":        "TRELLO_BOARD_ID",
	"trello.list_id":         "TRELLO_LIST_ID",
	"trello.list_name":       "TRELLO_LIST_NAME",
	"trello.api_url":         "TRELLO_API_URL",
	"source.file":            "MDBOARD_FILE",
	"scan.exclude_completed": "EXCLUDE_COMPLETED",
	"scan.include_toplevel":  "INCLUDE_TOPLEVEL",
	"scan.group_by":          "GROUP_BY",
}

// ConfigurationManager loads and validates mdboard configuration.
type ConfigurationManager interface {
	Load() (*models.Config, error)
	Validate(cfg *models.Config, requireCredentials bool) error
	ResolveSourcePath(cfg *models.Config) string
}

// viperConfigManager implements ConfigurationManager using Viper for the
// optional .mdboard.yaml file and environment overrides.
type viperConfigManager struct {
	basePath string
	now      func() time.Time
}

// NewConfigurationManager creates a ConfigurationManager that reads
// .mdboard.yaml from basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath, now: time.Now}
}

// Load reads .mdboard.yaml (if present) and the environment. Environment
// variables take precedence over the file.
func (cm *viperConfigManager) Load() (*models.Config, error) {
	v := viper.New()
	v.SetConfigName(".mdboard")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("trello.list_name", fmt.Sprintf("Markdown Export %s", cm.now().UTC().Format("2006-01-02")))
	v.SetDefault("trello.api_url", DefaultAPIURL)
	v.SetDefault("source.file", DefaultSourceFile)
	v.SetDefault("scan.group_by", string(models.GroupByH4))
	v.SetDefault("export.single_delay", DefaultSingleDelay)
	v.SetDefault("export.grouped_delay", DefaultGroupedDelay)
	v.SetDefault("events.path", DefaultEventsFile)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading .mdboard.yaml: %w", err)
		}
	}

	cfg := &models.Config{
		Trello: models.TrelloConfig{
			Key:      v.GetString("trello.key"),
			Token:    v.GetString("trello.token"),
			BoardID:  v.GetString("trello.board_id"),
			ListID:   v.GetString("trello.list_id"),
			ListName: v.GetString("trello.list_name"),
			APIURL:   v.GetString("trello.api_url"),
		},
		SourceFile: v.GetString("source.file"),
		Scan: models.ScanOptions{
			ExcludeCompleted: FlagOn(v.GetString("scan.exclude_completed")),
			IncludeToplevel:  FlagOn(v.GetString("scan.include_toplevel")),
			GroupBy:          ParseGroupBy(v.GetString("scan.group_by")),
		},
		Export: models.ExportConfig{
			SingleDelay:  v.GetDuration("export.single_delay"),
			GroupedDelay: v.GetDuration("export.grouped_delay"),
		},
		EventsPath: v.GetString("events.path"),
	}

	return cfg, nil
}

// ResolveSourcePath returns the absolute location of the source document.
// Relative paths are taken from the base path.
func (cm *viperConfigManager) ResolveSourcePath(cfg *models.Config) string {
	if filepath.IsAbs(cfg.SourceFile) {
		return cfg.SourceFile
	}
	return filepath.Join(cm.basePath, cfg.SourceFile)
}

// FlagOn reports whether a switch value is enabled: "1" or "true".
func FlagOn(value string) bool {
	value = strings.TrimSpace(value)
	return value == "1" || strings.EqualFold(value, "true")
}

// ParseGroupBy normalizes a grouping mode, defaulting to h4 when empty.
func ParseGroupBy(value string) models.GroupBy {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return models.GroupByH4
	}
	return models.GroupBy(value)
}

// Validate checks cfg and returns a single error naming every problem.
// Credentials are only required for commands that talk to the board.
func (cm *viperConfigManager) Validate(cfg *models.Config, requireCredentials bool) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if requireCredentials {
		var missing []string
		if cfg.Trello.Key == "" {
			missing = append(missing, "TRELLO_KEY")
		}
		if cfg.Trello.Token == "" {
			missing = append(missing, "TRELLO_TOKEN")
		}
		if cfg.Trello.BoardID == "" {
			missing = append(missing, "TRELLO_BOARD_ID")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: please set %s", ErrMissingCredentials, strings.Join(missing, ", "))
		}
	}

	var errs []string

	if !cfg.Scan.GroupBy.Valid() {
		errs = append(errs, fmt.Sprintf("group_by %q is invalid, must be one of: h4, h3, h2", cfg.Scan.GroupBy))
	}
	if cfg.SourceFile == "" {
		errs = append(errs, "source file must not be empty")
	}
	if cfg.Export.SingleDelay < 0 {
		errs = append(errs, fmt.Sprintf("export.single_delay must be non-negative, got %s", cfg.Export.SingleDelay))
	}
	if cfg.Export.GroupedDelay < 0 {
		errs = append(errs, fmt.Sprintf("export.grouped_delay must be non-negative, got %s", cfg.Export.GroupedDelay))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
