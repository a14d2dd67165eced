package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/valter-silva-au/mdboard/pkg/models"
)

// --- Helpers ---

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// clearEnv blanks every variable the config manager reads so the host
// environment cannot leak into a test. Viper treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
	}
}

func newTestConfigManager(dir string) *viperConfigManager {
	return &viperConfigManager{
		basePath: dir,
		now:      func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) },
	}
}

// --- Load tests ---

func TestLoad_Defaults_WhenNoFileOrEnv(t *testing.T) {
	clearEnv(t)
	cm := newTestConfigManager(t.TempDir())

	cfg, err := cm.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SourceFile != DefaultSourceFile {
		t.Errorf("SourceFile = %q, want %q", cfg.SourceFile, DefaultSourceFile)
	}
	if cfg.Scan.GroupBy != models.GroupByH4 {
		t.Errorf("GroupBy = %q, want h4", cfg.Scan.GroupBy)
	}
	if cfg.Scan.ExcludeCompleted || cfg.Scan.IncludeToplevel {
		t.Errorf("switches should default off: %+v", cfg.Scan)
	}
	if cfg.Trello.ListName != "Markdown Export 2026-10-16" {
		t.Errorf("ListName = %q", cfg.Trello.ListName)
	}
	if cfg.Trello.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q", cfg.Trello.APIURL)
	}
	if cfg.Export.SingleDelay != 200*time.Millisecond || cfg.Export.GroupedDelay != 180*time.Millisecond {
		t.Errorf("unexpected delays %+v", cfg.Export)
	}
	if cfg.EventsPath != DefaultEventsFile {
		t.Errorf("EventsPath = %q", cfg.EventsPath)
	}
	if cfg.SingleDestination() {
		t.Error("no list id configured, expected grouped mode")
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRELLO_KEY", "k")
	t.Setenv("TRELLO_TOKEN", "tok")
	t.Setenv("TRELLO_BOARD_ID", "board")
	t.Setenv("TRELLO_LIST_ID", "list")
	t.Setenv("TRELLO_LIST_NAME", "Imported")
	t.Setenv("EXCLUDE_COMPLETED", "1")
	t.Setenv("INCLUDE_TOPLEVEL", "1")
	t.Setenv("GROUP_BY", "H3")

	cfg, err := newTestConfigManager(t.TempDir()).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := models.TrelloConfig{Key: "k", Token: "tok", BoardID: "board", ListID: "list", ListName: "Imported", APIURL: DefaultAPIURL}
	if cfg.Trello != want {
		t.Errorf("Trello = %+v, want %+v", cfg.Trello, want)
	}
	if !cfg.Scan.ExcludeCompleted || !cfg.Scan.IncludeToplevel {
		t.Errorf("switches should be on: %+v", cfg.Scan)
	}
	if cfg.Scan.GroupBy != models.GroupByH3 {
		t.Errorf("GroupBy = %q, want h3", cfg.Scan.GroupBy)
	}
	if !cfg.SingleDestination() {
		t.Error("expected single-destination mode")
	}
}

func TestLoad_SwitchOnlyForOne(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXCLUDE_COMPLETED", "yes")
	t.Setenv("INCLUDE_TOPLEVEL", "0")

	cfg, err := newTestConfigManager(t.TempDir()).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scan.ExcludeCompleted || cfg.Scan.IncludeToplevel {
		t.Errorf("only \"1\"/\"true\" should enable switches: %+v", cfg.Scan)
	}
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".mdboard.yaml", `
trello:
  key: file-key
  token: file-token
  board_id: file-board
  api_url: http://localhost:9999/1
source:
  file: notes/TODO.md
scan:
  exclude_completed: true
  group_by: h2
export:
  single_delay: 50ms
  grouped_delay: 1s
events:
  path: custom.jsonl
`)

	cfg, err := newTestConfigManager(dir).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Trello.Key != "file-key" || cfg.Trello.BoardID != "file-board" {
		t.Errorf("unexpected trello config %+v", cfg.Trello)
	}
	if cfg.Trello.APIURL != "http://localhost:9999/1" {
		t.Errorf("APIURL = %q", cfg.Trello.APIURL)
	}
	if cfg.SourceFile != "notes/TODO.md" {
		t.Errorf("SourceFile = %q", cfg.SourceFile)
	}
	if !cfg.Scan.ExcludeCompleted || cfg.Scan.GroupBy != models.GroupByH2 {
		t.Errorf("unexpected scan options %+v", cfg.Scan)
	}
	if cfg.Export.SingleDelay != 50*time.Millisecond || cfg.Export.GroupedDelay != time.Second {
		t.Errorf("unexpected delays %+v", cfg.Export)
	}
	if cfg.EventsPath != "custom.jsonl" {
		t.Errorf("EventsPath = %q", cfg.EventsPath)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".mdboard.yaml", "trello:\n  key: file-key\nscan:\n  group_by: h2\n")
	t.Setenv("TRELLO_KEY", "env-key")
	t.Setenv("GROUP_BY", "h3")

	cfg, err := newTestConfigManager(dir).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Trello.Key != "env-key" {
		t.Errorf("Key = %q, want env-key", cfg.Trello.Key)
	}
	if cfg.Scan.GroupBy != models.GroupByH3 {
		t.Errorf("GroupBy = %q, want h3", cfg.Scan.GroupBy)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".mdboard.yaml", "trello: [unclosed\n")

	if _, err := newTestConfigManager(dir).Load(); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

// --- Validate tests ---

func validConfig() *models.Config {
	return &models.Config{
		Trello:     models.TrelloConfig{Key: "k", Token: "t", BoardID: "b"},
		SourceFile: DefaultSourceFile,
		Scan:       models.ScanOptions{GroupBy: models.GroupByH4},
		Export:     models.ExportConfig{SingleDelay: DefaultSingleDelay, GroupedDelay: DefaultGroupedDelay},
	}
}

func TestValidate(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())

	tests := []struct {
		name        string
		mutate      func(*models.Config)
		requireCred bool
		wantErr     string
		missingCred bool
	}{
		{"valid", func(*models.Config) {}, true, "", false},
		{"missing key", func(c *models.Config) { c.Trello.Key = "" }, true, "TRELLO_KEY", true},
		{"missing all credentials", func(c *models.Config) { c.Trello = models.TrelloConfig{} }, true, "TRELLO_KEY, TRELLO_TOKEN, TRELLO_BOARD_ID", true},
		{"credentials optional for scan", func(c *models.Config) { c.Trello = models.TrelloConfig{} }, false, "", false},
		{"bad group_by", func(c *models.Config) { c.Scan.GroupBy = "h5" }, false, `group_by "h5" is invalid`, false},
		{"empty source", func(c *models.Config) { c.SourceFile = "" }, false, "source file must not be empty", false},
		{"negative delay", func(c *models.Config) { c.Export.GroupedDelay = -time.Second }, false, "export.grouped_delay must be non-negative", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cm.Validate(cfg, tt.requireCred)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantErr)
			}
			if errors.Is(err, ErrMissingCredentials) != tt.missingCred {
				t.Errorf("errors.Is(ErrMissingCredentials) = %v, want %v", !tt.missingCred, tt.missingCred)
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	if err := NewConfigurationManager(".").Validate(nil, false); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestResolveSourcePath(t *testing.T) {
	cm := NewConfigurationManager("/base")

	rel := cm.ResolveSourcePath(&models.Config{SourceFile: "docs/a.md"})
	if rel != filepath.Join("/base", "docs/a.md") {
		t.Errorf("relative path resolved to %q", rel)
	}

	abs := filepath.Join(t.TempDir(), "b.md")
	if got := cm.ResolveSourcePath(&models.Config{SourceFile: abs}); got != abs {
		t.Errorf("absolute path changed to %q", got)
	}
}

func TestParseGroupBy(t *testing.T) {
	tests := map[string]models.GroupBy{
		"":      models.GroupByH4,
		"h4":    models.GroupByH4,
		" H3 ":  models.GroupByH3,
		"h2":    models.GroupByH2,
		"weird": models.GroupBy("weird"),
	}
	for in, want := range tests {
		if got := ParseGroupBy(in); got != want {
			t.Errorf("ParseGroupBy(%q) = %q, want %q", in, got, want)
		}
	}
}
