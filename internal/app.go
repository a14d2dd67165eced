// Package internal provides the App struct that wires the mdboard
// components together and initializes the CLI layer.
package internal

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/valter-silva-au/mdboard/internal/cli"
	"github.com/valter-silva-au/mdboard/internal/core"
	"github.com/valter-silva-au/mdboard/internal/integration"
	"github.com/valter-silva-au/mdboard/internal/logging"
	"github.com/valter-silva-au/mdboard/internal/observability"
	"github.com/valter-silva-au/mdboard/pkg/models"
)

// App holds the service dependencies for mdboard.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager

	Logger *zap.SugaredLogger

	// Observability
	EventLog    observability.EventLog
	HistoryCalc observability.HistoryCalculator
}

// NewApp creates and wires the mdboard components. basePath is the
// directory holding .mdboard.yaml and the event log.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	eventsPath := core.DefaultEventsFile
	if cfg, err := app.ConfigMgr.Load(); err == nil && cfg.EventsPath != "" {
		// A broken config file is reported by the command that needs it.
		eventsPath = cfg.EventsPath
	}

	// --- Logging ---
	app.Logger = logging.New(false)

	// --- Observability ---
	if !filepath.IsAbs(eventsPath) {
		eventsPath = filepath.Join(basePath, eventsPath)
	}
	eventLog, err := observability.NewJSONLEventLog(eventsPath)
	if err != nil {
		// Non-fatal: exports still run without history.
		app.Logger.Debugw("event log disabled", "path", eventsPath, "error", err)
	} else {
		app.EventLog = eventLog
		app.HistoryCalc = observability.NewHistoryCalculator(eventLog)
	}

	// --- Wire CLI package-level variables ---
	cli.ConfigMgr = app.ConfigMgr
	cli.Logger = app.Logger
	cli.HistoryCalc = app.HistoryCalc
	if app.EventLog != nil {
		cli.EventLogger = &eventLogAdapter{log: app.EventLog}
	}
	cli.NewBoardClient = func(cfg models.TrelloConfig) core.BoardClient {
		return integration.NewTrelloClient(cfg)
	}

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the mdboard working directory. It checks
// MDBOARD_HOME, then walks up from the current directory looking for
// .mdboard.yaml, then falls back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("MDBOARD_HOME"); home != "" {
		return home
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	for dir := cwd; ; {
		if _, err := os.Stat(filepath.Join(dir, ".mdboard.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cwd
}

// --- Adapters ---

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
	now func() time.Time
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	now := time.Now
	if a.now != nil {
		now = a.now
	}

	level := observability.LevelInfo
	if eventType == core.EventCardFailed {
		level = observability.LevelError
	}

	runID, _ := data["run_id"].(string)
	fields := make(map[string]any, len(data))
	for k, v := range data {
		if k != "run_id" {
			fields[k] = v
		}
	}

	return a.log.Write(observability.Event{
		Time:    now().UTC(),
		Level:   level,
		Type:    eventType,
		RunID:   runID,
		Message: eventType,
		Data:    fields,
	})
}
