package cli

import (
	"go.uber.org/zap"

	"github.com/valter-silva-au/mdboard/internal/core"
	"github.com/valter-silva-au/mdboard/internal/observability"
	"github.com/valter-silva-au/mdboard/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	ConfigMgr   core.ConfigurationManager
	Logger      = zap.NewNop().Sugar()
	EventLogger core.EventLogger
	HistoryCalc observability.HistoryCalculator

	// NewBoardClient builds the board API client once configuration is known.
	NewBoardClient func(cfg models.TrelloConfig) core.BoardClient
)
