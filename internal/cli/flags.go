package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/mdboard/internal/core"
	"github.com/valter-silva-au/mdboard/pkg/models"
)

// scanFlags are the scanner overrides shared by export, scan and preview.
type scanFlags struct {
	file             string
	groupBy          string
	excludeCompleted bool
	includeToplevel  bool
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Markdown document to read (default docs/SYSTEM_ANALYSIS.md)")
	cmd.Flags().StringVar(&f.groupBy, "group-by", "", "Heading level lists are named after: h4, h3 or h2")
	cmd.Flags().BoolVar(&f.excludeCompleted, "exclude-completed", false, "Skip items already checked off")
	cmd.Flags().BoolVar(&f.includeToplevel, "include-toplevel", false, "Include top-level container items")
}

// apply overlays flags the user actually set onto cfg.
func (f *scanFlags) apply(cmd *cobra.Command, cfg *models.Config) {
	if cmd.Flags().Changed("file") {
		cfg.SourceFile = f.file
	}
	if cmd.Flags().Changed("group-by") {
		cfg.Scan.GroupBy = core.ParseGroupBy(f.groupBy)
	}
	if cmd.Flags().Changed("exclude-completed") {
		cfg.Scan.ExcludeCompleted = f.excludeCompleted
	}
	if cmd.Flags().Changed("include-toplevel") {
		cfg.Scan.IncludeToplevel = f.includeToplevel
	}
}

// loadConfig loads configuration, applies flag overrides and validates it.
func loadConfig(cmd *cobra.Command, flags *scanFlags, requireCredentials bool) (*models.Config, error) {
	if ConfigMgr == nil {
		return nil, fmt.Errorf("configuration manager not initialized")
	}
	cfg, err := ConfigMgr.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if flags != nil {
		flags.apply(cmd, cfg)
	}
	if err := ConfigMgr.Validate(cfg, requireCredentials); err != nil {
		return nil, err
	}
	return cfg, nil
}

// scanSource reads and scans the configured document.
func scanSource(cfg *models.Config) ([]models.WorkItem, error) {
	path := ConfigMgr.ResolveSourcePath(cfg)
	items, err := core.NewDocumentScanner(cfg.Scan, cfg.SourceFile).ScanFile(path)
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return items, nil
}
