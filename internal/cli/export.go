package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/mdboard/internal/core"
)

var (
	exportFlags  scanFlags
	exportListID string
	exportDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Create Trello cards from the document's checklist items",
	Long: `Scan the markdown document and create one Trello card per checklist item.

By default cards are grouped into lists named after the nearest heading
(see --group-by). Existing open lists with the same name are reused; missing
ones are created at the top of the board. With --list-id (or TRELLO_LIST_ID)
every card goes to that list instead.

A card that fails to be created is logged and skipped; the run continues.
Use --dry-run to print the plan without calling Trello.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &exportFlags, !exportDryRun)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("list-id") {
			cfg.Trello.ListID = exportListID
		}

		items, err := scanSource(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if exportDryRun {
			printPlan(out, items, cfg)
			return nil
		}

		if NewBoardClient == nil {
			return fmt.Errorf("board client not initialized")
		}

		exporter := core.NewExporter(NewBoardClient(cfg.Trello), core.ExportOptions{
			ListID:       cfg.Trello.ListID,
			ListName:     cfg.Trello.ListName,
			SingleDelay:  cfg.Export.SingleDelay,
			GroupedDelay: cfg.Export.GroupedDelay,
			Out:          out,
			Logger:       Logger,
			Events:       EventLogger,
		})

		result, err := exporter.Export(commandContext(cmd), items)
		if err != nil {
			return fmt.Errorf("export aborted after %d/%d cards: %w", result.Created, result.Total, err)
		}
		Logger.Debugw("export finished", "run_id", result.RunID, "created", result.Created, "failed", result.Failed)
		return nil
	},
}

func init() {
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVar(&exportListID, "list-id", "", "Send every card to this existing list")
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "Print the export plan without calling Trello")
	rootCmd.AddCommand(exportCmd)
}
