package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/valter-silva-au/mdboard/internal/core"
)

var (
	scanCmdFlags scanFlags
	scanFormat   string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the checklist items that would be exported",
	Long: `Scan the markdown document and print the work items it yields, grouped
by the list each would be sent to. No Trello credentials are needed.

Output formats: table (default), json, yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &scanCmdFlags, false)
		if err != nil {
			return err
		}

		items, err := scanSource(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch scanFormat {
		case "json":
			data, err := json.MarshalIndent(items, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting items as JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(items); err != nil {
				return fmt.Errorf("formatting items as YAML: %w", err)
			}
			if err := enc.Close(); err != nil {
				return fmt.Errorf("formatting items as YAML: %w", err)
			}
		case "table", "":
			if len(items) == 0 {
				fmt.Fprintln(out, "No TODO items found.")
				return nil
			}
			groups := core.GroupByList(items)
			printGroups(out, groups)
			fmt.Fprintf(out, "\n%d items in %d lists\n", len(items), len(groups))
		default:
			return fmt.Errorf("unsupported format %q (use table, json or yaml)", scanFormat)
		}
		return nil
	},
}

func init() {
	scanCmdFlags.register(scanCmd)
	scanCmd.Flags().StringVarP(&scanFormat, "format", "o", "table", "Output format: table, json, yaml")
	rootCmd.AddCommand(scanCmd)
}
