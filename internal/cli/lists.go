package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Show the open lists on the configured board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, nil, true)
		if err != nil {
			return err
		}
		if NewBoardClient == nil {
			return fmt.Errorf("board client not initialized")
		}

		lists, err := NewBoardClient(cfg.Trello).GetOpenLists(commandContext(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(lists) == 0 {
			fmt.Fprintln(out, "No open lists on this board.")
			return nil
		}
		fmt.Fprintf(out, "%-26s %s\n", "ID", "NAME")
		for _, l := range lists {
			fmt.Fprintf(out, "%-26s %s\n", l.ID, l.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listsCmd)
}
