package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	historyJSON  bool
	historySince string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Summarize past export runs",
	Long: `Display export activity recorded in the event log: runs, cards created
and failed, and lists created or reused.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if HistoryCalc == nil {
			return fmt.Errorf("history calculator not initialized (event log may be disabled)")
		}

		sinceTime, err := parseSinceDuration(historySince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		h, err := HistoryCalc.Calculate(sinceTime)
		if err != nil {
			return fmt.Errorf("calculating history: %w", err)
		}

		out := cmd.OutOrStdout()
		if historyJSON {
			data, err := json.MarshalIndent(h, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting history as JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Export history (since %s)\n\n", sinceTime.Format("2006-01-02"))
		fmt.Fprintf(out, "  %-24s %d\n", "Runs:", h.Runs)
		fmt.Fprintf(out, "  %-24s %d\n", "Cards created:", h.CardsCreated)
		fmt.Fprintf(out, "  %-24s %d\n", "Cards failed:", h.CardsFailed)
		fmt.Fprintf(out, "  %-24s %d\n", "Lists created:", h.ListsCreated)
		fmt.Fprintf(out, "  %-24s %d\n", "Lists reused:", h.ListsReused)

		if len(h.CardsByList) > 0 {
			fmt.Fprintln(out, "\n  Cards by list:")
			names := make([]string, 0, len(h.CardsByList))
			for name := range h.CardsByList {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "    %-20s %d\n", name+":", h.CardsByList[name])
			}
		}

		if h.LastRunID != "" {
			fmt.Fprintf(out, "\n  %-24s %s\n", "Last run:", h.LastRunID)
		}
		if h.NewestEvent != nil {
			fmt.Fprintf(out, "  %-24s %s\n", "Newest event:", h.NewestEvent.Format(time.RFC3339))
		}

		return nil
	},
}

// parseSinceDuration parses a human-friendly duration string like "7d", "30d",
// or "24h" and returns the corresponding time in the past.
func parseSinceDuration(s string) (time.Time, error) {
	now := time.Now().UTC()
	s = strings.TrimSpace(s)
	if s == "" {
		return now.AddDate(0, 0, -7), nil
	}

	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day duration %q", s)
		}
		return now.AddDate(0, 0, -days), nil
	}

	if strings.HasSuffix(s, "h") {
		hours, err := strconv.Atoi(strings.TrimSuffix(s, "h"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid hour duration %q", s)
		}
		return now.Add(-time.Duration(hours) * time.Hour), nil
	}

	return time.Time{}, fmt.Errorf("unsupported duration format %q (use e.g. 7d, 30d, 24h)", s)
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output history as JSON")
	historyCmd.Flags().StringVar(&historySince, "since", "30d", "Time window (e.g. 7d, 30d, 24h)")
	rootCmd.AddCommand(historyCmd)
}
