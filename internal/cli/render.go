package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/valter-silva-au/mdboard/internal/core"
	"github.com/valter-silva-au/mdboard/pkg/models"
)

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func checkbox(done bool) string {
	if done {
		return doneStyle.Render("[x]")
	}
	return pendingStyle.Render("[ ]")
}

// printGroups writes items grouped by list name, one line per item.
func printGroups(w io.Writer, groups []models.ExportGroup) {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", headerStyle.Render(g.ListName), dimStyle.Render(fmt.Sprintf("(%d)", len(g.Items))))
		for _, it := range g.Items {
			fmt.Fprintf(w, "  %s %s %s\n", checkbox(it.IsDone), it.Title, dimStyle.Render(fmt.Sprintf("line %d", it.Line)))
		}
	}
}

// printPlan describes what an export would do without calling the board.
func printPlan(w io.Writer, items []models.WorkItem, cfg *models.Config) {
	fmt.Fprintln(w, titleStyle.Render("Export plan (dry run)"))
	fmt.Fprintln(w)

	if len(items) == 0 {
		fmt.Fprintln(w, "No TODO items found to export.")
		return
	}

	if cfg.SingleDestination() {
		fmt.Fprintf(w, "%d cards -> list %s (%s)\n\n", len(items), cfg.Trello.ListID, cfg.Trello.ListName)
		printGroups(w, []models.ExportGroup{{ListName: cfg.Trello.ListName, Items: items}})
		return
	}

	groups := core.GroupByList(items)
	fmt.Fprintf(w, "%d cards across %d lists (group by %s)\n\n", len(items), len(groups), cfg.Scan.GroupBy)
	printGroups(w, groups)
}
