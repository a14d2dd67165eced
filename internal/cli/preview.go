package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/valter-silva-au/mdboard/internal/core"
	"github.com/valter-silva-au/mdboard/pkg/models"
)

// Preview panel indices.
const (
	panelGroups = iota
	panelItems
	panelCount
)

var (
	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type previewModel struct {
	activePanel int
	width       int
	height      int

	groups      []models.ExportGroup
	groupCursor int
	itemCursor  int

	load    func() ([]models.WorkItem, error)
	loading bool
	err     error
}

// itemsLoadedMsg carries a finished scan back to the model.
type itemsLoadedMsg struct {
	groups []models.ExportGroup
	err    error
}

func newPreviewModel(load func() ([]models.WorkItem, error)) previewModel {
	return previewModel{
		activePanel: panelGroups,
		load:        load,
		loading:     true,
	}
}

func (m previewModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m previewModel) loadCmd() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		items, err := load()
		if err != nil {
			return itemsLoadedMsg{err: err}
		}
		return itemsLoadedMsg{groups: core.GroupByList(items)}
	}
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			m.activePanel = (m.activePanel + 1) % panelCount
		case "shift+tab", "left", "h":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
		case "down", "j":
			m.move(1)
		case "up", "k":
			m.move(-1)
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case itemsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.groups = msg.groups
			m.groupCursor = 0
			m.itemCursor = 0
		}
		return m, nil
	}

	return m, nil
}

// move shifts the cursor of the active panel by delta, clamped to its bounds.
func (m *previewModel) move(delta int) {
	if len(m.groups) == 0 {
		return
	}
	if m.activePanel == panelGroups {
		m.groupCursor = clamp(m.groupCursor+delta, len(m.groups))
		m.itemCursor = 0
		return
	}
	m.itemCursor = clamp(m.itemCursor+delta, len(m.groups[m.groupCursor].Items))
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m previewModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" mdboard preview ")
	help := helpStyle.Render("tab: switch panel | j/k: move | r: rescan | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Scanning document...\n\n%s", title, help)
	}
	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}
	if len(m.groups) == 0 {
		return fmt.Sprintf("%s\n\n  No TODO items found.\n\n%s", title, help)
	}

	available := m.width - 2
	groupWidth := available / 3
	if groupWidth < 20 {
		groupWidth = 20
	}
	itemWidth := available - groupWidth - 8
	if itemWidth < 20 {
		itemWidth = 20
	}

	groups := m.applyPanelStyle(panelGroups, m.renderGroups(), groupWidth)
	items := m.applyPanelStyle(panelItems, m.renderItems(), itemWidth)
	body := lipgloss.JoinHorizontal(lipgloss.Top, groups, items)

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m previewModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m previewModel) renderGroups() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Lists"))
	b.WriteString("\n")

	total := 0
	for i, g := range m.groups {
		line := fmt.Sprintf("%s (%d)", g.ListName, len(g.Items))
		if i == m.groupCursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		total += len(g.Items)
	}
	b.WriteString(fmt.Sprintf("\n  Total: %d cards", total))
	return b.String()
}

func (m previewModel) renderItems() string {
	g := m.groups[m.groupCursor]

	var b strings.Builder
	b.WriteString(headerStyle.Render(g.ListName))
	b.WriteString("\n")

	for i, it := range g.Items {
		line := fmt.Sprintf("%s %s", checkbox(it.IsDone), it.Title)
		if i == m.itemCursor && m.activePanel == panelItems {
			b.WriteString(cursorStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.itemCursor < len(g.Items) {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(g.Items[m.itemCursor].Description))
	}
	return b.String()
}

var previewFlags scanFlags

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Browse the lists and cards an export would create",
	Long: `Launch an interactive terminal view of the scanned document: lists on the
left, the cards of the selected list on the right.

Navigate between panels with Tab, move with j/k, rescan with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &previewFlags, false)
		if err != nil {
			return err
		}
		load := func() ([]models.WorkItem, error) { return scanSource(cfg) }
		p := tea.NewProgram(newPreviewModel(load), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	previewFlags.register(previewCmd)
	rootCmd.AddCommand(previewCmd)
}
