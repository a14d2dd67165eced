package models

// GroupBy selects the heading level the list-name cascade starts from.
type GroupBy string

const (
	GroupByH4 GroupBy = "h4"
	GroupByH3 GroupBy = "h3"
	GroupByH2 GroupBy = "h2"
)

// Valid reports whether g is one of the supported grouping levels.
func (g GroupBy) Valid() bool {
	switch g {
	case GroupByH4, GroupByH3, GroupByH2:
		return true
	}
	return false
}

// ScanOptions controls which checklist lines become work items and how
// they are grouped into lists.
type ScanOptions struct {
	ExcludeCompleted bool    `yaml:"exclude_completed" mapstructure:"exclude_completed"`
	IncludeToplevel  bool    `yaml:"include_toplevel" mapstructure:"include_toplevel"`
	GroupBy          GroupBy `yaml:"group_by" mapstructure:"group_by"`
}

// WorkItem is one exportable checklist line, destined to become a card.
type WorkItem struct {
	ListName    string `json:"list_name" yaml:"list_name"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	IsDone      bool   `json:"is_done" yaml:"is_done"`
	Line        int    `json:"line" yaml:"line"`
}

// ExportGroup is a list name together with the work items routed to it,
// in the order they were scanned.
type ExportGroup struct {
	ListName string
	Items    []WorkItem
}
