package core

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/valter-silva-au/mdboard/pkg/models"
)

// ErrSourceNotFound is returned when the markdown document does not exist.
var ErrSourceNotFound = errors.New("source document not found")

// checklistPattern matches "- [ ] text" and "- [x] text" at any indent.
var checklistPattern = regexp.MustCompile(`^(\s*)-\s*\[( |x|X)\]\s+(.*)$`)

// DocumentScanner turns a markdown document into work items.
type DocumentScanner interface {
	Scan(content string) []models.WorkItem
	ScanFile(path string) ([]models.WorkItem, error)
}

type documentScanner struct {
	opts models.ScanOptions
	// sourceLabel is the document reference written into card descriptions.
	sourceLabel string
}

// NewDocumentScanner creates a DocumentScanner. sourceLabel is recorded in
// each item's description as the "Source:" line.
func NewDocumentScanner(opts models.ScanOptions, sourceLabel string) DocumentScanner {
	if opts.GroupBy == "" {
		opts.GroupBy = models.GroupByH4
	}
	return &documentScanner{opts: opts, sourceLabel: sourceLabel}
}

// ScanFile reads path in full and scans it.
func (s *documentScanner) ScanFile(path string) ([]models.WorkItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s.Scan(string(data)), nil
}

// Scan makes a single forward pass over content and returns the checklist
// items that survive the completed/top-level filters, in document order.
func (s *documentScanner) Scan(content string) []models.WorkItem {
	var (
		ctx   HeadingContext
		items []models.WorkItem
	)

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimRightFunc(raw, unicode.IsSpace)
		if ctx.apply(line) {
			continue
		}

		m := checklistPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		indent, mark, text := m[1], m[2], m[3]

		isDone := strings.EqualFold(mark, "x")
		if isDone && s.opts.ExcludeCompleted {
			continue
		}
		// Top-level items are usually containers for the nested leaves.
		if len(indent) == 0 && !s.opts.IncludeToplevel {
			continue
		}

		items = append(items, models.WorkItem{
			ListName:    ChooseListName(ctx, s.opts.GroupBy),
			Title:       BuildCardTitle(text),
			Description: s.describe(&ctx, indent, isDone),
			IsDone:      isDone,
			Line:        i + 1,
		})
	}

	return items
}

// describe composes the card description, one fact per line.
func (s *documentScanner) describe(ctx *HeadingContext, indent string, isDone bool) string {
	lines := []string{"Source: " + s.sourceLabel}
	if path := ctx.Path(); path != "" {
		lines = append(lines, "Context: "+path)
	}
	status := "Pending"
	if isDone {
		status = "Completed"
	}
	lines = append(lines, "Status: "+status)
	if depth := len(indent) / 2; depth > 0 {
		lines = append(lines, fmt.Sprintf("Depth: %d", depth))
	}
	return strings.Join(lines, "\n")
}
