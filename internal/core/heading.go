package core

import (
	"strings"
	"unicode"

	"github.com/valter-silva-au/mdboard/pkg/models"
)

// DefaultListName is used when no heading has been seen yet.
const DefaultListName = "General"

// HeadingText keeps a heading as written and with markup stripped.
type HeadingText struct {
	Raw   string
	Clean string
}

func newHeadingText(raw string) HeadingText {
	return HeadingText{Raw: raw, Clean: CleanText(raw)}
}

// HeadingContext tracks the active level-2, level-3 and level-4 headings.
// Opening a heading resets every deeper level.
type HeadingContext struct {
	Outer  HeadingText
	Middle HeadingText
	Inner  HeadingText
}

// SetOuter opens a level-2 heading.
func (h *HeadingContext) SetOuter(raw string) {
	h.Outer = newHeadingText(raw)
	h.Middle = HeadingText{}
	h.Inner = HeadingText{}
}

// SetMiddle opens a level-3 heading.
func (h *HeadingContext) SetMiddle(raw string) {
	h.Middle = newHeadingText(raw)
	h.Inner = HeadingText{}
}

// SetInner opens a level-4 heading.
func (h *HeadingContext) SetInner(raw string) {
	h.Inner = newHeadingText(raw)
}

// Path joins the non-empty cleaned levels, outermost first.
func (h *HeadingContext) Path() string {
	parts := make([]string, 0, 3)
	for _, level := range []string{h.Outer.Clean, h.Middle.Clean, h.Inner.Clean} {
		if level != "" {
			parts = append(parts, level)
		}
	}
	return strings.Join(parts, " / ")
}

// apply updates the context when line is a level 2-4 heading and reports
// whether it was one.
func (h *HeadingContext) apply(line string) bool {
	switch {
	case strings.HasPrefix(line, "## "):
		h.SetOuter(headingBody(line, "##"))
	case strings.HasPrefix(line, "### "):
		h.SetMiddle(headingBody(line, "###"))
	case strings.HasPrefix(line, "#### "):
		h.SetInner(headingBody(line, "####"))
	default:
		return false
	}
	return true
}

func headingBody(line, marker string) string {
	return strings.TrimLeftFunc(strings.TrimPrefix(line, marker), unicode.IsSpace)
}

// listNameCandidates returns the ordered list-name sources for groupBy:
// decorated headings first, then their cleaned forms, deepest eligible
// level first within each pass.
func listNameCandidates(h HeadingContext, groupBy models.GroupBy) []func() string {
	levels := func(pick func(HeadingText) string) []func() string {
		var out []func() string
		if groupBy == models.GroupByH4 {
			out = append(out, func() string { return pick(h.Inner) })
		}
		if groupBy == models.GroupByH4 || groupBy == models.GroupByH3 {
			out = append(out, func() string { return pick(h.Middle) })
		}
		return append(out, func() string { return pick(h.Outer) })
	}

	raw := levels(func(t HeadingText) string { return t.Raw })
	clean := levels(func(t HeadingText) string { return t.Clean })
	return append(raw, clean...)
}

// ChooseListName resolves the grouping key for an item under heading
// context h, falling back to DefaultListName.
func ChooseListName(h HeadingContext, groupBy models.GroupBy) string {
	for _, candidate := range listNameCandidates(h, groupBy) {
		if name := candidate(); name != "" {
			return name
		}
	}
	return DefaultListName
}
