package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/WillyV3/todoboard/internal/board"
)

// categoryPicker is a radio group over the board's categories. Exactly one
// is always selected.
type categoryPicker struct {
	categories []board.Category
	index      int
}

func newCategoryPicker() *categoryPicker {
	return &categoryPicker{categories: board.Categories()}
}

func (p *categoryPicker) Selected() board.Category {
	return p.categories[p.index]
}

func (p *categoryPicker) Next() {
	p.index = (p.index + 1) % len(p.categories)
}

func (p *categoryPicker) Prev() {
	p.index = (p.index + len(p.categories) - 1) % len(p.categories)
}

func (p *categoryPicker) Reset() { p.index = 0 }

func (p *categoryPicker) View(focused bool) string {
	parts := make([]string, 0, len(p.categories))
	for i, c := range p.categories {
		mark := "( )"
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(colorSubtle))
		if i == p.index {
			mark = "(•)"
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color())).Bold(true)
			if focused {
				style = style.Underline(true)
			}
		}
		parts = append(parts, style.Render(mark+" "+c.Label()))
	}
	return strings.Join(parts, "  ")
}
