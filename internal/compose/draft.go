package compose

import "github.com/WillyV3/todoboard/internal/board"

// CategorySelector is the single-select widget that owns the chosen category.
type CategorySelector interface {
	Selected() board.Category
}

// StaticCategory is a selector fixed to one category, e.g. from a CLI flag.
type StaticCategory board.Category

func (c StaticCategory) Selected() board.Category {
	if !board.Category(c).Valid() {
		return board.DefaultCategory()
	}
	return board.Category(c)
}

type resettable interface {
	Reset()
}

// Draft holds the in-progress title; the category is read from the selector.
type Draft struct {
	title      string
	categories CategorySelector
}

func NewDraft(categories CategorySelector) *Draft {
	if categories == nil {
		categories = StaticCategory(board.DefaultCategory())
	}
	return &Draft{categories: categories}
}

func (d *Draft) SetTitle(title string) { d.title = title }

func (d *Draft) Title() string { return d.title }

func (d *Draft) Category() board.Category {
	c := d.categories.Selected()
	if !c.Valid() {
		return board.DefaultCategory()
	}
	return c
}

// Reset clears the title and, when the selector supports it, the category.
func (d *Draft) Reset() {
	d.title = ""
	if r, ok := d.categories.(resettable); ok {
		r.Reset()
	}
}
