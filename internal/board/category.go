package board

import (
	"fmt"
	"strings"
)

type Category string

const (
	Todo       Category = "todo"
	InProgress Category = "inprogress"
	Done       Category = "done"
)

// Categories returns every category in board order. The first one is the
// default for new tasks.
func Categories() []Category {
	return []Category{Todo, InProgress, Done}
}

func DefaultCategory() Category {
	return Categories()[0]
}

func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo", "to-do", "to do":
		return Todo, nil
	case "inprogress", "in-progress", "in progress", "doing":
		return InProgress, nil
	case "done":
		return Done, nil
	default:
		return "", fmt.Errorf("invalid category %q (expected todo|inprogress|done)", s)
	}
}

func (c Category) Valid() bool {
	switch c {
	case Todo, InProgress, Done:
		return true
	}
	return false
}

func (c Category) Label() string {
	switch c {
	case Todo:
		return "Todo"
	case InProgress:
		return "In Progress"
	case Done:
		return "Done"
	default:
		return "Task"
	}
}

func (c Category) Color() string {
	switch c {
	case Todo:
		return "#f44336" // Red
	case InProgress:
		return "#ffc107" // Yellow
	case Done:
		return "#4caf50" // Green
	default:
		return "#666666"
	}
}

// Next wraps around to the first category after the last one.
func (c Category) Next() Category {
	all := Categories()
	for i, cat := range all {
		if cat == c {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func (c Category) Prev() Category {
	all := Categories()
	for i, cat := range all {
		if cat == c {
			return all[(i+len(all)-1)%len(all)]
		}
	}
	return all[0]
}
