package board

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const Version = "1.0.0"

// Attachment is an image-like blob attached to a task.
type Attachment struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
	Data      []byte `json:"data"`
}

func (a *Attachment) IsImage() bool {
	return a != nil && strings.HasPrefix(a.MediaType, "image/")
}

type Task struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Category  Category    `json:"category"`
	CreatedAt time.Time   `json:"created_at"`
	Image     *Attachment `json:"image,omitempty"`
}

type Column struct {
	Category Category `json:"category"`
	Tasks    []Task   `json:"tasks"`
}

type Board struct {
	Columns    []Column  `json:"columns"`
	LastUpdate time.Time `json:"last_update"`
	Version    string    `json:"version"`
}

func NewBoard() *Board {
	b := &Board{
		Version:    Version,
		LastUpdate: time.Now(),
	}
	for _, c := range Categories() {
		b.Columns = append(b.Columns, Column{Category: c, Tasks: []Task{}})
	}
	return b
}

func generateTaskID() string {
	return uuid.New().String()[:8]
}

// AddTask appends a new task to the column matching category. Unknown
// categories land in the first column.
// AddTask appends a task to its category's column and returns its ID.
func (b *Board) AddTask(title string, category Category, attachment *Attachment) string {
	id := generateTaskID()
	b.addTask(Task{
		ID:        id,
		Title:     title,
		Category:  category,
		CreatedAt: time.Now(),
		Image:     attachment,
	})
	return id
}

func (b *Board) addTask(task Task) {
	for ci, col := range b.Columns {
		if col.Category == task.Category {
			b.Columns[ci].Tasks = append(b.Columns[ci].Tasks, task)
			return
		}
	}

	if len(b.Columns) == 0 {
		b.Columns = append(b.Columns, Column{Category: DefaultCategory()})
	}
	task.Category = b.Columns[0].Category
	b.Columns[0].Tasks = append(b.Columns[0].Tasks, task)
}

func (b *Board) AllTasks() []Task {
	var tasks []Task
	for _, col := range b.Columns {
		tasks = append(tasks, col.Tasks...)
	}
	return tasks
}

func (b *Board) FindTask(id string) (Task, bool) {
	for _, col := range b.Columns {
		for _, t := range col.Tasks {
			if t.ID == id {
				return t, true
			}
		}
	}
	return Task{}, false
}

func (b *Board) removeTask(id string) (Task, bool) {
	for ci, col := range b.Columns {
		for ti, t := range col.Tasks {
			if t.ID == id {
				b.Columns[ci].Tasks = append(
					b.Columns[ci].Tasks[:ti],
					b.Columns[ci].Tasks[ti+1:]...,
				)
				return t, true
			}
		}
	}
	return Task{}, false
}

func (b *Board) DeleteTask(id string) bool {
	_, ok := b.removeTask(id)
	return ok
}

// MoveTask moves a task to the end of another column.
func (b *Board) MoveTask(id string, category Category) bool {
	t, ok := b.FindTask(id)
	if !ok {
		return false
	}
	if t.Category == category {
		return true
	}
	t, _ = b.removeTask(id)
	t.Category = category
	b.addTask(t)
	return true
}

// AdvanceTask moves a task to the next category and returns it.
func (b *Board) AdvanceTask(id string) (Task, bool) {
	t, ok := b.FindTask(id)
	if !ok {
		return Task{}, false
	}
	next := t.Category.Next()
	b.MoveTask(id, next)
	t.Category = next
	return t, true
}

func (b *Board) Counts() map[Category]int {
	counts := make(map[Category]int, len(b.Columns))
	for _, col := range b.Columns {
		counts[col.Category] += len(col.Tasks)
	}
	return counts
}

// Progress is the share of tasks in the Done column, 0-100.
func (b *Board) Progress() int {
	total := len(b.AllTasks())
	if total == 0 {
		return 0
	}
	return (b.Counts()[Done] * 100) / total
}
