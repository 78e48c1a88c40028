package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/WillyV3/todoboard/internal/board"
	"github.com/WillyV3/todoboard/internal/compose"
	"github.com/WillyV3/todoboard/internal/config"
)

type Options struct {
	Board   *board.Board
	Store   board.Store
	Logger  *zap.Logger
	Compose config.ComposeConfig
}

type Model struct {
	tasks        *taskList
	modal        modalModel
	cursor       int
	width        int
	height       int
	progress     progress.Model
	showHelp     bool
	statusMsg    string
	statusExpire time.Time
	quitPending  bool
	saveErr      error
	log          *zap.Logger
}

type tickMsg time.Time

func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	b := opts.Board
	if b == nil {
		b = board.NewBoard()
	}
	tasks := &taskList{board: b, store: opts.Store, log: log}

	maxBytes := opts.Compose.MaxAttachmentBytes
	if maxBytes <= 0 {
		maxBytes = compose.DefaultMaxAttachmentBytes
	}

	return Model{
		tasks: tasks,
		modal: newModal(modalOptions{
			Tasks:              tasks,
			ResetDraft:         opts.Compose.ResetDraft,
			MaxAttachmentBytes: maxBytes,
			PickerDir:          opts.Compose.PickerDir,
			Logger:             log,
			Colors:             detectPalette(),
		}),
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(50),
		),
		log: log,
	}
}

// Run starts the full-screen program. A board that could not be saved on
// the way out is reported as an error.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.saveErr != nil {
		return fmt.Errorf("board not saved: %w", m.saveErr)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(msg.Width-40, 10)
		m.modal, _ = m.modal.Update(msg)
		return m, nil

	case tickMsg:
		return m, tick()

	case fadeFrameMsg:
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd

	case taskSubmittedMsg:
		if err := m.tasks.takeErr(); err != nil {
			m.setStatus(fmt.Sprintf("Error saving: %v", err))
		} else {
			m.setStatus("Task added: " + msg.title)
		}
		m.selectTask(m.tasks.last)
		return m, nil
	}

	if m.modal.state.IsOpen() {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
			return m.quit(true)
		}
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if !key.Matches(k, keys.Quit) {
		m.quitPending = false
	}

	switch {
	case key.Matches(k, keys.Quit):
		return m.quit(k.String() == "ctrl+c" || m.quitPending)

	case key.Matches(k, keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(k, keys.Refresh):
		if err := m.tasks.reload(); err != nil {
			m.setStatus(fmt.Sprintf("Error: %v", err))
		} else {
			m.cursor = 0
			m.setStatus("Board reloaded!")
		}

	case key.Matches(k, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(k, keys.Down):
		if m.cursor < len(m.tasks.board.AllTasks())-1 {
			m.cursor++
		}

	case key.Matches(k, keys.Advance):
		m.advanceTask()

	case key.Matches(k, keys.Delete):
		m.deleteTask()

	case key.Matches(k, keys.Add):
		return m, m.modal.open()
	}

	return m, nil
}

// quit saves the board and exits. When the save fails and force is false
// the model stays up and the next quit key exits regardless.
func (m Model) quit(force bool) (tea.Model, tea.Cmd) {
	if err := m.tasks.save(); err != nil {
		if !force {
			m.quitPending = true
			m.setStatus(fmt.Sprintf("Error saving: %v (press q again to quit anyway)", err))
			return m, nil
		}
		m.log.Error("quit without saving", zap.Error(err))
		m.saveErr = err
	}
	if err := m.modal.previews.Release(); err != nil {
		m.log.Warn("release preview", zap.Error(err))
	}
	m.log.Info("quit")
	return m, tea.Quit
}

func (m *Model) selectedTask() (board.Task, bool) {
	tasks := m.tasks.board.AllTasks()
	if m.cursor >= len(tasks) {
		return board.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) advanceTask() {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	moved, _ := m.tasks.board.AdvanceTask(t.ID)
	m.log.Info("task moved", zap.String("id", t.ID), zap.String("category", string(moved.Category)))
	if err := m.tasks.save(); err != nil {
		m.setStatus(fmt.Sprintf("Error saving: %v", err))
		return
	}
	m.setStatus(fmt.Sprintf("Moved to %s", moved.Category.Label()))
	m.selectTask(t.ID)
}

func (m *Model) selectTask(id string) {
	for i, task := range m.tasks.board.AllTasks() {
		if task.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *Model) deleteTask() {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	m.tasks.board.DeleteTask(t.ID)
	m.log.Info("task deleted", zap.String("id", t.ID))
	if err := m.tasks.save(); err != nil {
		m.setStatus(fmt.Sprintf("Error saving: %v", err))
		return
	}
	m.setStatus("Task deleted")
	if m.cursor > 0 && m.cursor >= len(m.tasks.board.AllTasks()) {
		m.cursor--
	}
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusExpire = time.Now().Add(3 * time.Second)
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.modal.visible() {
		return m.modal.overlay(m.width, m.height)
	}
	return m.boardView()
}

func (m Model) boardView() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorAccent)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color(colorAccent)).
		Width(max(m.width-4, 10)).
		Align(lipgloss.Center)

	b.WriteString(titleStyle.Render("TODOBOARD"))
	b.WriteString("\n\n")

	total := len(m.tasks.board.AllTasks())
	done := m.tasks.board.Counts()[board.Done]
	pct := m.tasks.board.Progress()
	percent := float64(pct) / 100

	progressLabel := fmt.Sprintf("Progress: %d/%d done (%d%%)", done, total, pct)
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(progressLabel))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	if total == 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Italic(true).
			Render("No tasks yet. Press a to add one."))
		b.WriteString("\n")
	}

	i := 0
	for _, col := range m.tasks.board.Columns {
		headerStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(col.Category.Color())).
			MarginTop(1)

		b.WriteString(headerStyle.Render(col.Category.Label()))
		b.WriteString(fmt.Sprintf(" (%d)\n", len(col.Tasks)))

		for _, task := range col.Tasks {
			b.WriteString(m.taskLine(task, i == m.cursor))
			b.WriteString("\n")
			i++
		}
	}

	if time.Now().Before(m.statusExpire) {
		b.WriteString("\n")
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAccent)).
			Italic(true)
		b.WriteString(statusStyle.Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(m.helpView())

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(b.String())
}

func (m Model) taskLine(task board.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "→ "
	}

	checkbox := "☐"
	if task.Category == board.Done {
		checkbox = "☑"
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(colorText))
	if task.Category == board.Done {
		style = style.Foreground(lipgloss.Color(colorMuted)).Strikethrough(true)
	}
	if selected {
		style = style.Bold(true).Foreground(lipgloss.Color(colorAccent))
	}

	line := fmt.Sprintf("%s%s %s", cursor, checkbox, task.Title)
	if task.Image != nil {
		line += " 🖼"
	}
	return style.Render(line)
}

func (m Model) helpView() string {
	if !m.showHelp {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Render("Press ? for help • a to add task • enter to move • q to quit")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorSubtle)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorMuted)).
		Padding(0, 1)

	help := []string{
		"Navigation:",
		"  ↑/k      - Move up",
		"  ↓/j      - Move down",
		"",
		"Actions:",
		"  enter/␣  - Move task to next column",
		"  d/x      - Delete task",
		"  a/n      - Add a task",
		"  r        - Reload board",
		"",
		"Add a Task:",
		"  tab      - Next field",
		"  ←/→      - Change category",
		"  enter    - Select / add",
		"  ctrl+s   - Add task",
		"  esc      - Close",
		"",
		"Other:",
		"  ?        - Toggle help",
		"  q/ctrl+c - Quit",
	}

	return helpStyle.Render(strings.Join(help, "\n"))
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
