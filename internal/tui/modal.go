package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/WillyV3/todoboard/internal/compose"
)

// Extensions offered by the file picker
var imageExtensions = []string{
	".png", ".PNG", ".jpg", ".JPG", ".jpeg", ".JPEG", ".gif", ".GIF",
	".webp", ".WEBP", ".bmp", ".BMP", ".svg", ".tif", ".tiff", ".heic",
}

type modalField int

const (
	fieldTitle modalField = iota
	fieldCategory
	fieldUpload
	fieldPreview
	fieldSubmit
	fieldCount
)

// taskSubmittedMsg is emitted after the workflow accepted a submit.
type taskSubmittedMsg struct {
	title string
}

// modalModel is the "Add a Task" dialog.
type modalModel struct {
	state    *compose.ModalState
	workflow *compose.Workflow
	picker   *categoryPicker
	previews *compose.PreviewTracker
	log      *zap.Logger

	input   textinput.Model
	files   filepicker.Model
	picking bool
	focus   modalField
	fade    fade
	colors  palette

	maxAttachmentBytes int64
	pickerDir          string
	width              int
	height             int
}

type modalOptions struct {
	Tasks              compose.TaskList
	State              *compose.ModalState
	ResetDraft         bool
	MaxAttachmentBytes int64
	PickerDir          string
	Logger             *zap.Logger
	Colors             palette
}

func newModal(opts modalOptions) modalModel {
	picker := newCategoryPicker()
	var wopts []compose.Option
	if opts.ResetDraft {
		wopts = append(wopts, compose.WithDraftReset())
	}
	state := opts.State
	if state == nil {
		state = &compose.ModalState{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	t := textinput.New()
	t.Cursor.Style = cursorStyle
	t.Placeholder = "Enter a task ..."
	t.CharLimit = 200

	return modalModel{
		state:              state,
		workflow:           compose.NewWorkflow(opts.Tasks, state, compose.NewDraft(picker), &compose.AttachmentHolder{}, wopts...),
		picker:             picker,
		previews:           &compose.PreviewTracker{},
		log:                log,
		input:              t,
		colors:             opts.Colors,
		maxAttachmentBytes: opts.MaxAttachmentBytes,
		pickerDir:          opts.PickerDir,
	}
}

// visible is true while open and during the exit fade.
func (m modalModel) visible() bool {
	return m.state.IsOpen() || m.fade.leaving()
}

// open starts a dialog session. Whatever draft was left from the previous
// session is shown again.
func (m *modalModel) open() tea.Cmd {
	m.state.Open()
	m.picking = false
	m.input.SetValue(m.workflow.Draft().Title())
	m.input.CursorEnd()
	m.setFocus(fieldTitle)
	m.syncPreview()
	return tea.Batch(textinput.Blink, m.fade.in(time.Now()))
}

// close ends the session without touching the draft.
func (m *modalModel) close() tea.Cmd {
	m.state.Close()
	return m.endSession()
}

func (m *modalModel) endSession() tea.Cmd {
	m.picking = false
	m.input.Blur()
	if err := m.previews.Release(); err != nil {
		m.log.Warn("release preview", zap.Error(err))
	}
	return m.fade.out(time.Now())
}

func (m *modalModel) submit() tea.Cmd {
	title := m.workflow.Draft().Title()
	if res := m.workflow.Submit(); !res.Accepted() {
		return nil
	}
	m.input.SetValue(m.workflow.Draft().Title())
	cmd := m.endSession()
	return tea.Batch(cmd, func() tea.Msg { return taskSubmittedMsg{title: title} })
}

func (m *modalModel) setAttachment(path string) {
	a, err := compose.LoadAttachment(path, m.maxAttachmentBytes)
	if err != nil {
		m.log.Warn("load attachment", zap.String("path", path), zap.Error(err))
		return
	}
	// Non-images are dropped without telling the user.
	m.workflow.Attachment().Set(a)
}

func (m *modalModel) clearAttachment() {
	m.workflow.Attachment().Set(nil)
	if m.focus == fieldPreview {
		m.setFocus(fieldUpload)
	}
}

func (m *modalModel) syncPreview() {
	if !m.state.IsOpen() {
		return
	}
	if _, err := m.previews.Sync(m.workflow.Attachment()); err != nil {
		m.log.Warn("acquire preview", zap.Error(err))
	}
}

func (m modalModel) fieldEnabled(f modalField) bool {
	switch f {
	case fieldPreview:
		return m.workflow.Attachment().Get() != nil
	case fieldSubmit:
		return m.workflow.CanSubmit()
	}
	return true
}

func (m *modalModel) moveFocus(delta int) tea.Cmd {
	f := m.focus
	for i := 0; i < int(fieldCount); i++ {
		f = modalField((int(f) + delta + int(fieldCount)) % int(fieldCount))
		if m.fieldEnabled(f) {
			break
		}
	}
	return m.setFocus(f)
}

func (m *modalModel) setFocus(f modalField) tea.Cmd {
	m.focus = f
	if f == fieldTitle {
		m.input.PromptStyle = focusedStyle
		m.input.TextStyle = focusedStyle
		return m.input.Focus()
	}
	m.input.Blur()
	m.input.PromptStyle = noStyle
	m.input.TextStyle = noStyle
	return nil
}

func (m *modalModel) openFilePicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = imageExtensions
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.ShowHidden = false
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.AutoHeight = false
	fp.Height = filePickerHeight(m.height)
	fp.Styles.Cursor = focusedStyle
	fp.Styles.Selected = focusedStyle.Bold(true)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(lipgloss.Color(colorHeading))
	fp.Styles.DisabledFile = blurredStyle
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "up"),
	)

	dir := strings.TrimSpace(m.pickerDir)
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = home
		}
	}
	if dir == "" {
		dir = "."
	}
	fp.CurrentDirectory = dir

	m.files = fp
	m.picking = true
	return fp.Init()
}

func filePickerHeight(screenH int) int {
	h := screenH - 16
	if h < 8 {
		h = 8
	}
	if h > 18 {
		h = 18
	}
	return h
}

func (m modalModel) Update(msg tea.Msg) (modalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case fadeFrameMsg:
		return m, m.fade.step(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	if !m.state.IsOpen() {
		return m, nil
	}

	if m.picking {
		return m.updatePicker(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, modalKeys.Close):
		return m, m.close()

	case key.Matches(keyMsg, modalKeys.Submit):
		return m, m.submit()

	case key.Matches(keyMsg, modalKeys.Next):
		return m, m.moveFocus(1)

	case key.Matches(keyMsg, modalKeys.Prev):
		return m, m.moveFocus(-1)

	case key.Matches(keyMsg, modalKeys.Select):
		return m.activate()
	}

	if m.focus == fieldCategory {
		switch {
		case key.Matches(keyMsg, modalKeys.Left):
			m.picker.Prev()
		case key.Matches(keyMsg, modalKeys.Right):
			m.picker.Next()
		}
		return m, nil
	}

	if m.focus != fieldTitle {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.workflow.Draft().SetTitle(m.input.Value())
	return m, cmd
}

// activate handles enter on the focused field.
func (m modalModel) activate() (modalModel, tea.Cmd) {
	switch m.focus {
	case fieldTitle, fieldSubmit:
		return m, m.submit()
	case fieldCategory:
		return m, m.moveFocus(1)
	case fieldUpload:
		return m, m.openFilePicker()
	case fieldPreview:
		m.clearAttachment()
		m.syncPreview()
		return m, nil
	}
	return m, nil
}

func (m modalModel) updatePicker(msg tea.Msg) (modalModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, modalKeys.Close) {
		m.picking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.files, cmd = m.files.Update(msg)
	m.pickerDir = m.files.CurrentDirectory

	if ok, path := m.files.DidSelectFile(msg); ok {
		m.picking = false
		m.setAttachment(path)
		m.syncPreview()
		if m.workflow.Attachment().Get() != nil {
			m.setFocus(fieldPreview)
		}
		return m, nil
	}
	return m, cmd
}

func (m modalModel) View() string {
	if !m.visible() {
		return ""
	}
	op := m.fade.opacity()
	text := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(blend(m.colors.surface, hex, op))
	}

	var b strings.Builder

	b.WriteString(text(colorHeading).Bold(true).Render("Add a Task"))
	b.WriteString("\n\n")

	if m.picking {
		b.WriteString(m.files.View())
		b.WriteString("\n")
		b.WriteString(blurredStyle.Render("enter: select   esc: cancel   h/backspace: up   l/right: open dir"))
		return m.panel(op, b.String())
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(m.label(fieldCategory, "Category"))
	b.WriteString("\n")
	b.WriteString(m.picker.View(m.focus == fieldCategory))
	b.WriteString("\n\n")

	upload := "[ 🖼  Upload Image ]"
	if m.focus == fieldUpload {
		b.WriteString(focusedStyle.Bold(true).Render(upload))
	} else {
		b.WriteString(blurredStyle.Render(upload))
	}
	b.WriteString("\n")

	if a := m.workflow.Attachment().Get(); a != nil {
		b.WriteString(m.previewView(a.Name, a.MediaType, len(a.Data)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.submitButton())
	b.WriteString("\n\n")
	b.WriteString(blurredStyle.Render("tab: next field • enter: select • ctrl+s: add • esc: close"))

	return m.panel(op, b.String())
}

func (m modalModel) label(f modalField, s string) string {
	if m.focus == f {
		return focusedStyle.Render(s + ":")
	}
	return blurredStyle.Render(s + ":")
}

func (m modalModel) previewView(name, mediaType string, size int) string {
	line := fmt.Sprintf("  %s · %s · %s", name, mediaType, formatBytes(size))
	if p := m.previews.Current(); p != nil {
		if p.Width > 0 {
			line += fmt.Sprintf(" · %d×%d", p.Width, p.Height)
		}
		line += "\n  " + p.URI
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorText)).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(colorMuted))
	if m.focus == fieldPreview {
		style = style.BorderForeground(lipgloss.Color(colorAccent)).Strikethrough(true)
		line += "\n" + "  enter: remove image"
	}
	return style.Render(line)
}

func (m modalModel) submitButton() string {
	const label = "[ Add Task ]"
	switch {
	case !m.workflow.CanSubmit():
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorDisabled)).Render(label)
	case m.focus == fieldSubmit:
		return focusedStyle.Bold(true).Render(label)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorHeading)).Render(label)
	}
}

func (m modalModel) panel(op float64, body string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(blend(m.colors.surface, m.colors.panel, op)).
		Padding(1, 2).
		Width(56).
		Render(body)
}

// overlay centres the dialog over a shaded backdrop.
func (m modalModel) overlay(width, height int) string {
	shade := blend(m.colors.surface, m.colors.shade, m.fade.opacity())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.View(),
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(shade),
	)
}

func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := int64(n) / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
