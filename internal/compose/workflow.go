package compose

import (
	"strings"

	"github.com/WillyV3/todoboard/internal/board"
)

// TaskList receives new tasks. Creation is assumed to always succeed.
type TaskList interface {
	AddTask(title string, category board.Category, attachment *board.Attachment)
}

type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

type Option func(*Workflow)

// WithDraftReset clears the title and category after a successful submit.
// Without it they are left as they were and show up again on the next open.
func WithDraftReset() Option {
	return func(w *Workflow) { w.resetDraft = true }
}

// Workflow validates the draft, hands it to the task list and tears down the
// dialog session.
type Workflow struct {
	tasks      TaskList
	modal      Visibility
	draft      *Draft
	attachment *AttachmentHolder
	state      State
	resetDraft bool
}

func NewWorkflow(tasks TaskList, modal Visibility, draft *Draft, attachment *AttachmentHolder, opts ...Option) *Workflow {
	if draft == nil {
		draft = NewDraft(nil)
	}
	if attachment == nil {
		attachment = &AttachmentHolder{}
	}
	w := &Workflow{
		tasks:      tasks,
		modal:      modal,
		draft:      draft,
		attachment: attachment,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) Draft() *Draft { return w.draft }

func (w *Workflow) Attachment() *AttachmentHolder { return w.attachment }

func (w *Workflow) State() State { return w.state }

// CanSubmit reports whether the submit control should be enabled.
func (w *Workflow) CanSubmit() bool {
	return strings.TrimSpace(w.draft.Title()) != ""
}

func (w *Workflow) Submit() Result {
	if !w.CanSubmit() {
		return reject(ErrEmptyTitle)
	}
	if !w.modal.IsOpen() {
		return reject(ErrDialogClosed)
	}

	w.state = Submitting
	defer func() { w.state = Idle }()

	w.tasks.AddTask(w.draft.Title(), w.draft.Category(), w.attachment.Get())
	w.attachment.Set(nil)
	if w.resetDraft {
		w.draft.Reset()
	}
	w.modal.Close()

	return accept()
}
