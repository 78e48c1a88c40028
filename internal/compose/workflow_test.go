package compose

import (
	"errors"
	"testing"

	"github.com/WillyV3/todoboard/internal/board"
)

type addCall struct {
	title      string
	category   board.Category
	attachment *board.Attachment
	state      State
}

type fakeTasks struct {
	calls []addCall
	wf    *Workflow
}

func (f *fakeTasks) AddTask(title string, category board.Category, attachment *board.Attachment) {
	c := addCall{title: title, category: category, attachment: attachment}
	if f.wf != nil {
		c.state = f.wf.State()
	}
	f.calls = append(f.calls, c)
}

type fakeModal struct {
	open   bool
	closes int
}

func (m *fakeModal) IsOpen() bool { return m.open }
func (m *fakeModal) Close() {
	m.closes++
	m.open = false
}

type fixture struct {
	tasks  *fakeTasks
	modal  *fakeModal
	holder *AttachmentHolder
	draft  *Draft
	wf     *Workflow
}

func newFixture(category board.Category, opts ...Option) fixture {
	f := fixture{
		tasks:  &fakeTasks{},
		modal:  &fakeModal{open: true},
		holder: &AttachmentHolder{},
		draft:  NewDraft(StaticCategory(category)),
	}
	f.wf = NewWorkflow(f.tasks, f.modal, f.draft, f.holder, opts...)
	f.tasks.wf = f.wf
	return f
}

func TestSubmit_NoAttachment(t *testing.T) {
	f := newFixture(board.Todo)
	f.draft.SetTitle("Buy milk")

	res := f.wf.Submit()
	if !res.Accepted() {
		t.Fatalf("expected submit to be accepted, got %v", res)
	}
	if len(f.tasks.calls) != 1 {
		t.Fatalf("expected exactly one AddTask call, got %d", len(f.tasks.calls))
	}
	got := f.tasks.calls[0]
	if got.title != "Buy milk" || got.category != board.Todo || got.attachment != nil {
		t.Fatalf("unexpected AddTask call: %+v", got)
	}
	if f.holder.Get() != nil {
		t.Fatalf("expected attachment holder to be empty")
	}
	if f.modal.closes != 1 || f.modal.IsOpen() {
		t.Fatalf("expected one close request, got %d (open=%v)", f.modal.closes, f.modal.IsOpen())
	}
	if f.wf.State() != Idle {
		t.Fatalf("expected workflow back in idle, got %v", f.wf.State())
	}
}

func TestSubmit_ForwardsAttachmentThenClears(t *testing.T) {
	f := newFixture(board.InProgress)
	img := imageBlob("shot.png", "image/png")
	f.holder.Set(img)
	f.draft.SetTitle("Fix the sink")

	if res := f.wf.Submit(); !res.Accepted() {
		t.Fatalf("expected accepted, got %v", res)
	}
	got := f.tasks.calls[0]
	if got.attachment != img || got.category != board.InProgress {
		t.Fatalf("unexpected AddTask call: %+v", got)
	}
	if got.state != Submitting {
		t.Fatalf("expected AddTask to run while submitting, got %v", got.state)
	}
	if f.holder.Get() != nil {
		t.Fatalf("expected attachment cleared after submit")
	}
}

func TestSubmit_BlankTitleIsNoop(t *testing.T) {
	titles := []string{"", " ", "\t", "\n  \t"}
	for _, cat := range board.Categories() {
		for _, withImage := range []bool{false, true} {
			for _, title := range titles {
				f := newFixture(cat)
				img := imageBlob("x.png", "image/png")
				if withImage {
					f.holder.Set(img)
				}
				f.draft.SetTitle(title)

				if f.wf.CanSubmit() {
					t.Fatalf("expected submit disabled for title %q", title)
				}
				res := f.wf.Submit()
				if res.Accepted() || !errors.Is(res.Reason, ErrEmptyTitle) {
					t.Fatalf("expected ErrEmptyTitle for %q, got %v", title, res)
				}
				if len(f.tasks.calls) != 0 {
					t.Fatalf("expected no AddTask for %q", title)
				}
				if f.modal.closes != 0 || !f.modal.IsOpen() {
					t.Fatalf("expected dialog to stay open for %q", title)
				}
				if withImage && f.holder.Get() != img {
					t.Fatalf("expected attachment to be unchanged")
				}
			}
		}
	}
}

func TestSubmit_DialogClosedIsNoop(t *testing.T) {
	f := newFixture(board.Todo)
	f.draft.SetTitle("late")
	f.modal.open = false

	res := f.wf.Submit()
	if !errors.Is(res.Reason, ErrDialogClosed) {
		t.Fatalf("expected ErrDialogClosed, got %v", res)
	}
	if len(f.tasks.calls) != 0 || f.modal.closes != 0 {
		t.Fatalf("expected no side effects, got %d calls and %d closes", len(f.tasks.calls), f.modal.closes)
	}
}

func TestSubmit_TitleSurvivesByDefault(t *testing.T) {
	f := newFixture(board.Done)
	f.draft.SetTitle("Write report")
	f.wf.Submit()

	if f.draft.Title() != "Write report" {
		t.Fatalf("expected stale title to remain, got %q", f.draft.Title())
	}
}

type radio struct{ selected board.Category }

func (r *radio) Selected() board.Category { return r.selected }
func (r *radio) Reset()                   { r.selected = board.DefaultCategory() }

func TestSubmit_WithDraftReset(t *testing.T) {
	sel := &radio{selected: board.Done}
	tasks := &fakeTasks{}
	modal := &fakeModal{open: true}
	draft := NewDraft(sel)
	wf := NewWorkflow(tasks, modal, draft, nil, WithDraftReset())

	draft.SetTitle("Write report")
	if res := wf.Submit(); !res.Accepted() {
		t.Fatalf("expected accepted, got %v", res)
	}
	if tasks.calls[0].category != board.Done {
		t.Fatalf("expected category captured before reset, got %q", tasks.calls[0].category)
	}
	if draft.Title() != "" {
		t.Fatalf("expected title reset, got %q", draft.Title())
	}
	if draft.Category() != board.Todo {
		t.Fatalf("expected category reset to default, got %q", draft.Category())
	}
}

func TestSubmit_ClearPreviewThenSubmit(t *testing.T) {
	f := newFixture(board.Todo)
	f.holder.Set(imageBlob("a.png", "image/png"))
	// Activating the preview clears the attachment.
	f.holder.Set(nil)
	f.draft.SetTitle("t")
	f.wf.Submit()

	if f.tasks.calls[0].attachment != nil {
		t.Fatalf("expected no attachment to be forwarded")
	}
}

func TestDraft_InvalidSelectionFallsBackToDefault(t *testing.T) {
	d := NewDraft(&radio{selected: board.Category("nope")})
	if d.Category() != board.DefaultCategory() {
		t.Fatalf("expected default category, got %q", d.Category())
	}
	if NewDraft(nil).Category() != board.Todo {
		t.Fatalf("expected nil selector to default to todo")
	}
}

func TestModalState(t *testing.T) {
	var s ModalState
	if s.IsOpen() {
		t.Fatalf("expected closed by default")
	}
	s.Open()
	s.Open()
	if !s.IsOpen() {
		t.Fatalf("expected open")
	}
	s.Close()
	if s.IsOpen() {
		t.Fatalf("expected closed after Close")
	}
}
