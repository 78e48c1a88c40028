package compose

import "errors"

// Rejection reasons, carried in a Result.
var (
	ErrNotImage     = errors.New("attachment is not an image")
	ErrEmptyTitle   = errors.New("task title is empty")
	ErrDialogClosed = errors.New("dialog is not open")
)

type Outcome int

const (
	Accepted Outcome = iota
	Rejected
)

func (o Outcome) String() string {
	if o == Accepted {
		return "accepted"
	}
	return "rejected"
}

// Result tells callers whether a setter or submit took effect.
type Result struct {
	Outcome Outcome
	Reason  error
}

func accept() Result { return Result{Outcome: Accepted} }

func reject(reason error) Result { return Result{Outcome: Rejected, Reason: reason} }

func (r Result) Accepted() bool { return r.Outcome == Accepted }

func (r Result) String() string {
	if r.Reason == nil {
		return r.Outcome.String()
	}
	return r.Outcome.String() + ": " + r.Reason.Error()
}
