package compose

// Visibility is what the workflow needs from whoever owns the dialog's
// open/closed flag.
type Visibility interface {
	IsOpen() bool
	Close()
}

// ModalState is the application's open/closed flag for the add-task dialog.
type ModalState struct {
	open bool
}

func (s *ModalState) Open() { s.open = true }

func (s *ModalState) Close() { s.open = false }

func (s *ModalState) IsOpen() bool { return s.open }
