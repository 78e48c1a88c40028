package compose

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/WillyV3/todoboard/internal/board"
)

// Preview is a disposable display resource derived from an attachment: a
// temporary file that external viewers can open through URI.
type Preview struct {
	URI    string
	Path   string
	Width  int
	Height int
	Format string
}

// AcquirePreview writes the attachment to a temp file. The caller owns the
// result and must Release it when the attachment changes or the dialog closes.
func AcquirePreview(a *board.Attachment) (*Preview, error) {
	if a == nil {
		return nil, errors.New("preview: no attachment")
	}

	f, err := os.CreateTemp("", "todoboard-preview-*"+previewExt(a))
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(a.Data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("preview: write %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return nil, err
	}

	p := &Preview{
		Path: f.Name(),
		URI:  (&url.URL{Scheme: "file", Path: filepath.ToSlash(f.Name())}).String(),
	}
	// Dimensions are best effort; unknown formats just render without them.
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(a.Data)); err == nil {
		p.Width, p.Height, p.Format = cfg.Width, cfg.Height, format
	}
	return p, nil
}

// Release removes the backing file. Safe to call more than once and on nil.
func (p *Preview) Release() error {
	if p == nil || p.Path == "" {
		return nil
	}
	err := os.Remove(p.Path)
	p.Path = ""
	p.URI = ""
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func previewExt(a *board.Attachment) string {
	if ext := filepath.Ext(a.Name); ext != "" {
		return strings.ToLower(ext)
	}
	if exts, err := mime.ExtensionsByType(a.MediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// PreviewTracker keeps one preview in step with an AttachmentHolder.
type PreviewTracker struct {
	preview  *Preview
	revision uint64
	synced   bool
}

// Sync returns the preview for the holder's current attachment, replacing
// and releasing the previous one when the attachment changed.
func (t *PreviewTracker) Sync(h *AttachmentHolder) (*Preview, error) {
	if t.synced && t.revision == h.Revision() {
		return t.preview, nil
	}
	if err := t.Release(); err != nil {
		return nil, err
	}
	t.revision = h.Revision()
	t.synced = true

	a := h.Get()
	if a == nil {
		return nil, nil
	}
	p, err := AcquirePreview(a)
	if err != nil {
		t.synced = false
		return nil, err
	}
	t.preview = p
	return p, nil
}

// Current returns the last synced preview without touching the holder.
func (t *PreviewTracker) Current() *Preview { return t.preview }

// Release drops the current preview; the next Sync acquires a fresh one.
func (t *PreviewTracker) Release() error {
	p := t.preview
	t.preview = nil
	t.synced = false
	return p.Release()
}
