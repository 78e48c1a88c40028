package compose

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/WillyV3/todoboard/internal/board"
)

const DefaultMaxAttachmentBytes int64 = 10 * 1024 * 1024 // 10MB

// AttachmentHolder keeps at most one pending image for the task being composed.
type AttachmentHolder struct {
	current  *board.Attachment
	revision uint64
}

// Set replaces the pending attachment. nil always clears; anything that is
// not an image is rejected and leaves the holder untouched.
func (h *AttachmentHolder) Set(a *board.Attachment) Result {
	if a == nil {
		h.Clear()
		return accept()
	}
	if !a.IsImage() {
		return reject(ErrNotImage)
	}
	h.current = a
	h.revision++
	return accept()
}

func (h *AttachmentHolder) Get() *board.Attachment {
	return h.current
}

func (h *AttachmentHolder) Clear() {
	if h.current == nil {
		return
	}
	h.current = nil
	h.revision++
}

// Revision changes every time the held attachment changes.
func (h *AttachmentHolder) Revision() uint64 {
	return h.revision
}

// LoadAttachment reads a picked file. The declared media type comes from the
// content, falling back to the file extension when sniffing is inconclusive.
func LoadAttachment(path string, maxBytes int64) (*board.Attachment, error) {
	path = filepath.Clean(strings.TrimSpace(path))
	if path == "" || path == "." {
		return nil, fmt.Errorf("attachment: missing path")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxAttachmentBytes
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return nil, fmt.Errorf("attachment: %s is a directory", path)
	}
	if st.Size() > maxBytes {
		return nil, fmt.Errorf("attachment: %s is %d bytes (max %d)", path, st.Size(), maxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("attachment: %s exceeds %d bytes", path, maxBytes)
	}

	return &board.Attachment{
		Name:      filepath.Base(path),
		MediaType: declaredMediaType(path, data),
		Data:      data,
	}, nil
}

func declaredMediaType(path string, data []byte) string {
	detected := mimetype.Detect(data)
	if !detected.Is("application/octet-stream") {
		return detected.String()
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != "" {
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
	}
	return detected.String()
}
