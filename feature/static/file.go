package static

import (
	"errors"
	"fmt"
	"io"
	"os"

	"particle-wui/core/mime"

	"github.com/gofiber/fiber/v2"
)

// ErrIsDirectory is returned when a handler is bound to a directory.
var ErrIsDirectory = errors.New("path is a directory")

// ResponseSink is the part of a response a FileHandler writes to.
// *fiber.Ctx satisfies it.
type ResponseSink interface {
	Set(key, val string)
	SendStream(stream io.Reader, size ...int) error
}

// FileHandler streams a single file.
type FileHandler struct {
	Path string
}

// ContentType returns the content type the handler will send.
func (h *FileHandler) ContentType() string {
	return mime.Resolve(h.Path)
}

// Serve streams the file to sink. Open and stat failures are returned as-is so the
// transport can report them; the sink takes ownership of the file once streaming starts.
func (h *FileHandler) Serve(sink ResponseSink) error {
	f, err := os.Open(h.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", h.Path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to stat %s: %w", h.Path, err)
	}
	if info.IsDir() {
		f.Close()
		return fmt.Errorf("%s: %w", h.Path, ErrIsDirectory)
	}

	sink.Set(fiber.HeaderContentType, h.ContentType())
	return sink.SendStream(f, int(info.Size()))
}
