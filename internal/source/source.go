package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// File is an opened, validated source document. It records the resolved
// path and page count; content stays on disk and is re-read at save time.
type File struct {
	path      string
	pageCount int
}

// Open reads and validates the document at path. maxSize bounds the
// accepted file size in bytes; zero disables the limit. Failures are
// all-or-nothing: no File is returned for an unreadable or malformed
// source.
func Open(path string, maxSize int64) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	count, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: document has no pages", ErrMalformed)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	return &File{path: abs, pageCount: count}, nil
}

// Path returns the resolved absolute path of the source file.
func (f *File) Path() string {
	return f.path
}

// Name returns the base name of the source file.
func (f *File) Name() string {
	return filepath.Base(f.path)
}

// PageCount returns the number of pages in the source document.
func (f *File) PageCount() int {
	return f.pageCount
}
