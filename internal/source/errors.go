// Package source is the boundary to the on-disk document format. It
// opens and validates source PDFs and materializes edit snapshots into
// destination files, both through pdfcpu; the edit engine itself never
// touches PDF structure.
package source

import "errors"

// Domain errors for source access and snapshot persistence.
var (
	ErrUnreadable            = errors.New("source file cannot be read")
	ErrMalformed             = errors.New("source file is not a valid document")
	ErrFileTooLarge          = errors.New("source file exceeds the open size limit")
	ErrEmptySnapshot         = errors.New("snapshot contains no pages")
	ErrSourceUnreadable      = errors.New("source content unreadable")
	ErrDestinationUnwritable = errors.New("destination cannot be written")
)
