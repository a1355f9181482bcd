package code

import (
	"errors"
	"fmt"
)

var (
	// ErrLanguageSetup is returned when a grammar's queries fail to compile.
	// It is fatal: the registry is unusable.
	ErrLanguageSetup = errors.New("language setup failed")

	// ErrNoChunksProduced is returned when extraction over a whole file set
	// yields no chunks at all.
	ErrNoChunksProduced = errors.New("no chunks produced")

	// ErrUnsupportedLanguage is returned when no strategy handles a file.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrBinaryFile is returned for files that look like binary data despite
	// a source extension.
	ErrBinaryFile = errors.New("binary file")
)

// FileExtractionError records a read or parse failure for a single file.
// The file is skipped and extraction continues.
type FileExtractionError struct {
	Path string
	Err  error
}

func (e *FileExtractionError) Error() string {
	return fmt.Sprintf("failed to extract chunks from %s; %v", e.Path, e.Err)
}

func (e *FileExtractionError) Unwrap() error {
	return e.Err
}
