package file

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrFileMissing             = errors.New("file does not exist")
	ErrIsDirectory             = errors.New("path is a directory")
	ErrFileExists              = errors.New("file already exists, use edit_lines or apply_edits instead")
	ErrBinaryFile              = errors.New("binary files are not supported")
	ErrFileTooLarge            = errors.New("file or content exceeds size limit")
	ErrPathRequired            = errors.New("path is required")
	ErrEditsRequired           = errors.New("edits cannot be empty")
	ErrEmptyOldText            = errors.New("old_text cannot be empty")
	ErrInvalidRange            = errors.New("invalid line range")
	ErrNoMatchFound            = errors.New("no exact or whitespace-tolerant match found")
	ErrCorruptionDetected      = errors.New("write verification failed, original content restored")
	ErrCriticalRecoveryFailure = errors.New("write verification failed AND restoring the original content failed")
)

// -- Error Types --

// StatError is returned when a file cannot be stat'd for reasons other than absence.
type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat %s: %v", e.Path, e.Cause)
}
func (e *StatError) Unwrap() error { return e.Cause }

// WriteError is returned when an atomic write fails.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Cause)
}
func (e *WriteError) Unwrap() error { return e.Cause }
