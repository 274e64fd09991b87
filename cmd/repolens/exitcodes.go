package main

import "fmt"

// Exit codes for the repolens CLI.
const (
	ExitOK              = 0 // Analysis succeeded.
	ExitInvalidArgs     = 1 // Bad reference, flags, or config.
	ExitAnalysisFailure = 2 // The run aborted: host errors or cancellation.
	ExitOutputFailure   = 3 // The report could not be rendered or written.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError.
func exitError(code int, format string, args ...any) *exitCodeError {
	return &exitCodeError{code: code, msg: fmt.Sprintf(format, args...)}
}
