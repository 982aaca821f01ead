package util

// Process exit codes shared by the command line tools.
const (
	// Success indicates the command ran to completion.
	Success = iota
	// ErrLocalExe indicates an error occurred executing the command
	// locally, before any validation work.
	ErrLocalExe
	// ErrLocalParse indicates an error occurred parsing command input
	// or formatting output.
	ErrLocalParse
	// ErrRejected indicates validation completed and rejected the
	// spend.
	ErrRejected
)
