package port

import (
	"context"
)

// Tool represents an external executable the agent may need. The
// lookup result is probed once per process lifetime and cached.
type Tool interface {
	// Name returns the bare executable name
	Name() string

	// Path returns the resolved absolute path, or an error when the
	// executable cannot be located
	Path() (string, error)

	// Available reports whether the executable was located
	Available() bool
}

// Toolbox resolves Tools by executable name.
type Toolbox interface {
	// Tool returns the Tool for the given executable name
	Tool(name string) Tool
}

// Executor runs an external command and captures its outcome.
type Executor interface {
	// Run executes argv[0] with the remaining arguments and blocks
	// until the process exits or ctx is done.
	// Returns the exit status and captured standard output. err is
	// non-nil only when the process could not be run at all; a
	// non-zero exit is reported through the status.
	Run(ctx context.Context, argv []string) (int, string, error)
}
