package command

import (
	"fmt"
	"os/exec"
	"sync"

	"github.com/stratalab/fscap/internal/port"
)

// Names of the external executables the agent relies on.
const (
	DF            = "df"
	Dumpe2fs      = "dumpe2fs"
	JFSTune       = "jfs_tune"
	NTFSInfo      = "ntfsinfo"
	DebugReiserFS = "debugreiserfs"
	XFSDB         = "xfs_db"
)

// Application is an external executable located through PATH. The
// lookup runs at most once per Application and the result holds for
// the process lifetime.
type Application struct {
	name string

	once sync.Once
	path string
	err  error
}

// Ensure Application implements port.Tool
var _ port.Tool = (*Application)(nil)

// NewApplication creates an Application for the given executable name
func NewApplication(name string) *Application {
	return &Application{name: name}
}

// Name returns the bare executable name
func (a *Application) Name() string {
	return a.name
}

// Path returns the resolved path, locating the executable on first use
func (a *Application) Path() (string, error) {
	a.once.Do(func() {
		path, err := exec.LookPath(a.name)
		if err != nil {
			a.err = fmt.Errorf("executable %s not found: %w", a.name, err)
			return
		}
		a.path = path
	})
	return a.path, a.err
}

// Available reports whether the executable was located
func (a *Application) Available() bool {
	_, err := a.Path()
	return err == nil
}

// Toolbox hands out process-wide Application instances keyed by
// executable name, so each binary is probed at most once.
type Toolbox struct {
	mu   sync.Mutex
	apps map[string]*Application
}

// Ensure Toolbox implements port.Toolbox
var _ port.Toolbox = (*Toolbox)(nil)

// NewToolbox creates an empty Toolbox
func NewToolbox() *Toolbox {
	return &Toolbox{apps: make(map[string]*Application)}
}

// Tool returns the Tool for the given executable name
func (t *Toolbox) Tool(name string) port.Tool {
	t.mu.Lock()
	defer t.mu.Unlock()

	app, ok := t.apps[name]
	if !ok {
		app = NewApplication(name)
		t.apps[name] = app
	}
	return app
}
