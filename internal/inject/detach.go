package inject

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/subins2000/quemoji/internal/logger"
)

// NeedsFocus reports whether backend types into the focused window. Those
// backends must not run while the picker's own window is still open.
func NeedsFocus(backend string) bool {
	switch backend {
	case BackendXdotool, BackendWtype, BackendYdotool, BackendPortal:
		return true
	}
	return false
}

// Detached hands the text to a child process, `<exe> inject`, that keeps
// running after this process exits. The child waits Delay and then types
// through Backend, by which time the terminal hosting the picker is gone
// and focus is back on the previous window.
type Detached struct {
	Backend string
	Delay   time.Duration
	Verbose bool
	// OpenLog opens the file receiving the child's stdout and stderr.
	// Nil, or an error from it, discards them.
	OpenLog func() (*os.File, error)
	// Start defaults to (*exec.Cmd).Start.
	Start func(cmd *exec.Cmd) error
	// Executable defaults to os.Executable.
	Executable func() (string, error)
}

// Name implements Injector.
func (d *Detached) Name() string {
	return d.Backend + " (detached)"
}

func (d *Detached) command(text string, log *os.File) (*exec.Cmd, error) {
	executable := d.Executable
	if executable == nil {
		executable = os.Executable
	}
	exe, err := executable()
	if err != nil {
		return nil, err
	}

	args := []string{"inject", "--backend", d.Backend, "--delay", d.Delay.String()}
	if d.Verbose {
		args = append(args, "--verbose")
	}
	args = append(args, "--", text)

	cmd := exec.Command(exe, args...)
	cmd.SysProcAttr = detachAttr()
	if log != nil {
		cmd.Stdout = log
		cmd.Stderr = log
	}
	return cmd, nil
}

// Inject implements Injector. It returns once the child has started.
func (d *Detached) Inject(_ context.Context, text string) error {
	var log *os.File
	if d.OpenLog != nil {
		f, err := d.OpenLog()
		if err != nil {
			logger.Warn("child output is discarded: %v", err)
		} else {
			log = f
			defer f.Close()
		}
	}

	cmd, err := d.command(text, log)
	if err != nil {
		return unavailable(d.Name(), err.Error())
	}
	start := d.Start
	if start == nil {
		start = (*exec.Cmd).Start
	}
	if err := start(cmd); err != nil {
		return unavailable(d.Name(), err.Error())
	}
	if cmd.Process != nil {
		return cmd.Process.Release()
	}
	return nil
}
