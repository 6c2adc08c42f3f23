package inject

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Backend names accepted by New.
const (
	BackendAuto      = "auto"
	BackendXdotool   = "xdotool"
	BackendWtype     = "wtype"
	BackendYdotool   = "ydotool"
	BackendPortal    = "portal"
	BackendClipboard = "clipboard"
	BackendStdout    = "stdout"
)

// Backends lists every accepted backend name.
var Backends = []string{
	BackendAuto, BackendXdotool, BackendWtype, BackendYdotool,
	BackendPortal, BackendClipboard, BackendStdout,
}

// Environment is what New consults when picking a backend.
type Environment struct {
	Getenv   func(string) string
	LookPath LookPath
	Stdout   io.Writer
}

// SystemEnvironment reads the process environment and PATH.
func SystemEnvironment() Environment {
	return Environment{Getenv: os.Getenv, LookPath: exec.LookPath, Stdout: os.Stdout}
}

func (e Environment) has(tool string) bool {
	_, err := e.LookPath(tool)
	return err == nil
}

// Detect names the backend best suited to the current session, or returns
// an empty string when there is no display session and no ydotool.
func Detect(env Environment) string {
	switch {
	case env.Getenv("WAYLAND_DISPLAY") != "":
		if env.has(BackendWtype) {
			return BackendWtype
		}
		if env.has(BackendYdotool) {
			return BackendYdotool
		}
		return BackendPortal
	case env.Getenv("DISPLAY") != "":
		if env.has(BackendXdotool) {
			return BackendXdotool
		}
		if env.has(BackendYdotool) {
			return BackendYdotool
		}
		return ""
	case env.has(BackendYdotool):
		return BackendYdotool
	default:
		return ""
	}
}

// missingTool explains why Detect found nothing.
func missingTool(env Environment) string {
	if env.Getenv("DISPLAY") != "" {
		return "X11 session but neither xdotool nor ydotool is installed; install xdotool"
	}
	return "no X11 or Wayland session and ydotool is not installed; install ydotool or run inside a desktop session"
}

// New returns the named backend. "auto" resolves through Detect.
func New(name string, env Environment) (Injector, error) {
	if name == "" || name == BackendAuto {
		name = Detect(env)
		if name == "" {
			return nil, unavailable(BackendAuto, missingTool(env))
		}
	}

	switch name {
	case BackendXdotool:
		return Xdotool().WithRunner(execRunner, env.LookPath), nil
	case BackendWtype:
		return Wtype().WithRunner(execRunner, env.LookPath), nil
	case BackendYdotool:
		return Ydotool().WithRunner(execRunner, env.LookPath), nil
	case BackendPortal:
		return NewPortal(), nil
	case BackendClipboard:
		return NewClipboard(), nil
	case BackendStdout:
		return NewWriter(env.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown injection backend %q", name)
	}
}
