package inject

import (
	"context"
	"os/exec"
	"strings"
)

// Runner executes an external program and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// LookPath resolves a program name, like exec.LookPath.
type LookPath func(file string) (string, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Command types text by running an external tool.
type Command struct {
	tool     string
	args     func(text string) []string
	run      Runner
	lookPath LookPath
}

// Xdotool types through `xdotool type` on X11.
func Xdotool() *Command {
	return newCommand("xdotool", func(text string) []string {
		return []string{"type", "--clearmodifiers", "--", text}
	})
}

// Wtype types through `wtype` on wlroots compositors.
func Wtype() *Command {
	return newCommand("wtype", func(text string) []string {
		return []string{"--", text}
	})
}

// Ydotool types through `ydotool type`, which needs access to uinput.
func Ydotool() *Command {
	return newCommand("ydotool", func(text string) []string {
		return []string{"type", "--", text}
	})
}

func newCommand(tool string, args func(string) []string) *Command {
	return &Command{tool: tool, args: args, run: execRunner, lookPath: exec.LookPath}
}

// WithRunner replaces how the tool is located and executed.
func (c *Command) WithRunner(run Runner, lookPath LookPath) *Command {
	c.run = run
	c.lookPath = lookPath
	return c
}

// Name implements Injector.
func (c *Command) Name() string {
	return c.tool
}

// Inject implements Injector.
func (c *Command) Inject(ctx context.Context, text string) error {
	path, err := c.lookPath(c.tool)
	if err != nil {
		return unavailable(c.tool, err.Error())
	}
	out, err := c.run(ctx, path, c.args(text)...)
	if err != nil {
		detail := strings.TrimSpace(string(out))
		if detail == "" {
			detail = err.Error()
		}
		return rejected(c.tool, detail)
	}
	return nil
}
