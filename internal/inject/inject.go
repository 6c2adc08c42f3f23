// Package inject types text into whichever window holds keyboard focus.
//
// Several backends are available because no single facility works on every
// desktop: xdotool on X11, wtype or the RemoteDesktop portal on Wayland,
// ydotool through uinput anywhere it has permission. The clipboard and
// stdout backends hand the text over without typing it.
package inject

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the backend cannot run here: no display
	// session, missing tool, or no bus.
	ErrUnavailable = errors.New("input injection unavailable")

	// ErrRejected means the backend ran but refused the input.
	ErrRejected = errors.New("input injection rejected")
)

// Injector sends text as if it had been typed.
type Injector interface {
	Inject(ctx context.Context, text string) error
	Name() string
}

// Failure reports a failed injection attempt.
type Failure struct {
	Backend string
	Err     error
	Detail  string
}

func (f *Failure) Error() string {
	if f.Detail == "" {
		return fmt.Sprintf("%s: %v", f.Backend, f.Err)
	}
	return fmt.Sprintf("%s: %v: %s", f.Backend, f.Err, f.Detail)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func unavailable(backend, detail string) error {
	return &Failure{Backend: backend, Err: ErrUnavailable, Detail: detail}
}

func rejected(backend, detail string) error {
	return &Failure{Backend: backend, Err: ErrRejected, Detail: detail}
}
