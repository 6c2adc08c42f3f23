//go:build !windows

package inject

import "syscall"

// detachAttr starts the child in its own session so the hangup sent when
// the picker's terminal closes does not reach it.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
