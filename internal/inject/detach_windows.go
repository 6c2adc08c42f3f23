//go:build windows

package inject

import (
	"syscall"

	winapi "golang.org/x/sys/windows"
)

func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: winapi.CREATE_NEW_PROCESS_GROUP | winapi.DETACHED_PROCESS}
}
