// Command quemoji is a fuzzy emoji picker. It types the chosen emoji into
// the window that had focus when it was launched, so bind it to a hotkey
// in a small floating terminal. The typing happens in a detached child
// after the picker has exited and its terminal has closed.
package main

/**
 * quemoji - a fuzzy emoji picker in Go
 * Grown out of semoji, an IBus emoji engine in Go
 * Copyright Subin Siby, 2021
 * Licensed under AGPL-3.0
 *
 * Derivative Changes: standalone picker, fuzzy ranking, detached injection
 */

import (
	"os"

	"github.com/subins2000/quemoji/internal/cli"
	"github.com/subins2000/quemoji/internal/logger"
)

func main() {
	if err := cli.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
