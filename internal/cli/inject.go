package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/subins2000/quemoji/internal/config"
	"github.com/subins2000/quemoji/internal/inject"
	"github.com/subins2000/quemoji/internal/logger"
)

// injectCmd is the detached child started by the picker once a selection
// is confirmed. It is hidden because it types blindly into whatever has
// focus.
var injectCmd = &cobra.Command{
	Use:               "inject [text]",
	Short:             "Type text into the focused window after the settle delay",
	Args:              cobra.ExactArgs(1),
	Hidden:            true,
	PersistentPreRunE: injectConfig,
	RunE:              runInject,
}

func init() {
	rootCmd.AddCommand(injectCmd)
}

// injectConfig takes the backend and delay from flags only. The parent
// already resolved its config file and passes the result explicitly.
func injectConfig(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	c := config.Default()
	c.Backend = backend
	c.SettleDelayMS = int(delay / time.Millisecond)
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

func runInject(cmd *cobra.Command, args []string) error {
	logger.Section("Inject")

	env := environment()
	env.Stdout = cmd.OutOrStdout()
	inj, err := newInjector(cfg.Backend, env)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger.Info("sending %s via %s after %s", args[0], inj.Name(), cfg.SettleDelay())
	if err := inject.Settled(inj, cfg.SettleDelay()).Inject(ctx, args[0]); err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

// openInjectLog opens $XDG_CACHE_HOME/quemoji/inject.log for appending. The
// detached child writes there since the picker's terminal is gone by then.
func openInjectLog() (*os.File, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	dir = filepath.Join(dir, "quemoji")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "inject.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
