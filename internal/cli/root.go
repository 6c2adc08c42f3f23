// Package cli wires the quemoji commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/subins2000/quemoji/internal/config"
	"github.com/subins2000/quemoji/internal/corpus"
	"github.com/subins2000/quemoji/internal/inject"
	"github.com/subins2000/quemoji/internal/logger"
	"github.com/subins2000/quemoji/internal/picker"
	"github.com/subins2000/quemoji/internal/ranker"
	"github.com/subins2000/quemoji/internal/tui"
)

const pprofAddr = "localhost:6060"

var (
	cfgPath    string
	limit      int
	delay      time.Duration
	backend    string
	minScore   float64
	printOnly  bool
	foreground bool
	verbose    bool
	debug      bool
)

// cfg is loaded before every command runs.
var cfg config.Config

// Replaced in tests.
var (
	runUI = func(ctx context.Context, e *picker.Engine, opts tui.Options) (tui.Outcome, error) {
		return tui.Run(ctx, e, opts)
	}
	newInjector = inject.New
	environment = inject.SystemEnvironment
	startChild  = (*exec.Cmd).Start
)

var rootCmd = &cobra.Command{
	Use:   "quemoji",
	Short: "Search emoji by name and type the pick into the focused window",
	Long: `Opens a small picker. Type part of an emoji name, press Enter, and
the best match is typed into the window that had focus before the picker.

Controls:
  Enter - Insert the top match
  Esc   - Cancel`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runPicker,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgPath, "config", "", "config file (default $XDG_CONFIG_HOME/quemoji/config.toml)")
	f.IntVarP(&limit, "limit", "n", ranker.DefaultLimit, "maximum number of results")
	f.Float64Var(&minScore, "min-score", 0, "drop results scoring below this (0 to 1)")
	f.BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	f.DurationVar(&delay, "delay", inject.DefaultSettleDelay, "wait before typing so focus can return")
	f.StringVarP(&backend, "backend", "b", inject.BackendAuto, "injection backend: auto, xdotool, wtype, ydotool, portal, clipboard, stdout")

	rootCmd.Flags().BoolVarP(&printOnly, "print", "p", false, "print the emoji to stdout instead of typing it")
	rootCmd.Flags().BoolVar(&foreground, "foreground", false, "type from this process instead of a detached child; only safe when the picker does not own a window")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "serve pprof on "+pprofAddr)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	var (
		loaded config.Config
		err    error
	)
	if cfgPath != "" {
		loaded, err = config.Load(cfgPath)
	} else {
		path, dirErr := config.DefaultPath()
		if dirErr != nil {
			logger.Warn("no config directory: %v", dirErr)
		}
		loaded, err = config.LoadOptional(path)
	}
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("limit") {
		loaded.Limit = limit
	}
	if cmd.Flags().Changed("min-score") {
		loaded.MinScore = minScore
	}
	if cmd.Flags().Changed("delay") {
		loaded.SettleDelayMS = int(delay / time.Millisecond)
	}
	if cmd.Flags().Changed("backend") {
		loaded.Backend = backend
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	logger.Debug("config: %+v", cfg)
	return nil
}

func runPicker(cmd *cobra.Command, _ []string) error {
	if debug {
		go func() {
			logger.Warn("pprof: %v", http.ListenAndServe(pprofAddr, nil))
		}()
	}

	name := cfg.Backend
	if printOnly {
		name = inject.BackendStdout
	}
	env := environment()
	env.Stdout = cmd.OutOrStdout()
	inj, err := newInjector(name, env)
	if err != nil {
		return err
	}

	// Typing has to wait until the terminal hosting the picker is gone,
	// which only happens after this process exits. A detached child does
	// the settle delay and the typing instead.
	settle := cfg.SettleDelay()
	if inject.NeedsFocus(inj.Name()) && !foreground {
		inj = detachedInjector(inj.Name(), settle)
		settle = 0
	}
	logger.Debug("injection backend: %s", inj.Name())

	start := time.Now()
	c := corpus.Default()
	logger.Debug("corpus: %d entries in %s", c.Len(), time.Since(start))

	engine := picker.NewEngine(c, picker.Options{
		Limit:       cfg.Limit,
		MinScore:    cfg.MinScore,
		SettleDelay: settle,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	outcome, err := runUI(ctx, engine, tui.Options{Prompt: cfg.UI.Prompt, Placeholder: cfg.UI.Placeholder})
	if err != nil {
		return err
	}
	if outcome != tui.Confirmed {
		logger.Info("picker closed without a selection")
		return nil
	}

	logger.Section("Commit")
	_, err = engine.Commit(ctx, inj)
	switch {
	case errors.Is(err, picker.ErrNoSelection):
		logger.Info("nothing to insert")
		return nil
	case err != nil:
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

func detachedInjector(backend string, settle time.Duration) *inject.Detached {
	return &inject.Detached{
		Backend: backend,
		Delay:   settle,
		Verbose: logger.IsVerbose(),
		OpenLog: openInjectLog,
		Start:   startChild,
	}
}
