package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subins2000/quemoji/internal/inject"
	"github.com/subins2000/quemoji/internal/picker"
	"github.com/subins2000/quemoji/internal/tui"
)

type fakeInjector struct {
	texts []string
	err   error
}

func (f *fakeInjector) Name() string { return "fake" }

func (f *fakeInjector) Inject(_ context.Context, text string) error {
	f.texts = append(f.texts, text)
	return f.err
}

func resetFlags(cmds ...*cobra.Command) {
	for _, c := range cmds {
		for _, set := range []*pflag.FlagSet{c.PersistentFlags(), c.Flags()} {
			set.VisitAll(func(f *pflag.Flag) {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// execute runs the root command against an empty config file, so the
// user's own config never leaks into tests.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithConfig(t, writeConfig(t, ""), args...)
}

func executeWithConfig(t *testing.T, path string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd, searchCmd, versionCmd, injectCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--config=" + path}, args...))
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// stubPicker replaces the UI with one that types query and then closes
// with outcome.
func stubPicker(t *testing.T, query string, outcome tui.Outcome, inj *fakeInjector, injErr error) {
	t.Helper()
	origUI, origNew := runUI, newInjector
	t.Cleanup(func() { runUI, newInjector = origUI, origNew })

	runUI = func(_ context.Context, e *picker.Engine, _ tui.Options) (tui.Outcome, error) {
		for i := 1; i <= len(query); i++ {
			e.Update(query[:i])
		}
		return outcome, nil
	}
	newInjector = func(name string, env inject.Environment) (inject.Injector, error) {
		if injErr != nil {
			return nil, injErr
		}
		if inj == nil {
			return inject.New(name, env)
		}
		return inj, nil
	}
}

func TestRoot_ConfirmInjectsTopMatch(t *testing.T) {
	inj := &fakeInjector{}
	stubPicker(t, "tada", tui.Confirmed, inj, nil)

	_, err := execute(t, "--delay=0")

	require.NoError(t, err)
	assert.Equal(t, []string{"🎉"}, inj.texts)
}

func TestRoot_CancelInjectsNothing(t *testing.T) {
	inj := &fakeInjector{}
	stubPicker(t, "tada", tui.Cancelled, inj, nil)

	_, err := execute(t, "--delay=0")

	require.NoError(t, err)
	assert.Empty(t, inj.texts)
}

func TestRoot_EmptyQueryInjectsNothing(t *testing.T) {
	inj := &fakeInjector{}
	stubPicker(t, "", tui.Confirmed, inj, nil)

	_, err := execute(t, "--delay=0")

	require.NoError(t, err)
	assert.Empty(t, inj.texts)
}

func TestRoot_InjectionFailureIsReported(t *testing.T) {
	inj := &fakeInjector{err: &inject.Failure{Backend: "fake", Err: inject.ErrRejected, Detail: "no display"}}
	stubPicker(t, "tada", tui.Confirmed, inj, nil)

	_, err := execute(t, "--delay=0")

	require.Error(t, err)
	assert.ErrorIs(t, err, inject.ErrRejected)
	assert.Contains(t, err.Error(), "insert failed")
	assert.Len(t, inj.texts, 1)
}

func TestRoot_BackendUnavailable(t *testing.T) {
	stubPicker(t, "tada", tui.Confirmed, nil, &inject.Failure{Backend: "auto", Err: inject.ErrUnavailable})

	_, err := execute(t)

	assert.ErrorIs(t, err, inject.ErrUnavailable)
}

func TestRoot_PrintWritesToStdout(t *testing.T) {
	stubPicker(t, "tada", tui.Confirmed, nil, nil)

	out, err := execute(t, "--print", "--delay=0")

	require.NoError(t, err)
	assert.Equal(t, "🎉\n", out)
}

func TestRoot_RejectsBadFlags(t *testing.T) {
	stubPicker(t, "tada", tui.Confirmed, &fakeInjector{}, nil)

	_, err := execute(t, "--limit=0")
	assert.ErrorContains(t, err, "limit must be at least 1")

	_, err = execute(t, "--backend=morse")
	assert.ErrorContains(t, err, "unknown backend")
}

func TestRoot_Flags(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("limit")
	require.NotNil(t, f)
	assert.Equal(t, "n", f.Shorthand)
	assert.Equal(t, "10", f.DefValue)

	d := rootCmd.PersistentFlags().Lookup("delay")
	require.NotNil(t, d)
	assert.Equal(t, "100ms", d.DefValue)
}

func TestRoot_TypingBackendRunsInDetachedChildAfterUICloses(t *testing.T) {
	origUI, origNew, origStart := runUI, newInjector, startChild
	t.Cleanup(func() { runUI, newInjector, startChild = origUI, origNew, origStart })
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)

	uiOpen := false
	runUI = func(_ context.Context, e *picker.Engine, _ tui.Options) (tui.Outcome, error) {
		uiOpen = true
		defer func() { uiOpen = false }()
		e.Update("tada")
		return tui.Confirmed, nil
	}
	newInjector = func(string, inject.Environment) (inject.Injector, error) {
		return inject.Xdotool().WithRunner(func(context.Context, string, ...string) ([]byte, error) {
			t.Fatal("the picker process must not type itself")
			return nil, nil
		}, func(string) (string, error) { return "/usr/bin/xdotool", nil }), nil
	}
	var children [][]string
	startChild = func(cmd *exec.Cmd) error {
		assert.False(t, uiOpen, "child started while the UI was open")
		children = append(children, cmd.Args[1:])
		return nil
	}

	_, err := execute(t, "--delay=250ms")

	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, []string{"inject", "--backend", "xdotool", "--delay", "250ms", "--", "🎉"}, children[0])
	if runtime.GOOS == "linux" {
		assert.FileExists(t, filepath.Join(cache, "quemoji", "inject.log"))
	}
}

func TestRoot_ForegroundTypesInProcess(t *testing.T) {
	origStart := startChild
	t.Cleanup(func() { startChild = origStart })
	startChild = func(*exec.Cmd) error {
		t.Fatal("no child expected with --foreground")
		return nil
	}

	var typed []string
	stubPicker(t, "tada", tui.Confirmed, nil, nil)
	newInjector = func(string, inject.Environment) (inject.Injector, error) {
		return inject.Wtype().WithRunner(func(_ context.Context, _ string, args ...string) ([]byte, error) {
			typed = append(typed, args[len(args)-1])
			return nil, nil
		}, func(string) (string, error) { return "/usr/bin/wtype", nil }), nil
	}

	_, err := execute(t, "--foreground", "--delay=0")

	require.NoError(t, err)
	assert.Equal(t, []string{"🎉"}, typed)
}

func TestRoot_CancelStartsNoChild(t *testing.T) {
	origStart := startChild
	t.Cleanup(func() { startChild = origStart })
	startChild = func(*exec.Cmd) error {
		t.Fatal("no child expected after cancel")
		return nil
	}
	stubPicker(t, "tada", tui.Cancelled, nil, nil)
	newInjector = func(string, inject.Environment) (inject.Injector, error) {
		return inject.Xdotool(), nil
	}

	_, err := execute(t)

	require.NoError(t, err)
}

func TestInject_TypesAfterDelay(t *testing.T) {
	inj := &fakeInjector{}
	stubPicker(t, "", tui.Aborted, inj, nil)

	start := time.Now()
	_, err := execute(t, "inject", "--backend=xdotool", "--delay=30ms", "--", "🎉")

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, []string{"🎉"}, inj.texts)
}

func TestInject_FailureIsReported(t *testing.T) {
	inj := &fakeInjector{err: &inject.Failure{Backend: "fake", Err: inject.ErrRejected, Detail: "no display"}}
	stubPicker(t, "", tui.Aborted, inj, nil)

	_, err := execute(t, "inject", "--delay=0", "🎉")

	assert.ErrorIs(t, err, inject.ErrRejected)
	assert.ErrorContains(t, err, "insert failed")
	assert.Len(t, inj.texts, 1)
}

func TestInject_IgnoresConfigFile(t *testing.T) {
	inj := &fakeInjector{}
	stubPicker(t, "", tui.Aborted, inj, nil)

	_, err := executeWithConfig(t, writeConfig(t, "limit = 0\nbackend = \"morse\""),
		"inject", "--backend=wtype", "--delay=0", "🎉")

	require.NoError(t, err)
	assert.Equal(t, "wtype", cfg.Backend)
	assert.Equal(t, []string{"🎉"}, inj.texts)
}

func TestInject_Hidden(t *testing.T) {
	assert.True(t, injectCmd.Hidden)
}

func TestConfig_FlagOverridesInvalidFileValue(t *testing.T) {
	inj := &fakeInjector{}
	stubPicker(t, "tada", tui.Confirmed, inj, nil)

	_, err := executeWithConfig(t, writeConfig(t, "limit = 0"), "--limit=5", "--delay=0")

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Limit)
	assert.Equal(t, []string{"🎉"}, inj.texts)
}

func TestConfig_InvalidFileValueWithoutOverride(t *testing.T) {
	stubPicker(t, "tada", tui.Confirmed, &fakeInjector{}, nil)

	_, err := executeWithConfig(t, writeConfig(t, "limit = 0"))

	assert.ErrorContains(t, err, "limit must be at least 1")
}

func TestConfig_MissingExplicitFile(t *testing.T) {
	stubPicker(t, "tada", tui.Confirmed, &fakeInjector{}, nil)

	_, err := executeWithConfig(t, filepath.Join(t.TempDir(), "missing.toml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSearch_PrintsLabels(t *testing.T) {
	out, err := execute(t, "search", "grinning")

	require.NoError(t, err)
	assert.Contains(t, out, "grinning")
}

func TestSearch_Limit(t *testing.T) {
	out, err := execute(t, "search", "-n", "3", "smile")

	require.NoError(t, err)
	assert.Len(t, bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n")), 3)
}

func TestSearch_JSON(t *testing.T) {
	out, err := execute(t, "search", "--json", "tada")

	require.NoError(t, err)
	var results []searchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.NotEmpty(t, results)
	assert.Equal(t, "🎉", results[0].Emoji)
	for _, r := range results {
		assert.LessOrEqual(t, r.Score, 1.0)
	}
}

func TestSearch_RequiresQuery(t *testing.T) {
	_, err := execute(t, "search")

	assert.ErrorContains(t, err, "requires at least 1 arg(s)")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "quemoji dev\n", out)
}
