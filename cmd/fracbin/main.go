package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"unicode"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"fracbin/common"
	"fracbin/config"
	"fracbin/convert"
	"fracbin/misc"
	"fracbin/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		if data, err := config.Dump(env.Cfg); err == nil {
			name := "default.yaml"
			if len(configFile) > 0 {
				name = filepath.Base(configFile)
			}
			env.Rpt.StoreData("config/"+name, data)
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	env.RestoreStdLog()

	// log is synced now and could be put into report, errors must be reported
	// directly to stderr from now on
	if er := env.Rpt.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
	}
	// reporting is closed now - remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := env.Cfg.Logging.PanicLogName()
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Errors are returned from actions as is, cli.Exit() is not used. Whoever
// logged the error sets this so it is not printed twice.
var errWasHandled bool

// called before appContext is destroyed, so error could still be logged
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// error is reported either by exitErrHandler or on exit directly to stderr
	return err
}

// separateValues stops flag parsing before the first token which looks like a
// flag but is not one. Such tokens are values (malformed ones) and must reach
// the action, where they are dropped as any other unparsable value. Once the
// first value is seen StopOnNthArg takes care of the rest.
func separateValues(cmd *cli.Command, args []string) []string {
	if len(args) < 2 {
		return args
	}
	known := make(map[string]cli.Flag)
	for _, f := range append([]cli.Flag{cli.HelpFlag, cli.VersionFlag}, cmd.Flags...) {
		if f == nil {
			continue
		}
		for _, name := range f.Names() {
			known[name] = f
		}
	}

	for i := 1; i < len(args); i++ {
		arg := strings.TrimSpace(args[i])
		if arg == "--" || len(arg) < 2 || arg[0] != '-' {
			return args
		}
		if arg[1] != '-' && !unicode.IsLetter(rune(arg[1])) {
			// negative number, parser treats it as a value already
			return args
		}
		name, _, withValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		f, ok := known[name]
		if !ok {
			res := make([]string, 0, len(args)+1)
			res = append(res, args[:i]...)
			res = append(res, "--")
			return append(res, args[i:]...)
		}
		if vf, ok := f.(cli.DocGenerationFlag); ok && vf.TakesValue() && !withValue {
			i++
		}
	}
	return args
}

func newApp() *cli.Command {
	stopOnFirstValue := 1

	return &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "prints binary representation of decimal fractions",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Action:          convert.Run,
		ArgsUsage:       "[VALUE ...]",
		StopOnNthArg:    &stopOnFirstValue,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
			&cli.StringFlag{Name: "to", Aliases: []string{"t"},
				Usage: "output `LAYOUT` (supported layouts: " + strings.Join(common.ReportFmtNames(), ", ") + "), overrides configuration"},
		},
		CustomRootCommandHelpTemplate: fmt.Sprintf(`%s
VALUE:
    decimal fraction in [0, 1), for example 0.1 or 0.25
    Values which cannot be parsed or are out of range are left out of the output.
    Options are recognized only before the first value.
`, cli.RootCommandHelpTemplate),
		Commands: []*cli.Command{
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}
}

func main() {

	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := newApp()

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			// log is either not set yet (argument parsing) or already closed
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, separateValues(app, os.Args))
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		env.Log.Debug("Outputting configuration", zap.String("state", state), zap.String("file", "STDOUT"))
		_, err = env.Out.Write(data)
	} else {
		env.Log.Info("Outputting configuration", zap.String("state", state), zap.String("file", fname))
		err = os.WriteFile(fname, data, 0644)
	}
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
