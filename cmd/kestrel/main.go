// Package main wires the REPLLoop (interactive use over stdio) and a
// one-shot script mode behind github.com/spf13/cobra subcommands, replacing
// the earlier flag.FlagSet-based dispatch with cobra's argument parsing.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kestrel-lang/kestrel/internal/config"
	"github.com/kestrel-lang/kestrel/internal/debug"
	"github.com/kestrel-lang/kestrel/internal/eval"
	"github.com/kestrel-lang/kestrel/internal/frame"
	"github.com/kestrel-lang/kestrel/internal/kernel/adapters"
	"github.com/kestrel-lang/kestrel/internal/kernel/channels"
	"github.com/kestrel-lang/kestrel/internal/kernel/compiler"
	"github.com/kestrel-lang/kestrel/internal/kernel/debugbridge"
	"github.com/kestrel-lang/kestrel/internal/kernel/execenv"
	"github.com/kestrel-lang/kestrel/internal/kernel/executor"
	"github.com/kestrel-lang/kestrel/internal/kernel/guihost"
	"github.com/kestrel-lang/kestrel/internal/kernel/kernelconfig"
	"github.com/kestrel-lang/kestrel/internal/kernel/magician"
	"github.com/kestrel-lang/kestrel/internal/kernel/replloop"
	"github.com/kestrel-lang/kestrel/internal/kernel/source"
	"github.com/kestrel-lang/kestrel/internal/kernel/traceback"
	"github.com/kestrel-lang/kestrel/internal/native"
	"github.com/kestrel-lang/kestrel/internal/trace"
)

// versionParts is the [4]int stat_startup reports as its Version field
// (adapters.StartupReply), mirroring the reference interpreter's
// sys.version_info-style major/minor/micro/serial tuple.
var versionParts = [4]int{0, 1, 0, 0}

const versionString = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:           "kestrel",
		Short:         "Kestrel interpreter kernel",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runREPL,
	}
	root.Flags().String("sandbox-root", "", "sandbox root directory for file operations")
	root.Flags().Bool("allow-insecure-tls", false, "allow insecure TLS connections globally")
	root.Flags().BoolP("quiet", "q", false, "suppress non-error output")
	root.Flags().BoolP("verbose", "v", false, "enable verbose output")
	root.Flags().Bool("no-history", false, "disable command history")
	root.Flags().String("history-file", "", "history file location")
	root.Flags().String("prompt", "", "custom REPL prompt")
	root.Flags().Bool("no-welcome", false, "skip welcome message")
	root.Flags().Bool("trace", false, "start with tracing enabled")
	root.Flags().String("gui", "", "gui host: busy or tea (default: busy)")
	root.Flags().String("rc-file", "", "path to .kestrelrc.yaml override")

	runCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a Kestrel script and exit",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	runCmd.Flags().Bool("check", false, "check syntax only, do not execute")
	runCmd.Flags().Bool("profile", false, "accepted for compatibility; no profile is produced")
	runCmd.Flags().Bool("trace", false, "enable tracing while running")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the Kestrel version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "kestrel %s %v\n", versionString, versionParts)
			return nil
		},
	}

	root.AddCommand(runCmd, versionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newEvaluator builds a fully registered Kestrel evaluator: every natives
// category wired against the root frame the kernel packages also address
// through core.Evaluator. The
// returned *execenv.Env is what satisfies core.Evaluator everywhere else in
// the kernel, since *eval.Evaluator alone has no IO-writer fields.
func newEvaluator() *execenv.Env {
	ev := eval.NewEvaluator()
	env := execenv.New(ev)
	root := ev.GetFrameByIndex(0)

	native.RegisterMathNatives(root)
	native.RegisterSeriesNatives(root)
	native.RegisterDataNatives(root)
	native.RegisterIONatives(root, env)
	native.RegisterControlNatives(root)
	native.RegisterBitwiseNatives(root)

	if concrete, ok := root.(*frame.Frame); ok {
		native.RegisterHelpNatives(concrete)
	}

	return env
}

// loadConfig parses cobra's flags through internal/config's flag.FlagSet
// (environment first, then flags, then ApplyDefaults). It does not call
// Validate or DetectMode; runREPL calls Validate on the result, and the
// subcommand chosen by cobra decides the mode.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}

	flagArgs := flagsAsArgs(cmd, args)
	if err := cfg.LoadFromFlagsWithArgs(flagArgs); err != nil {
		return nil, err
	}
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// flagsAsArgs reconstructs a flat []string argv from cobra's parsed flags so
// config.LoadFromFlagsWithArgs, which expects raw flag.FlagSet-style
// arguments, sees the same values cobra already validated.
func flagsAsArgs(cmd *cobra.Command, positional []string) []string {
	var out []string
	cmd.Flags().Visit(func(f *pflag.Flag) {
		// --gui and --rc-file are read by runREPL directly; the config
		// flag set does not define them.
		if f.Name == "gui" || f.Name == "rc-file" {
			return
		}
		if f.Value.Type() == "bool" {
			out = append(out, "--"+f.Name)
			return
		}
		out = append(out, "--"+f.Name, f.Value.String())
	})
	out = append(out, positional...)
	return out
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	debug.InitDebugger()
	if err := trace.InitTrace("", 50); err != nil {
		return err
	}

	env := newEvaluator()
	if cfg.Quiet {
		env.SetOutputWriter(io.Discard)
	}

	bridge := debugbridge.New(debug.GlobalDebugger)
	tracer := trace.GlobalTraceSession
	x := executor.New(env, bridge, tracer)
	mag := magician.New(env)
	reg := source.NewRegistry()

	rcPath, _ := cmd.Flags().GetString("rc-file")
	fileSnap, err := kernelconfig.Load(rcPath)
	if err != nil {
		return err
	}
	guiFlag, _ := cmd.Flags().GetString("gui")
	snap := kernelconfig.Merge(fileSnap, adapters.StartupSnapshot{GUI: guiFlag})

	ch, closeFn, err := buildChannels(cfg)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}

	loop := replloop.New(ch, x, x, mag, reg, snap.StartupScript)

	host := buildGuiHost(snap.GUI)
	intent := loop.Run(host, replloop.DefaultPeriod)
	if intent.Code != 0 {
		os.Exit(intent.Code)
	}
	return nil
}

func buildChannels(cfg *config.Config) (adapters.Channels, func(), error) {
	if channels.IsTerminal(os.Stdin) {
		tty, err := channels.NewTTYChannels(channels.TTYOptions{
			Prompt:      ">>> ",
			HistoryFile: cfg.HistoryFile,
			NoHistory:   cfg.NoHistory,
			Out:         os.Stdout,
		})
		if err != nil {
			return nil, nil, err
		}
		return tty, func() { _ = tty.Close() }, nil
	}
	return channels.NewStreamChannels(os.Stdin, os.Stdout), nil, nil
}

func buildGuiHost(gui string) adapters.GuiHost {
	if gui == "tea" {
		return guihost.NewTeaGuiHost()
	}
	return guihost.NewBusyLoopHost()
}

func runScript(cmd *cobra.Command, args []string) error {
	scriptFile := args[0]
	checkOnly, _ := cmd.Flags().GetBool("check")
	traceOn, _ := cmd.Flags().GetBool("trace")

	data, err := os.ReadFile(scriptFile)
	if err != nil {
		return err
	}

	debug.InitDebugger()
	if err := trace.InitTrace("", 50); err != nil {
		return err
	}
	if traceOn {
		trace.GlobalTraceSession.Enable(trace.TraceFilters{})
	}

	env := newEvaluator()
	bridge := debugbridge.New(debug.GlobalDebugger)
	x := executor.New(env, bridge, trace.GlobalTraceSession)

	origin := source.NewOriginTag(scriptFile, 0)
	out := compiler.Compile(string(data), origin, compiler.Exec)
	switch out.Result {
	case compiler.Invalid:
		fmt.Fprintln(os.Stderr, traceback.RewriteSyntaxError(out.Err.Filename, out.Err.Line, out.Err.Text, out.Err.Message))
		os.Exit(1)
	case compiler.Incomplete:
		return fmt.Errorf("%s: incomplete source", scriptFile)
	}
	if checkOnly {
		return nil
	}

	reg := source.NewRegistry()
	id := reg.NextID(origin)
	reg.Store(id, string(data))

	result := x.Run(out.Unit)
	switch result.Outcome {
	case executor.Normal:
		if result.Err != nil {
			rewritten := traceback.Rewrite(result.Err, origin, reg, id, true, false)
			fmt.Fprintln(os.Stderr, rewritten.Text)
			os.Exit(1)
		}
	case executor.Exited:
		os.Exit(result.ExitCode)
	}
	return nil
}
