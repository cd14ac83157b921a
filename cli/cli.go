package cli

import (
	"context"
	"io"

	"github.com/alecthomas/kong"

	"github.com/ardnew/doji/cli/cmd"
	"github.com/ardnew/doji/pkg"
)

// CLI is the doji command line.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	MemLimit int              `default:"0" help:"Maximum bytes of memory per parse; 0 is unlimited." placeholder:"BYTES"`
	Version  kong.VersionFlag `help:"Print version and exit." short:"V"`

	Parse  cmd.Parse  `cmd:"" default:"withargs" help:"Parse a source and print its syntax tree"`
	Tokens cmd.Tokens `cmd:""                    help:"Print the token stream of a source"`
	Check  cmd.Check  `cmd:""                    help:"Parse sources concurrently and report diagnostics"`
	Repl   cmd.Repl   `cmd:""                    help:"Parse lines interactively"`
}

// Run parses args and runs the selected command. Usage errors and
// --version call exit.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	return run(ctx, exit, nil, nil, args...)
}

// run is [Run] writing to stdout and stderr instead of the process streams
// when both are given.
func run(
	ctx context.Context,
	exit func(code int),
	stdout, stderr io.Writer,
	args ...string,
) error {
	if err := mkdirAllRequired(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var cli CLI

	// Logger flags take effect before kong runs, wherever they appear.
	cli.Log.scan(args)

	// The provider reads ctx when a command first asks for it, after ctx
	// has picked up the parsed kong context and memory limit below.
	opts := cli.options(exit, func() context.Context { return ctx })
	if stdout != nil && stderr != nil {
		opts = append(opts, kong.Writers(stdout, stderr))
	}

	parser, err := kong.New(&cli, opts...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithMemLimit(cmd.WithContext(ctx, ktx), cli.MemLimit)

	defer cli.Log.start(ctx)()
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// options configures kong for cli. Flag defaults may come from config.json
// or config.toml in the configuration directory.
func (cli *CLI) options(
	exit func(code int),
	provide func() context.Context,
) []kong.Option {
	vars := kong.Vars{
		cmd.CacheIdentifier: pkg.CacheDir(),
		"version":           pkg.Name + " " + pkg.Version,
	}

	for _, more := range []kong.Vars{cmd.Vars(), cli.Log.vars(), cli.Pprof.vars()} {
		vars = vars.CloneWith(more)
	}

	config := configPath(baseConfig)

	return []kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.BindSingletonProvider(provide),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, config+".json"),
		kong.Configuration(loadTOML, config+".toml"),
		vars,
	}
}
