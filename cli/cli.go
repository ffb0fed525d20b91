package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/qedcfg/cli/cmd"
	"github.com/ardnew/qedcfg/pkg"
)

// CLI is the top-level command-line interface for qedcfg.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Include []string `help:"Directories searched for included files" name:"include" short:"I" type:"path"`

	Check   cmd.Check   `cmd:"" default:"withargs" help:"Resolve configuration files and report errors"`
	Resolve cmd.Resolve `cmd:""                    help:"Print the resolved configuration"`
	Eval    cmd.Eval    `cmd:""                    help:"Evaluate an expression"`
	Units   cmd.Units   `cmd:""                    help:"List built-in constants and units"`
	Repl    cmd.Repl    `cmd:""                    help:"Evaluate expressions interactively"`
	Init    cmd.Init    `cmd:""                    help:"Initialize CLI configuration file"`

	Version kong.VersionFlag `help:"Print version and exit"`
}

// Run executes the qedcfg CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Version(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags so they take effect regardless of position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Prefix()),
		kong.Description(description()),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithIncludes(ctx, cli.Include)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// description is the help summary followed by the project authors.
func description() string {
	authors := make([]string, 0, len(pkg.Author))
	for _, a := range pkg.Author {
		authors = append(authors, a.Name+" <"+a.Email+">")
	}

	return pkg.Description + "\n\nAuthors: " + strings.Join(authors, ", ")
}
