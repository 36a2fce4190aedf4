package cli

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dslpatch/catalog"
	"github.com/ardnew/dslpatch/cli/cmd"
	"github.com/ardnew/dslpatch/log"
	"github.com/ardnew/dslpatch/pkg"
)

// CLI is the top-level command-line interface for dslpatch.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Catalog   []string         `help:"Catalog file(s) extending the built-in entries"             placeholder:"FILE" short:"c" type:"existingfile"`
	Templates []string         `help:"Template directories searched before the built-in templates" placeholder:"DIR"  short:"t" type:"existingdir"`
	Version   kong.VersionFlag `help:"Print version and exit"                                                          short:"V"`

	Init    cmd.Init    `cmd:"" help:"Initialize configuration file"`
	List    cmd.List    `cmd:"" help:"List catalog entries"`
	Patch   cmd.Patch   `cmd:"" help:"Patch templates with a value tree"`
	Compile cmd.Compile `cmd:"" help:"Patch templates and compile the results"`
}

// Run executes the dslpatch CLI with the given context and arguments.
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

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		"version":            pkg.Version(),
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
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
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(cmd.ConfigIdentifier), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values, including those
	// read from the configuration file.
	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	ctx = cmd.WithContext(ctx, ktx)

	ctx, err = cli.sources(ctx)
	if err != nil {
		return err
	}

	return ktx.Run(ctx, &cli)
}

// sources extends the built-in catalog with the --catalog files and layers
// the template directories over the built-in templates. A catalog file's own
// directory is searched for its templates after every --templates directory.
func (c *CLI) sources(ctx context.Context) (context.Context, error) {
	cat := catalog.Builtin()
	layers := make([]fs.FS, 0, len(c.Templates)+len(c.Catalog)+1)

	for _, dir := range c.Templates {
		layers = append(layers, os.DirFS(dir))
	}

	for _, file := range c.Catalog {
		entries, err := catalog.Load(file)
		if err != nil {
			return ctx, err
		}

		cat, err = cat.With(entries...)
		if err != nil {
			return ctx, pkg.WrapError(err).With(slog.String("file", file))
		}

		layers = append(layers, os.DirFS(filepath.Dir(file)))

		log.DebugContext(ctx, "loaded catalog",
			slog.String("file", file),
			slog.Int("entries", len(entries)),
		)
	}

	layers = append(layers, catalog.Templates)

	ctx = cmd.WithCatalog(ctx, cat)
	ctx = cmd.WithTemplates(ctx, catalog.Overlay(layers...))

	return ctx, nil
}
