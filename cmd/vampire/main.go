// Package main provides the vampire command: it lists the bundled reference
// data, shows, validates and copies character files, and rolls dice pools.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/vampire/internal/config"
	"github.com/cory-johannsen/vampire/internal/game/dice"
	"github.com/cory-johannsen/vampire/internal/game/ruleset"
	"github.com/cory-johannsen/vampire/internal/i18n"
	"github.com/cory-johannsen/vampire/internal/observability"
	"github.com/cory-johannsen/vampire/internal/sheet"
	"github.com/cory-johannsen/vampire/internal/storage/xmlstore"
)

const usage = `usage: vampire [flags] <command> [args]

commands:
  catalog             list clans and generations
  show <file>         print a character sheet
  validate <file>     check that a character file loads
  copy <src> <dst>    load a character and save it under a new name
  roll <file> <pool>  roll a dice pool such as dexterity+brawl@6
  config <path>       write the effective configuration to path

flags:`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app holds the collaborators shared by every command.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	tr       *i18n.Translator
	catalog  *ruleset.Catalog
	store    *xmlstore.Store
	renderer *sheet.Renderer
	roller   *dice.Roller
	stdout   io.Writer
	stderr   io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("vampire", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to configuration file; defaults and VAMPIRE_* variables apply when empty")
	lang := flags.String("lang", "", "display language, overrides the configured language")
	color := flags.Bool("color", false, "colorize output")
	flags.Usage = func() {
		fmt.Fprintln(stderr, usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() < 1 {
		flags.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "loading config: %v\n", err)
		return 1
	}
	if *lang != "" {
		cfg.Language = *lang
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "creating logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	cmd, rest := flags.Arg(0), flags.Args()[1:]
	if cmd == "config" {
		return configCommand(cfg, rest, stdout, stderr)
	}

	a, err := newApp(cfg, logger, *color, stdout, stderr)
	if err != nil {
		logger.Error("starting up", zap.Error(err))
		return 1
	}
	a.logger.Debug("running command", zap.String("command", cmd), zap.Strings("args", rest))

	switch cmd {
	case "catalog":
		return a.catalogCommand(rest)
	case "show":
		return a.showCommand(rest)
	case "validate":
		return a.validateCommand(rest)
	case "copy":
		return a.copyCommand(rest)
	case "roll":
		return a.rollCommand(rest)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		flags.Usage()
		return 2
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

func newApp(cfg config.Config, logger *zap.Logger, color bool, stdout, stderr io.Writer) (*app, error) {
	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("loading translations: %w", err)
	}
	var cat *ruleset.Catalog
	if cfg.DataDir != "" {
		cat, err = xmlstore.LoadCatalogDir(cfg.DataDir, logger)
	} else {
		cat, err = xmlstore.LoadEmbeddedCatalog(logger)
	}
	if err != nil {
		return nil, fmt.Errorf("loading reference data: %w", err)
	}
	store, err := xmlstore.NewStore(cfg, cat, logger)
	if err != nil {
		return nil, err
	}
	tr := bundle.Translator(cfg.Language)
	return &app{
		cfg:      cfg,
		logger:   logger,
		tr:       tr,
		catalog:  cat,
		store:    store,
		renderer: sheet.NewRenderer(tr, cat, color),
		roller:   dice.NewLoggedRoller(dice.NewCryptoSource(), logger),
		stdout:   stdout,
		stderr:   stderr,
	}, nil
}

func wantArgs(stderr io.Writer, cmd string, args []string, n int) bool {
	if len(args) != n {
		fmt.Fprintf(stderr, "%s: want %d argument(s), got %d\n", cmd, n, len(args))
		return false
	}
	return true
}

// reportLoad prints a load failure in the display language.
func (a *app) reportLoad(err error) {
	var le *xmlstore.LoadError
	if errors.As(err, &le) {
		fmt.Fprintf(a.stderr, "%s: %v\n", a.tr.Text("error.load", le.Path), le.Err)
		return
	}
	fmt.Fprintln(a.stderr, err)
}

func (a *app) catalogCommand(args []string) int {
	if !wantArgs(a.stderr, "catalog", args, 0) {
		return 2
	}
	out, err := a.renderer.Catalog()
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	fmt.Fprint(a.stdout, out)
	return 0
}

func (a *app) showCommand(args []string) int {
	if !wantArgs(a.stderr, "show", args, 1) {
		return 2
	}
	c, err := a.store.Load(args[0])
	if err != nil {
		a.reportLoad(err)
		return 1
	}
	fmt.Fprint(a.stdout, a.renderer.Character(c))
	return 0
}

func (a *app) validateCommand(args []string) int {
	if !wantArgs(a.stderr, "validate", args, 1) {
		return 2
	}
	c, err := a.store.Load(args[0])
	if err != nil {
		a.reportLoad(err)
		return 1
	}
	fmt.Fprintf(a.stdout, "%s: ok (%s)\n", a.cfg.OpenPath(xmlstore.WithExtension(args[0])), c.ID())
	return 0
}

func (a *app) copyCommand(args []string) int {
	if !wantArgs(a.stderr, "copy", args, 2) {
		return 2
	}
	c, err := a.store.Load(args[0])
	if err != nil {
		a.reportLoad(err)
		return 1
	}
	path, err := a.store.Save(c, args[1])
	if err != nil {
		fmt.Fprintf(a.stderr, "%s: %v\n", a.tr.Text("error.save", args[1]), err)
		return 1
	}
	fmt.Fprintln(a.stdout, path)
	return 0
}

func (a *app) rollCommand(args []string) int {
	if !wantArgs(a.stderr, "roll", args, 2) {
		return 2
	}
	c, err := a.store.Load(args[0])
	if err != nil {
		a.reportLoad(err)
		return 1
	}
	r, err := a.roller.RollFor(c, args[1])
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	outcome := a.tr.Text("roll.successes", r.Successes())
	if r.Botch() {
		outcome = a.tr.Text("roll.botch")
	}
	fmt.Fprintf(a.stdout, "%s %v: %s\n", r.Expression, r.Dice, outcome)
	return 0
}

func configCommand(cfg config.Config, args []string, stdout, stderr io.Writer) int {
	if !wantArgs(stderr, "config", args, 1) {
		return 2
	}
	if err := config.Save(args[0], cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, args[0])
	return 0
}
