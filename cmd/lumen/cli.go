package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/labstack/gommon/color"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"lumen/internal"
)

const (
	name        = "lumen"
	description = "A small dynamically typed scripting language."
)

// CLI is the top-level command line of lumen
type CLI struct {
	Config kong.ConfigFlag `help:"Configuration file." placeholder:"FILE" short:"c"`

	LogLevel   string `default:"warn" enum:"trace,debug,info,warn,error" help:"Log level (${enum})." name:"log-level"`
	LogFormat  string `default:"text" enum:"text,json" help:"Log format (${enum})." name:"log-format"`
	MaxDepth   int    `default:"2048" help:"Maximum number of nested calls." name:"max-depth"`
	NoColor    bool   `help:"Disable colored output." name:"no-color"`
	Profile    string `default:"" enum:",cpu,mem" help:"Write a cpu or mem profile." placeholder:"MODE"`
	ProfileDir string `default:"." help:"Profile output directory." name:"profile-dir" type:"path"`

	Run    runCmd    `cmd:"" help:"Run a script."`
	Repl   replCmd   `cmd:"" default:"1" help:"Start an interactive session."`
	Ast    astCmd    `cmd:"" help:"Print the syntax tree of a script."`
	Tokens tokensCmd `cmd:"" help:"Print the tokens of a script."`
}

// app is what every command receives once flags are parsed
type app struct {
	log     *logrus.Logger
	color   *color.Color
	printer stdPrinter
	opts    []internal.Option
}

func (c *CLI) newApp() (*app, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: c.NoColor})
	}

	clr := color.New()
	if c.NoColor {
		clr.Disable()
	}

	return &app{
		log:     logger,
		color:   clr,
		printer: stdPrinter{color: clr},
		opts: []internal.Option{
			internal.WithLogger(logger),
			internal.WithMaxCallDepth(c.MaxDepth),
		},
	}, nil
}

// startProfile is a no-op unless --profile is set
func (c *CLI) startProfile(log *logrus.Logger) (stop func()) {
	var mode func(*profile.Profile)
	switch c.Profile {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	default:
		return func() {}
	}
	log.WithFields(logrus.Fields{"mode": c.Profile, "dir": c.ProfileDir}).Debug("profile start")
	p := profile.Start(mode, profile.ProfilePath(c.ProfileDir), profile.Quiet)
	return p.Stop
}

// Run parses args and executes the selected command
func Run(args []string, exit func(int)) error {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name(name),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Configuration(loadYAML, configPaths()...),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	a, err := cli.newApp()
	if err != nil {
		return err
	}

	defer cli.startProfile(a.log)()

	return ktx.Run(a)
}

type runCmd struct {
	File string `arg:"" help:"Script to run." type:"existingfile"`
}

func (r *runCmd) Run(a *app) error {
	absPath, source, err := readSource(r.File)
	if err != nil {
		return err
	}

	interp := internal.NewInterpreter(a.printer, a.opts...)
	if err := interp.Run(absPath, source); err != nil {
		interp.Report(err)
		return exitCode(internal.ExitCode(err))
	}
	return nil
}

type astCmd struct {
	File string `arg:"" help:"Script to parse." type:"existingfile"`
}

func (c *astCmd) Run(a *app) error {
	absPath, source, err := readSource(c.File)
	if err != nil {
		return err
	}
	tree, err := internal.PrintTree(absPath, source)
	if err != nil {
		internal.NewInterpreter(a.printer).Report(err)
		return exitCode(internal.ExitCode(err))
	}
	fmt.Print(tree)
	return nil
}

type tokensCmd struct {
	File string `arg:"" help:"Script to scan." type:"existingfile"`
}

func (c *tokensCmd) Run(a *app) error {
	_, source, err := readSource(c.File)
	if err != nil {
		return err
	}
	tokens, err := internal.Tokens(source)
	if err != nil {
		internal.NewInterpreter(a.printer).Report(err)
		return exitCode(internal.ExitCode(err))
	}
	fmt.Println(strings.Join(tokens, "\n"))
	return nil
}

func readSource(path string) (string, string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", "", err
	}
	b, err := os.ReadFile(absPath)
	if err != nil {
		return "", "", err
	}
	return absPath, string(b), nil
}
