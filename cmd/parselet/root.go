package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava12/parselet/grammar"
	"github.com/ava12/parselet/internal/grammarfile"
	"github.com/ava12/parselet/internal/printer"
	"github.com/ava12/parselet/source"
)

const (
	defaultTimeout = time.Minute
	maxFileSize    = 1 << 20
	stdinName      = "-"
)

var errNoGrammar = errors.New("grammar definition file is not specified, use -g flag")

// app holds global flags and resources shared by subcommands.
type app struct {
	grammarFile string
	verbose     bool
	noColor     bool
	timeout     time.Duration
	width       int

	logger      *zap.Logger
	out, errOut io.Writer
	in          io.Reader
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, logger: zap.NewNop()}
	root := &cobra.Command{
		Use:               "parselet",
		Short:             "parselet - check grammar definitions and parse sources with them",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.grammarFile, "grammar", "g", "", "grammar definition file (YAML)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log grammar construction and parsing steps")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	flags.DurationVar(&a.timeout, "timeout", defaultTimeout, "time limit for processing a single source")
	flags.IntVarP(&a.width, "width", "w", printer.DefaultWidth, "maximum output line width, runes")

	root.AddCommand(newGrammarCmd(a), newTokensCmd(a), newParseCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.in = cmd.InOrStdin()
	if a.noColor {
		color.NoColor = true
	}

	cfg := zap.NewProductionConfig()
	if a.verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) printer() *printer.Printer {
	return printer.New(a.out, a.width)
}

// context limits processing of a single source.
func (a *app) context(parent context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, a.timeout)
}

func (a *app) loadDefinition() (*grammarfile.Definition, error) {
	if a.grammarFile == "" {
		return nil, errNoGrammar
	}

	d, err := grammarfile.Load(a.grammarFile, grammar.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}

	a.logger.Debug("grammar loaded",
		zap.String("file", a.grammarFile),
		zap.String("start", d.Start.Name()),
		zap.Bool("layout", d.Layout != nil),
	)
	return d, nil
}

func (a *app) readFile(name string) (string, error) {
	var (
		content []byte
		err     error
	)
	if name == stdinName {
		content, err = io.ReadAll(io.LimitReader(a.in, maxFileSize+1))
	} else {
		var info os.FileInfo
		if info, err = os.Stat(name); err == nil && info.Size() > maxFileSize {
			return "", fmt.Errorf("%s: file too large (%d bytes)", name, info.Size())
		}
		if err == nil {
			content, err = os.ReadFile(name)
		}
	}
	if err != nil {
		return "", err
	}

	if len(content) > maxFileSize {
		return "", fmt.Errorf("%s: file too large", name)
	}
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%s: not a valid UTF-8 encoded text", name)
	}
	return strings.ReplaceAll(string(content), "\r\n", "\n"), nil
}

func (a *app) readSources(names []string) ([]*source.Source, error) {
	if len(names) == 0 {
		names = []string{stdinName}
	}

	res := make([]*source.Source, 0, len(names))
	for _, name := range names {
		content, err := a.readFile(name)
		if err != nil {
			return nil, err
		}
		res = append(res, source.New(name, content))
	}
	return res, nil
}
