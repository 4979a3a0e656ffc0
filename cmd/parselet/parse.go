package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava12/parselet/parser"
	"github.com/ava12/parselet/source"
	"github.com/ava12/parselet/symbol"
	"github.com/ava12/parselet/tree"
)

var errUnexpectedSuccess = errors.New("expecting syntax error, got success")

type parseFlags struct {
	start       string
	trivia      bool
	expectError bool
	multi       bool
	separator   string
	jobs        int
	quiet       bool
	watch       bool
}

type result struct {
	src  *source.Source
	node *tree.Node
	err  error
}

// failed tells whether the result does not meet expectations.
func (r result) failed(expectError bool) bool {
	return (r.err != nil) != expectError
}

// parseRun is a parser bound to a start parselet and flags.
type parseRun struct {
	*app
	flags  parseFlags
	parser *parser.Parser
	start  symbol.ParseletID
}

func newParseCmd(a *app) *cobra.Command {
	var pf parseFlags
	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Parse sources and print parse trees",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.newParseRun(pf)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				args = []string{stdinName}
			}
			failed, total, err := r.runFiles(cmd.Context(), args)
			if err != nil {
				return err
			}

			if pf.watch {
				return r.watch(cmd.Context(), args)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d samples failed", failed, total)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&pf.start, "start", "", "start parselet, defaults to the one set in grammar file")
	flags.BoolVar(&pf.trivia, "trivia", false, "include trivia tokens in parse trees")
	flags.BoolVarP(&pf.expectError, "expect-error", "e", false, "every sample is expected to contain a syntax error")
	flags.BoolVarP(&pf.multi, "multi", "m", false, "files contain multiple samples, the first line is the separator")
	flags.StringVarP(&pf.separator, "separator", "s", "", "treat a file as multiple samples if it starts with this prefix")
	flags.IntVarP(&pf.jobs, "jobs", "j", runtime.NumCPU(), "number of samples parsed simultaneously")
	flags.BoolVarP(&pf.quiet, "quiet", "q", false, "print only errors and status lines")
	flags.BoolVar(&pf.watch, "watch", false, "parse files again every time they are modified")
	return cmd
}

func (a *app) newParseRun(pf parseFlags) (*parseRun, error) {
	if pf.jobs < 1 {
		return nil, fmt.Errorf("invalid number of jobs: %d", pf.jobs)
	}

	d, err := a.loadDefinition()
	if err != nil {
		return nil, err
	}

	r := &parseRun{
		app:    a,
		flags:  pf,
		parser: d.NewParser(parser.WithLogger(a.logger)),
		start:  d.Start,
	}
	if pf.start != "" {
		var found bool
		if r.start, found = d.Grammar.Parselet(pf.start); !found {
			return nil, fmt.Errorf("unknown start parselet %q", pf.start)
		}
	}
	return r, nil
}

// runFiles parses all samples contained in files and prints results.
// Returns numbers of failed and total samples.
func (r *parseRun) runFiles(ctx context.Context, names []string) (int, int, error) {
	var samples []*source.Source
	for _, name := range names {
		content, err := r.readFile(name)
		if err != nil {
			return 0, 0, err
		}
		srcs, err := splitSamples(name, content, r.flags.multi, r.flags.separator)
		if err != nil {
			return 0, 0, err
		}
		samples = append(samples, srcs...)
	}

	results, err := r.parseAll(ctx, samples)
	if err != nil {
		return 0, 0, err
	}
	failed, err := r.report(results)
	return failed, len(results), err
}

func (r *parseRun) newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.errOut),
		progressbar.OptionSetVisibility(total > 1),
		progressbar.OptionSetDescription("[cyan]parsing[reset]"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// parseAll parses samples concurrently, results keep samples order.
// Syntax errors are stored in results, only cancellation of ctx is returned as error.
func (r *parseRun) parseAll(ctx context.Context, samples []*source.Source) ([]result, error) {
	results := make([]result, len(samples))
	bar := r.newProgressBar(len(samples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.flags.jobs)
	for i, src := range samples {
		i, src := i, src
		g.Go(func() error {
			sctx, cancel := r.context(gctx)
			defer cancel()

			node, err := r.parser.ParseContext(sctx, src, r.start)
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			results[i] = result{src, node, err}
			_ = bar.Add(1)
			r.logger.Debug("sample parsed", zap.String("source", src.Name()), zap.Error(err))
			return nil
		})
	}

	err := g.Wait()
	_ = bar.Finish()
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *parseRun) report(results []result) (int, error) {
	p := r.printer()
	failed := 0
	for _, res := range results {
		p.Header(res.src.Name())
		if res.failed(r.flags.expectError) {
			failed++
		}

		switch {
		case res.err != nil:
			p.Error(res.err)
		case r.flags.expectError:
			p.Error(errUnexpectedSuccess)
		case r.flags.quiet:
			p.Success("ok")
		default:
			p.Tree(res.node, r.flags.trivia)
		}
	}
	return failed, p.Err()
}
