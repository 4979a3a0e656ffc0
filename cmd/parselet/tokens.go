package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava12/parselet/internal/grammarfile"
	"github.com/ava12/parselet/lexer"
	"github.com/ava12/parselet/parser"
	"github.com/ava12/parselet/source"
)

func newTokensCmd(a *app) *cobra.Command {
	var trivia bool
	cmd := &cobra.Command{
		Use:   "tokens [files...]",
		Short: "Split sources into tokens and print them",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDefinition()
			if err != nil {
				return err
			}
			srcs, err := a.readSources(args)
			if err != nil {
				return err
			}

			p := a.printer()
			failed := 0
			for _, src := range srcs {
				p.Header(src.Name())
				tokens, err := a.tokenize(cmd.Context(), d, src)
				if err != nil {
					p.Error(err)
					failed++
				} else {
					p.Tokens(tokens, trivia)
				}
			}

			if err = p.Err(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d sources failed", failed, len(srcs))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&trivia, "trivia", false, "print trivia tokens too")
	return cmd
}

// tokenize applies the same token layers as parse command does.
func (a *app) tokenize(ctx context.Context, d *grammarfile.Definition, src *source.Source) ([]*lexer.Token, error) {
	ctx, cancel := a.context(ctx)
	defer cancel()

	p := d.NewParser(parser.WithLogger(a.logger.With(zap.String("source", src.Name()))))
	return p.Tokenize(ctx, src)
}
