package main

import (
	"github.com/spf13/cobra"
)

func newGrammarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "grammar",
		Short: "Check grammar definition and print its tokens and production tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDefinition()
			if err != nil {
				return err
			}

			p := a.printer().Grammar(d.Grammar)
			p.Header("start: " + d.Start.Name())
			if d.Layout != nil {
				p.Header("layout: indent " + d.Layout.Indent + ", dedent " + d.Layout.Dedent)
			}
			return p.Err()
		},
	}
}
