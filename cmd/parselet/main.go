/*
Command parselet checks grammar definitions and parses sources with them.

Usage is

	parselet -g <grammar.yaml> grammar
	parselet -g <grammar.yaml> tokens [--trivia] [files...]
	parselet -g <grammar.yaml> parse [-e] [{-m | -s <prefix>}] [-j <jobs>] [--watch] [files...]

Grammar definition format is described in package internal/grammarfile.
Standard input is read when no files are given or a file name is "-".

Command parse may treat a source file as multiple samples. With -m flag the first line
of the file is the separator: each line starting with the same sequence of non-spacing
characters separates samples, the rest of the line may be used as a comment.
With -s <prefix> flag the file is treated as multiple samples if it starts with the prefix.
The last LF preceding a separator is not included in the sample.

With -e flag every sample is expected to contain a syntax error.
The command exits with non-zero code if any sample fails.
*/
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
