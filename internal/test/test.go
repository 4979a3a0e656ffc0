// Package test contains helpers shared by package tests.
package test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/parselet"
	"github.com/ava12/parselet/grammar"
	"github.com/ava12/parselet/tree"
)

// ExpectErrorCode fails the test unless e is a *parselet.Error (possibly wrapped) with expected code.
func ExpectErrorCode(t testing.TB, expected int, e error) {
	t.Helper()
	var pe *parselet.Error
	require.Truef(t, errors.As(e, &pe), "expecting error code %d, got %v", expected, e)
	require.Equalf(t, expected, pe.Code, "expecting error code %d, got %v", expected, e)
}

// MustBuild builds grammar failing the test on error.
func MustBuild(t testing.TB, b *grammar.Builder) *grammar.Grammar {
	t.Helper()
	g, e := b.Build()
	require.NoError(t, e)
	return g
}

// Shape returns tree structure with trivia removed: tokens are written as their text,
// a node having a single child collapses to that child,
// any other node is written as parenthesized list of children.
//
//	"1 + 2 * 3"  ->  "(1 + (2 * 3))"
func Shape(e tree.Element) string {
	b := &strings.Builder{}
	shape(e, b)
	return b.String()
}

func shape(e tree.Element, b *strings.Builder) {
	if t, ok := tree.AsToken(e); ok {
		b.WriteString(t.Text())
		return
	}

	var children []tree.Element
	for _, c := range tree.Children(e) {
		if !tree.IsTrivia(c) {
			children = append(children, c)
		}
	}

	if len(children) == 1 {
		shape(children[0], b)
		return
	}

	b.WriteString("(")
	for i, c := range children {
		if i > 0 {
			b.WriteString(" ")
		}
		shape(c, b)
	}
	b.WriteString(")")
}
