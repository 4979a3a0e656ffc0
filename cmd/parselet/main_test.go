package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(stdin string, command string, args ...string) (string, error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{command, "--no-color", "-g", "testdata/arith.yaml"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestGrammarCommand(t *testing.T) {
	out, err := run("", "grammar")
	require.NoError(t, err)
	assert.Contains(t, out, "tokens:\n")
	assert.Contains(t, out, "  expr (pratt)\n")
	assert.Contains(t, out, "infix   expr := expr '^' expr @40 right\n")
	assert.Contains(t, out, "start: expr\n")
}

func TestTokensCommand(t *testing.T) {
	out, err := run("1 +x", "tokens")
	require.NoError(t, err)
	assert.Equal(t, "-\n"+
		"   1:1   number       \"1\"\n"+
		"   1:3   op           \"+\"\n"+
		"   1:4   name         \"x\"\n", out)

	out, err = run("1 +x", "tokens", "--trivia")
	require.NoError(t, err)
	assert.Contains(t, out, "space        \" \"")
}

func TestTokensFailure(t *testing.T) {
	out, err := run("1 # 2", "tokens")
	assert.EqualError(t, err, "1 of 1 sources failed")
	assert.Contains(t, out, "error:")
}

func TestParseCommand(t *testing.T) {
	out, err := run("", "parse", "-m", "testdata/samples.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "testdata/samples.txt #1 (lines 2-2)\n")
	assert.Contains(t, out, "testdata/samples.txt #3 (lines 6-6)\n")
	assert.Contains(t, out, `name("x")`)
	assert.NotContains(t, out, "error:")
}

func TestParseSeparator(t *testing.T) {
	out, err := run("", "parse", "-q", "-s", "===", "-j", "1", "testdata/samples.txt")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "ok\n"))
}

func TestParseStdin(t *testing.T) {
	out, err := run("1+2", "parse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "-\nexpr {\n"), out)
}

func TestParseErrors(t *testing.T) {
	out, err := run("", "parse", "-e", "-m", "testdata/errors.txt")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "error:"))

	out, err = run("1+", "parse")
	assert.EqualError(t, err, "1 of 1 samples failed")
	assert.Contains(t, out, "error:")
}

func TestUnexpectedSuccess(t *testing.T) {
	out, err := run("1+2", "parse", "-e")
	assert.Error(t, err)
	assert.Contains(t, out, errUnexpectedSuccess.Error())
}

func TestStartFlag(t *testing.T) {
	_, err := run("1", "parse", "--start", "stmt")
	assert.EqualError(t, err, `unknown start parselet "stmt"`)

	_, err = run("1", "parse", "--start", "expr")
	assert.NoError(t, err)
}

func TestInvalidArguments(t *testing.T) {
	_, err := run("1", "parse", "-j", "0")
	assert.EqualError(t, err, "invalid number of jobs: 0")

	_, err = run("1", "parse", "--watch")
	assert.EqualError(t, err, "cannot watch standard input")

	_, err = run("", "parse", "testdata/missing.txt")
	assert.Error(t, err)

	var out bytes.Buffer
	cmd := newRootCmd(&out, &out)
	cmd.SetArgs([]string{"grammar"})
	assert.ErrorIs(t, cmd.Execute(), errNoGrammar)
}

func TestInvalidSource(t *testing.T) {
	_, err := run("\xff", "parse")
	assert.ErrorContains(t, err, "not a valid UTF-8 encoded text")
}
