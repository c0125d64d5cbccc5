package cli

import (
	"bytes"
	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"sync"
	"testing"
)

func testPrinter() (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	printer := NewPrinter()
	printer.Redirect(&buf)
	return printer, &buf
}

func TestCommand_Exec(t *testing.T) {
	printer, buf := testPrinter()
	cmd := newCommand("test", "", "test command", printer)
	assert.NoError(t, cmd.Exec(nil))
	assert.Contains(t, buf.String(), "test command", "A command without a function should print its usage")

	executed := false
	cmd.Does(func(flags *flag.FlagSet, _ *Printer) error {
		executed = true
		return nil
	})
	assert.NoError(t, cmd.Exec(nil))
	assert.True(t, executed)
}

func TestCommandSet_Exec(t *testing.T) {
	set := NewCommandSet()
	set.Printer().Redirect(&bytes.Buffer{})
	assert.ErrorIs(t, set.Exec(nil), ErrUnknownCommand)

	cmd := set.AddCommand("Test Command", "test command")
	executed := 0
	cmd.Does(func(flags *flag.FlagSet, _ *Printer) error {
		executed++
		return nil
	})
	assert.NoError(t, set.Exec([]string{"testcommand"}))
	assert.NoError(t, set.Exec([]string{"TESTCOMMAND"}))
	assert.Equal(t, 2, executed)

	err := set.Exec([]string{"Does", "not", "exist"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.ErrorContains(t, err, "Does")
}

func TestCommand_SubCommand(t *testing.T) {
	set := NewCommandSet("tool")
	printer, buf := testPrinter()
	set.printer = printer

	var parentArgs []string
	parent := set.AddCommand("parent", "parent command").Does(func(flags *flag.FlagSet, _ *Printer) error {
		parentArgs = flags.Args()
		return nil
	})
	subExecuted := 0
	parent.AddCommand("sub", "sub command", "s").Does(func(*flag.FlagSet, *Printer) error {
		subExecuted++
		return nil
	})

	require.NoError(t, set.Exec([]string{"parent", "blah"}))
	assert.Equal(t, []string{"blah"}, parentArgs)
	assert.Zero(t, subExecuted)

	require.NoError(t, set.Exec([]string{"parent", "SUB"}))
	require.NoError(t, set.Exec([]string{"parent", "s"}))
	assert.Equal(t, 2, subExecuted)

	require.NoError(t, set.Exec([]string{"parent", "-h"}))
	usage := buf.String()
	assert.Contains(t, usage, "parent command")
	assert.Contains(t, usage, "COMMANDS\n  sub, s  sub command\n")
	assert.Equal(t, "tool parent", parent.Path())
	assert.Equal(t, "tool", parent.Parent())
}

func TestCommand_Exec_BadFlag(t *testing.T) {
	set := NewCommandSet("tool")
	set.AddCommand("run", "runs").Does(func(*flag.FlagSet, *Printer) error {
		t.Fatal("Should not run with a bad flag")
		return nil
	})
	assert.ErrorContains(t, set.Exec([]string{"run", "--nope"}), "unknown flag: --nope")
}

func TestCommandSet_RespondUsage(t *testing.T) {
	set := NewCommandSet("tool")
	printer, buf := testPrinter()
	set.printer = printer
	set.AddCommand("beta", "second command", "b")
	set.AddCommand("alpha", "first command")

	assert.False(t, set.RespondUsage([]string{"alpha"}, "Does things"))
	assert.Empty(t, buf.String())

	for _, args := range [][]string{nil, {"-h"}, {"--help"}, {"help"}} {
		buf.Reset()
		assert.True(t, set.RespondUsage(args, "Does %s", "things"))
		assert.Equal(t, strings.Join([]string{
			"tool",
			"",
			"Does things",
			"",
			"COMMANDS:",
			"  alpha    first command",
			"  beta, b  second command",
		}, "\n")+"\n", buf.String())
	}
}

func TestPrinter_Concurrent(t *testing.T) {
	printer, buf := testPrinter()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			printer.Println("line")
		}()
	}
	wg.Wait()
	assert.Equal(t, strings.Repeat("line\n", 20), buf.String())
}

func TestMustGet(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Bool("on", true, "")
	assert.True(t, MustGet(fs.GetBool("on")))
	assert.Panics(t, func() {
		MustGet(fs.GetString("on"))
	})
	assert.Panics(t, func() {
		MustGet(fs.GetBool("missing"))
	})
}
