package cli

import (
	"errors"
	"fmt"
	"github.com/saylorsolutions/observe/iterx"
	flag "github.com/spf13/pflag"
	"regexp"
	"slices"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	HelpPatterns      = []string{"--help", "-h", "help"} // HelpPatterns are the first arguments that make [CommandSet.RespondUsage] print the available commands.

	spacePattern = regexp.MustCompile(`\s`)
)

// CommandFunc is the work done by a [Command], called with its parsed flags.
type CommandFunc = func(flags *flag.FlagSet, printer *Printer) error

// Command is an executable node in a tree of commands.
// It's also a [CommandSet], so it may have sub-commands of its own.
type Command struct {
	CommandSet
	flags      *flag.FlagSet
	exec       CommandFunc
	key        string
	parent     string
	shortUsage string
	aliases    []string
}

func normalizeKey(key string) string {
	return spacePattern.ReplaceAllString(strings.ToLower(key), "")
}

func joinPath(parent, key string) string {
	if len(parent) == 0 {
		return key
	}
	return parent + " " + key
}

func newCommand(key, parent, shortUsage string, printer *Printer) *Command {
	key = normalizeKey(key)
	path := joinPath(parent, key)
	fs := flag.NewFlagSet(path, flag.ContinueOnError)
	fs.BoolP("help", "h", false, "Prints this usage information")
	fs.SetInterspersed(false)
	fs.SetOutput(printer)
	cmd := &Command{
		CommandSet: CommandSet{printer: printer, path: path},
		flags:      fs,
		key:        key,
		parent:     parent,
		shortUsage: shortUsage,
	}
	cmd.Usage("")
	cmd.exec = func(flags *flag.FlagSet, _ *Printer) error {
		flags.Usage()
		return nil
	}
	return cmd
}

// Does sets the [CommandFunc] run by this [Command].
// Until it's called, running the Command prints its usage.
func (c *Command) Does(commandFunc CommandFunc) *Command {
	if commandFunc != nil {
		c.exec = commandFunc
	}
	return c
}

// Parent returns the invocation path of the [CommandSet] this [Command] belongs to.
func (c *Command) Parent() string {
	return c.parent
}

// Flags returns the flag set of this [Command], so flags may be defined before it runs.
func (c *Command) Flags() *flag.FlagSet {
	return c.flags
}

// Usage sets a longer description of how to call this [Command], which is printed for -h or --help.
// The parent path is prepended to the text, and the short usage, flags, and sub-commands are added around it.
func (c *Command) Usage(format string, args ...any) *Command {
	text := fmt.Sprintf(format, args...)
	c.flags.Usage = func() {
		var buf strings.Builder
		if len(text) == 0 {
			buf.WriteString("\n" + c.shortUsage + "\n")
		} else {
			fmt.Fprintf(&buf, "%s\n\nUSAGE:\n%s\n", c.shortUsage, strings.TrimSuffix(joinPath(c.parent, text), "\n"))
		}
		buf.WriteString("\nFLAGS\n")
		buf.WriteString(c.flags.FlagUsages())
		if len(c.commands) > 0 {
			buf.WriteString("\nCOMMANDS\n")
			buf.WriteString(c.CommandUsages())
		}
		c.printer.Print(buf.String())
	}
	return c
}

// Exec runs a matching sub-command if the first argument names one.
// Otherwise args are parsed as this Command's flags and arguments, and its [CommandFunc] is called.
func (c *Command) Exec(args []string) error {
	if len(args) > 0 {
		if sub, ok := c.lookup(args[0]); ok {
			return sub.Exec(args[1:])
		}
	}
	if err := c.flags.Parse(args); err != nil {
		return err
	}
	if MustGet(c.flags.GetBool("help")) {
		c.flags.Usage()
		return nil
	}
	return c.exec(c.flags, c.printer)
}

// CommandSet is a group of [Command] that share a [Printer].
type CommandSet struct {
	commands map[string]*Command
	aliases  map[string]*Command
	printer  *Printer
	path     string
}

// NewCommandSet creates the root of a tool's command tree.
// The path is the words used to invoke the tool, and prefixes the usage text of every sub-command.
func NewCommandSet(path ...string) *CommandSet {
	return &CommandSet{printer: NewPrinter(), path: strings.Join(path, " ")}
}

// Path returns the words used to invoke this [CommandSet].
func (s *CommandSet) Path() string {
	return s.path
}

// AddCommand adds a sub-command, replacing any with the same key.
// The key and aliases are lower-cased and stripped of white space.
func (s *CommandSet) AddCommand(key, shortUsage string, aliases ...string) *Command {
	cmd := newCommand(key, s.path, shortUsage, s.Printer())
	if s.commands == nil {
		s.commands = map[string]*Command{}
	}
	s.commands[cmd.key] = cmd
	for _, alias := range aliases {
		alias = normalizeKey(alias)
		if len(alias) == 0 || alias == cmd.key {
			continue
		}
		if s.aliases == nil {
			s.aliases = map[string]*Command{}
		}
		s.aliases[alias] = cmd
		cmd.aliases = append(cmd.aliases, alias)
	}
	slices.Sort(cmd.aliases)
	return cmd
}

// Printer returns the [Printer] shared by this [CommandSet] and its sub-commands.
func (s *CommandSet) Printer() *Printer {
	if s.printer == nil {
		s.printer = NewPrinter()
	}
	return s.printer
}

func (s *CommandSet) lookup(key string) (*Command, bool) {
	key = strings.ToLower(key)
	if cmd, ok := s.commands[key]; ok {
		return cmd, true
	}
	cmd, ok := s.aliases[key]
	return cmd, ok
}

// Exec runs the sub-command named by the first argument with the rest of args.
func (s *CommandSet) Exec(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no arguments", ErrUnknownCommand)
	}
	cmd, ok := s.lookup(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return cmd.Exec(args[1:])
}

// RespondUsage prints the available commands if args is empty or starts with one of [HelpPatterns].
// The format and vals describe the tool, and are printed below its path.
// Returns true if usage was printed, in which case nothing should be executed.
func (s *CommandSet) RespondUsage(args []string, format string, vals ...any) bool {
	if len(args) > 0 && !slices.Contains(HelpPatterns, args[0]) {
		return false
	}
	var buf strings.Builder
	buf.WriteString(s.path + "\n")
	if text := strings.TrimSuffix(fmt.Sprintf(format, vals...), "\n"); len(text) > 0 {
		buf.WriteString("\n" + text + "\n")
	}
	buf.WriteString("\nCOMMANDS:\n")
	buf.WriteString(s.CommandUsages())
	s.Printer().Print(buf.String())
	return true
}

// CommandUsages lists the sub-commands, their aliases, and their short usage, sorted by key.
func (s *CommandSet) CommandUsages() string {
	keys := iterx.SelectMap(s.commands).Keys().Slice()
	slices.Sort(keys)
	labels := make([]string, len(keys))
	width := 0
	for i, key := range keys {
		labels[i] = strings.Join(append([]string{key}, s.commands[key].aliases...), ", ")
		width = max(width, len(labels[i]))
	}
	var buf strings.Builder
	for i, key := range keys {
		fmt.Fprintf(&buf, "  %-*s  %s\n", width, labels[i], s.commands[key].shortUsage)
	}
	return buf.String()
}
