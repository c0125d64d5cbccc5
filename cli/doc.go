/*
Package cli structures a command line tool as a tree of sub-commands.

  - Each [Command] has its own [pflag] flag set. Flags aren't interspersed with arguments, and there are no global flags.
  - Output goes through a shared [Printer], which defaults to STDERR and may be redirected.
  - Commands are matched case-insensitively, and may have aliases given to [CommandSet.AddCommand].

# Invocation

A tool built with this package is always invoked the same way:

	CLI_NAME [SUB-COMMAND...] [FLAGS...] [ARGS...]

Calling CLI_NAME alone, or with one of [HelpPatterns], prints the available commands when the tool calls [CommandSet.RespondUsage].
Every command accepts -h and --help, and prints its usage text along with its flags and sub-commands.

[pflag]: https://github.com/spf13/pflag
*/
package cli
