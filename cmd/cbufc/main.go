// Command cbufc is a small CLI over package cbuf: parse a .cbuf schema
// file, print its struct hashes, and encode or decode framed binary
// messages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cbufc",
		Short:         "cbuf schema compiler and wire inspector",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	registerGlobalFlags(cmd.PersistentFlags())
	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newHashCmd())
	cmd.AddCommand(newEncodeCmd())
	cmd.AddCommand(newDecodeCmd())
	return cmd
}

// registerGlobalFlags takes the raw *pflag.FlagSet, mirroring the
// teacher's own plugin.RegisterFlags(flag.CommandLine) pattern so every
// subcommand's persistent flags are registered from one place.
func registerGlobalFlags(fs *pflag.FlagSet) {
	fs.Bool("no-color", false, "disable colorized output even on a terminal")
}
