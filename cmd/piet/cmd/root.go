// Package cmd implements the piet CLI commands.
//
// The root command dispatches to render, validate and version. Documents
// are bound against in-memory views with fake host providers, so the
// commands need no device.
package cmd

import (
	"io"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

// NewRootCmd returns the root command.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "piet",
		Short: "Piet - declarative frames bound to native views",
		Long: `Piet binds declarative frame documents to platform views.

Use "piet <command> --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Host configuration file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(w io.Writer) error {
	_, err := io.WriteString(w, styles.title.Render("Piet")+" version "+Version+" (built "+BuildTime+")\n")
	return err
}
