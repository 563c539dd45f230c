package command

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

const AppName = "heroes"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "Heroes - browse Marvel characters and keep favorites",
		Long:          "Heroes lists characters from the Marvel API, shows their details, and keeps a local list of favorites.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().Bool("json", false, "output in JSON format")
	cmd.PersistentFlags().String("data-dir", "", "directory holding the favorites database")

	cmd.AddCommand(
		NewListCmd(),
		NewShowCmd(),
		NewFaveCmd(),
		NewUnfaveCmd(),
		NewFavesCmd(),
		NewBrowseCmd(),
		NewConfigCmd(),
		NewRebuildCmd(),
	)

	return cmd
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd(Version).ExecuteContext(ctx)
}
