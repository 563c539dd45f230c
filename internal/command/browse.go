package command

import (
	"fmt"

	"github.com/adamavenir/heroes/internal/tui"
	"github.com/spf13/cobra"
)

// NewBrowseCmd creates the interactive browser command.
func NewBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse characters and favorites interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonMode, _ := cmd.Flags().GetBool("json"); jsonMode {
				return writeCommandError(cmd, fmt.Errorf("--json not supported for interactive browse"))
			}

			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			if err := tui.Run(tui.Options{
				Fetcher: ctx.Client(),
				Store:   ctx.Favorites,
				DataDir: ctx.Config.DataDir,
			}); err != nil {
				return writeCommandError(cmd, err)
			}
			return nil
		},
	}
	return cmd
}
