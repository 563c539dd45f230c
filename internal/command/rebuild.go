package command

import (
	"encoding/json"
	"fmt"

	"github.com/adamavenir/heroes/internal/db"
	"github.com/spf13/cobra"
)

// NewRebuildCmd creates the rebuild command.
func NewRebuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild the favorites database from favorites.jsonl",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			if err := db.RebuildDatabaseFromJSONL(ctx.DB, ctx.Config.DataDir); err != nil {
				return writeCommandError(cmd, err)
			}
			records, err := db.GetFavoriteRecords(ctx.DB)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"rebuilt": true,
					"records": len(records),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rebuilt favorites database (%d records)\n", len(records))
			return nil
		},
	}
	return cmd
}
