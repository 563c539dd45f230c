package command

import (
	"encoding/json"
	"fmt"

	"github.com/adamavenir/heroes/internal/core"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List characters from the Marvel API",
		Long:  "Fetch the first page of characters and print them. Favorites are marked with ★.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			characters, err := fetchCharacters(cmd.Context(), ctx)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			search, _ := cmd.Flags().GetString("search")
			pattern, _ := cmd.Flags().GetString("pattern")
			characters = core.FilterByName(characters, search)
			characters, err = core.FilterByPattern(characters, pattern)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			favorites, err := ctx.Favorites.Names()
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(toCharacterItems(characters, favorites))
			}

			if len(characters) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No characters")
				return nil
			}
			writeCharacterTable(cmd.OutOrStdout(), "Characters", characters, favorites)
			return nil
		},
	}

	cmd.Flags().String("search", "", "only show names containing this text (case-insensitive)")
	cmd.Flags().String("pattern", "", "only show names matching a glob pattern, e.g. 'spider-*'")

	return cmd
}
