package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adamavenir/heroes/internal/core"
	"github.com/spf13/cobra"
)

// NewFaveCmd creates the fave command.
func NewFaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fave <name>",
		Short: "Add a character to your favorites",
		Long:  "Look the character up in the API by name (case-insensitive) and store it as a favorite.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			name := strings.Join(strings.Fields(args[0]), " ")
			characters, err := fetchCharacters(cmd.Context(), ctx)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			info, ok := core.FindByName(characters, name)
			if !ok {
				return writeCommandError(cmd, fmt.Errorf("character not found: %s", name))
			}

			// Check if already faved
			already, err := ctx.Favorites.IsFavorite(info.Name)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if already {
				if ctx.JSONMode {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
						"already_faved": true,
						"name":          info.Name,
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Already faved %s\n", info.Name)
				return nil
			}

			if err := ctx.Favorites.Add(info); err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"faved": true,
					"name":  info.Name,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Faved %s\n", info.Name)
			return nil
		},
	}

	return cmd
}

// NewUnfaveCmd creates the unfave command.
func NewUnfaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unfave <name>",
		Short: "Remove a character from your favorites",
		Long:  "Delete every stored favorite carrying this name.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			name := strings.Join(strings.Fields(args[0]), " ")

			// Resolve the stored spelling so "spider-man" removes "Spider-Man".
			favorites, err := ctx.Favorites.All()
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if stored, ok := core.FindByName(favorites, name); ok {
				name = stored.Name
			}

			removed, err := ctx.Favorites.DeleteByName(name)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"unfaved": removed > 0,
					"name":    name,
					"removed": removed,
				})
			}
			if removed == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Not faved: %s\n", name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unfaved %s\n", name)
			return nil
		},
	}

	return cmd
}

// NewFavesCmd creates the faves listing command.
func NewFavesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faves",
		Short: "List your favorite characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			favorites, err := ctx.Favorites.All()
			if err != nil {
				return writeCommandError(cmd, err)
			}

			search, _ := cmd.Flags().GetString("search")
			pattern, _ := cmd.Flags().GetString("pattern")
			favorites = core.FilterByName(favorites, search)
			favorites, err = core.FilterByPattern(favorites, pattern)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			marks := make(map[string]bool, len(favorites))
			for _, f := range favorites {
				marks[f.Name] = true
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(toCharacterItems(favorites, marks))
			}

			if len(favorites) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No faves")
				return nil
			}
			writeCharacterTable(cmd.OutOrStdout(), "Faves", favorites, marks)
			return nil
		},
	}

	cmd.Flags().String("search", "", "only show names containing this text (case-insensitive)")
	cmd.Flags().String("pattern", "", "only show names matching a glob pattern")

	return cmd
}
