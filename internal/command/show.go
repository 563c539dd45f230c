package command

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/adamavenir/heroes/internal/core"
	"github.com/adamavenir/heroes/internal/listing"
	"github.com/adamavenir/heroes/internal/marvel"
	"github.com/adamavenir/heroes/internal/types"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
)

// characterDetail is the JSON shape for show output.
type characterDetail struct {
	types.CharacterInfo
	ImageURL string       `json:"image_url"`
	Favorite bool         `json:"favorite"`
	Modified string       `json:"modified,omitempty"`
	Comics   int          `json:"comics,omitempty"`
	Series   int          `json:"series,omitempty"`
	Stories  int          `json:"stories,omitempty"`
	Events   int          `json:"events,omitempty"`
	Links    []marvel.URL `json:"links,omitempty"`
}

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one character's details",
		Long:  "Show a character's description, image URL, and related collection counts. With --offline the character is read from your favorites.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			name := strings.Join(strings.Fields(args[0]), " ")
			offline, _ := cmd.Flags().GetBool("offline")

			var detail characterDetail
			if offline {
				favorites, err := ctx.Favorites.All()
				if err != nil {
					return writeCommandError(cmd, err)
				}
				info, ok := core.FindByName(favorites, name)
				if !ok {
					return writeCommandError(cmd, fmt.Errorf("favorite not found: %s", name))
				}
				detail = characterDetail{CharacterInfo: info}
			} else {
				resp, err := ctx.Client().FetchCharacters(cmd.Context())
				if err != nil {
					return writeCommandError(cmd, err)
				}
				character, ok := findRemoteCharacter(resp.Data.Results, name)
				if !ok {
					return writeCommandError(cmd, fmt.Errorf("character not found: %s", name))
				}
				detail = remoteDetail(character)
			}

			detail.ImageURL = core.ImageURL(detail.ThumbnailPath, detail.ThumbnailExtension)
			detail.Favorite, err = ctx.Favorites.IsFavorite(detail.Name)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(detail)
			}
			writeCharacterDetail(cmd.OutOrStdout(), detail)
			return nil
		},
	}

	cmd.Flags().Bool("offline", false, "read the character from favorites instead of the API")

	return cmd
}

func findRemoteCharacter(characters []marvel.Character, name string) (marvel.Character, bool) {
	folder := cases.Fold()
	needle := folder.String(name)
	for _, c := range characters {
		if folder.String(c.Name) == needle {
			return c, true
		}
	}
	return marvel.Character{}, false
}

func remoteDetail(c marvel.Character) characterDetail {
	detail := characterDetail{
		CharacterInfo: listing.ToCharacterInfo(c),
		Comics:        c.Comics.Available,
		Series:        c.Series.Available,
		Stories:       c.Stories.Available,
		Events:        c.Events.Available,
		Links:         c.URLs,
	}
	if modified, ok := c.ModifiedTime(); ok {
		detail.Modified = modified.UTC().Format("2006-01-02T15:04:05Z")
	}
	return detail
}

func writeCharacterDetail(out io.Writer, d characterDetail) {
	title := d.Name
	if d.Favorite {
		title = favoriteMark + " " + title
	}
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, strings.Repeat("─", len([]rune(title))))
	fmt.Fprintln(out, d.Description)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Image:     %s\n", d.ImageURL)
	if d.Modified != "" {
		fmt.Fprintf(out, "  Modified:  %s\n", humanizeModified(d.Modified))
	}
	if d.Comics+d.Series+d.Stories+d.Events > 0 {
		fmt.Fprintf(out, "  Comics:    %s\n", humanize.Comma(int64(d.Comics)))
		fmt.Fprintf(out, "  Series:    %s\n", humanize.Comma(int64(d.Series)))
		fmt.Fprintf(out, "  Stories:   %s\n", humanize.Comma(int64(d.Stories)))
		fmt.Fprintf(out, "  Events:    %s\n", humanize.Comma(int64(d.Events)))
	}
	if len(d.Links) > 0 {
		fmt.Fprintln(out, "  Links:")
		for _, link := range d.Links {
			fmt.Fprintf(out, "    %-8s %s\n", link.Type, link.URL)
		}
	}
}

func humanizeModified(value string) string {
	c := marvel.Character{Modified: value}
	t, ok := c.ModifiedTime()
	if !ok {
		return value
	}
	return humanize.Time(t)
}
