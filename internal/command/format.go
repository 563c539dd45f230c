package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/adamavenir/heroes/internal/core"
	"github.com/adamavenir/heroes/internal/types"
	"github.com/mattn/go-runewidth"
)

const (
	nameColumnWidth        = 28
	descriptionColumnWidth = 64
	favoriteMark           = "★"
)

// characterItem is the JSON shape for list output.
type characterItem struct {
	types.CharacterInfo
	ImageURL string `json:"image_url"`
	Favorite bool   `json:"favorite"`
}

func toCharacterItems(items []types.CharacterInfo, favorites map[string]bool) []characterItem {
	out := make([]characterItem, 0, len(items))
	for _, item := range items {
		out = append(out, characterItem{
			CharacterInfo: item,
			ImageURL:      core.ImageURL(item.ThumbnailPath, item.ThumbnailExtension),
			Favorite:      favorites[item.Name],
		})
	}
	return out
}

func writeCharacterTable(out io.Writer, title string, items []types.CharacterInfo, favorites map[string]bool) {
	fmt.Fprintf(out, "%s (%d)\n\n", title, len(items))
	for _, item := range items {
		mark := " "
		if favorites[item.Name] {
			mark = favoriteMark
		}
		name := fitColumn(item.Name, nameColumnWidth)
		desc := runewidth.Truncate(singleLine(item.Description), descriptionColumnWidth, "…")
		fmt.Fprintf(out, "  %s %s  %s\n", mark, name, desc)
	}
}

// fitColumn truncates or pads s to exactly width display cells.
func fitColumn(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
