package listing

import (
	"github.com/adamavenir/heroes/internal/marvel"
	"github.com/adamavenir/heroes/internal/types"
)

// NoDescription replaces empty descriptions.
const NoDescription = "No description :("

// ToCharacterInfo maps a remote record to its display projection.
func ToCharacterInfo(c marvel.Character) types.CharacterInfo {
	return types.CharacterInfo{
		Name:               c.Name,
		Description:        DescriptionOrPlaceholder(c.Description),
		ThumbnailPath:      c.Thumbnail.Path,
		ThumbnailExtension: c.Thumbnail.Extension,
	}
}

// DescriptionOrPlaceholder returns NoDescription for an empty description.
func DescriptionOrPlaceholder(description string) string {
	if description == "" {
		return NoDescription
	}
	return description
}

// MapCharacters maps a whole batch, preserving order.
func MapCharacters(characters []marvel.Character) []types.CharacterInfo {
	out := make([]types.CharacterInfo, 0, len(characters))
	for _, c := range characters {
		out = append(out, ToCharacterInfo(c))
	}
	return out
}
