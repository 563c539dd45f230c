package types

// CharacterInfo is the flattened, display-ready projection of a character.
// It is comparable, so two values are equal (and hash the same as map keys)
// exactly when all four fields match.
type CharacterInfo struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	ThumbnailPath      string `json:"thumbnail_path"`
	ThumbnailExtension string `json:"thumbnail_extension"`
}

// FavoriteRecord is a persisted copy of a CharacterInfo.
// Name is the informal key: deletes match on it, nothing enforces uniqueness.
type FavoriteRecord struct {
	GUID           string  `json:"guid"`
	Name           string  `json:"name"`
	Text           string  `json:"text"`
	ImagePath      *string `json:"image_path,omitempty"`
	ImageExtension *string `json:"image_extension,omitempty"`
	FavedAt        int64   `json:"faved_at"`
}

// FavoriteFromInfo builds a record for a character info.
func FavoriteFromInfo(info CharacterInfo) FavoriteRecord {
	path := info.ThumbnailPath
	ext := info.ThumbnailExtension
	return FavoriteRecord{
		Name:           info.Name,
		Text:           info.Description,
		ImagePath:      &path,
		ImageExtension: &ext,
	}
}
