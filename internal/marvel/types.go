package marvel

import (
	"bytes"
	"encoding/json"
	"time"
)

// CharacterResponse is the envelope returned by the characters endpoint.
type CharacterResponse struct {
	Code   int           `json:"code"`
	Status string        `json:"status"`
	Data   CharacterData `json:"data"`
	ETag   string        `json:"etag"`
}

// CharacterData is the paging container inside the envelope.
type CharacterData struct {
	Offset  int         `json:"offset"`
	Limit   int         `json:"limit"`
	Total   int         `json:"total"`
	Count   int         `json:"count"`
	Results []Character `json:"results"`
}

// Character is a remote character record.
type Character struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Modified    string       `json:"modified"`
	ResourceURI string       `json:"resourceURI"`
	URLs        []URL        `json:"urls"`
	Thumbnail   Thumbnail    `json:"thumbnail"`
	Comics      ResourceList `json:"comics"`
	Stories     ResourceList `json:"stories"`
	Events      ResourceList `json:"events"`
	Series      ResourceList `json:"series"`
}

// URL is a typed public link for a character.
type URL struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Thumbnail holds the image path without its extension.
type Thumbnail struct {
	Path      string `json:"path"`
	Extension string `json:"extension"`
}

// ResourceList summarizes a related collection (comics, stories, events, series).
type ResourceList struct {
	Available     int            `json:"available"`
	Returned      int            `json:"returned"`
	CollectionURI string         `json:"collectionURI"`
	Items         []ResourceItem `json:"items"`
}

// ResourceItem references one entry of a related collection.
type ResourceItem struct {
	ResourceURI string `json:"resourceURI"`
	Name        string `json:"name"`
}

// errorBody is the structured body sent with HTTP 409.
type errorBody struct {
	Code    apiCode `json:"code"`
	Message string  `json:"message"`
}

// apiCode accepts both the string ("MissingParameter") and numeric (409)
// forms the API uses for error codes.
type apiCode string

func (c *apiCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = apiCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = apiCode(n.String())
	return nil
}

// ModifiedTime parses the Modified field. The API uses a numeric zone offset
// without a colon ("2014-04-29T14:18:17-0400").
func (c Character) ModifiedTime() (time.Time, bool) {
	for _, layout := range []string{"2006-01-02T15:04:05-0700", time.RFC3339} {
		if t, err := time.Parse(layout, c.Modified); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
