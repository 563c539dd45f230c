package core

import "strings"

const (
	insecureScheme = "http://"
	secureScheme   = "https://"

	// Placeholder image used when a stored favorite has no thumbnail.
	ImageNotAvailablePath      = "http://i.annihil.us/u/prod/marvel/i/mg/b/40/image_not_available"
	ImageNotAvailableExtension = "jpg"
)

// ImageURL joins a thumbnail path and extension, upgrading http to https.
func ImageURL(path, extension string) string {
	if strings.HasPrefix(path, insecureScheme) {
		path = secureScheme + strings.TrimPrefix(path, insecureScheme)
	}
	return path + "." + extension
}
