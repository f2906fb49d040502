package base64

import "strings"

// GetContentType extracts the MIME type from a data URI such as the room
// photo payloads, e.g. "data:image/png;base64,...". Returns "" when the
// string is not a data URI.
func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, ";base64,")

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}
