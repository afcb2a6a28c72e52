// Package favicon loads the optional server-list icon and renders it in
// the data-URI form Minecraft's status response expects.
package favicon

import (
	"encoding/base64"
	"os"
)

// MaxBytes is the largest favicon.png the status response will embed.
const MaxBytes = 8 * 1024

// Load reads path and returns its contents as a
// "data:image/png;base64,<...>" string, or "" if the file is missing,
// unreadable, or larger than MaxBytes - all silently, per spec.
func Load(path string) string {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 || len(data) > MaxBytes {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}
