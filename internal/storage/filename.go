package storage

import "strings"

var filenameReplacer = strings.NewReplacer(
	`\`, "-", "/", "-", ":", "-", "*", "-", "?", "-",
	`"`, "-", "<", "-", ">", "-", "|", "-",
)

// SanitizeFilename replaces characters that are not allowed in file names
// on common filesystems with '-'.
func SanitizeFilename(name string) string {
	return filenameReplacer.Replace(name)
}
