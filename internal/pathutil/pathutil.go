package pathutil

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	// Replace Windows separators and collapse redundant separators/segments.
	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// OutputRelative returns the path to target relative to the provided output directory.
// The returned path always uses forward slashes so it can double as an object key
// or URL path.
func OutputRelative(outputDir, target string) (string, error) {
	base := NormalizePath(outputDir)
	cleanedTarget := NormalizePath(target)

	rel, err := filepath.Rel(base, cleanedTarget)
	if err != nil {
		return "", err
	}

	return strings.TrimPrefix(filepath.ToSlash(rel), "./"), nil
}

// JoinURL joins base and path with exactly one slash between them. Absolute
// http(s) paths are returned untouched.
func JoinURL(base, path string) string {
	if base == "" {
		return path
	}
	if path == "" {
		return base
	}
	if strings.HasPrefix(path, "http") {
		return path
	}

	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// SiteURL builds an absolute page URL under base from the given segments.
// The result always ends in a slash, matching how the site routes pages.
func SiteURL(base string, segments ...string) string {
	out := strings.TrimRight(base, "/") + "/"
	for _, segment := range segments {
		segment = strings.Trim(segment, "/")
		if segment == "" {
			continue
		}
		out += segment + "/"
	}
	return out
}
