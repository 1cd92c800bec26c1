package pathutils

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	windowsSeparator = '\\'
	unixSeparator    = '/'
)

// xmlEscaper replaces the characters reserved in XML text and attribute values.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// NormalizePath converts both separator styles to the separator of the running OS, then collapses doubled
// backslashes. Empty paths are returned unchanged.
func NormalizePath(path string) string {
	return normalizePathFor(path, os.PathSeparator)
}

// normalizePathFor implements NormalizePath for the given OS separator.
func normalizePathFor(path string, separator rune) string {
	if path == "" {
		return path
	}

	switch separator {
	case windowsSeparator:
		path = strings.ReplaceAll(path, string(unixSeparator), string(windowsSeparator))
	case unixSeparator:
		path = strings.ReplaceAll(path, string(windowsSeparator), string(unixSeparator))
	}
	return strings.ReplaceAll(path, `\\`, `\`)
}

// EscapeXML escapes the characters reserved in XML.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// ToForwardSlashes replaces every backslash with a forward slash.
func ToForwardSlashes(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

// PathNormalizer canonicalizes paths of a host project for embedding in generated artifacts.
type PathNormalizer struct {
	// ProjectRoot is the absolute directory relative paths are resolved against.
	ProjectRoot string
}

// NewPathNormalizer creates a PathNormalizer resolving relative paths against projectRoot.
func NewPathNormalizer(projectRoot string) PathNormalizer {
	return PathNormalizer{ProjectRoot: projectRoot}
}

// MakeAbsolute returns rooted paths unchanged and joins others onto the project root.
func (n PathNormalizer) MakeAbsolute(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(n.ProjectRoot, path)
}

// FullPath normalizes the path, makes it absolute and cleans it.
func (n PathNormalizer) FullPath(path string) string {
	return filepath.Clean(n.MakeAbsolute(NormalizePath(path)))
}

// EscapedRelativePathFor returns the full path of file relative to directory if file lies beneath it, or the full
// path otherwise, XML-escaped.
func (n PathNormalizer) EscapedRelativePathFor(file string, directory string) string {
	directoryPath := n.FullPath(directory)
	absolutePath := n.FullPath(file)

	prefix := directoryPath + string(os.PathSeparator)
	if strings.HasPrefix(absolutePath, prefix) {
		absolutePath = absolutePath[len(prefix):]
	}
	return EscapeXML(absolutePath)
}
