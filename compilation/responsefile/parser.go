// Package responsefile parses compiler response files (.rsp): whitespace separated compiler arguments, one or more
// per line, with '#' comment lines and double-quoted arguments.
package responsefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
	"golang.org/x/exp/slices"
)

// Switch names recognized by the parser. Both '-' and '/' prefixes are accepted.
var (
	defineSwitches    = []string{"define", "d"}
	referenceSwitches = []string{"reference", "r"}
)

// Parse reads and parses the response file at responseFilePath. Relative response file paths and relative
// references are resolved against projectDirectory; references which cannot be found there are searched for in
// systemReferenceDirectories. Problems are collected into ResponseFileData.Errors rather than returned, so a broken
// response file never stops generation.
func Parse(responseFilePath string, projectDirectory string, systemReferenceDirectories []string) types.ResponseFileData {
	path := responseFilePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(projectDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return types.ResponseFileData{Errors: []string{fmt.Sprintf("cannot read response file: %v", err)}}
	}
	return ParseText(string(content), projectDirectory, systemReferenceDirectories)
}

// ParseText parses response file content. See Parse.
func ParseText(content string, projectDirectory string, systemReferenceDirectories []string) types.ResponseFileData {
	data := types.ResponseFileData{
		Defines:            make([]string, 0),
		FullPathReferences: make([]string, 0),
		OtherArguments:     make([]string, 0),
		Errors:             make([]string, 0),
	}

	args, tokenizeErrs := tokenize(content)
	data.Errors = append(data.Errors, tokenizeErrs...)

	for _, arg := range args {
		name, value, hasValue, isSwitch := splitSwitch(arg)
		if !isSwitch {
			data.OtherArguments = append(data.OtherArguments, arg)
			continue
		}

		switch {
		case slices.Contains(defineSwitches, name):
			defines := splitList(value, ";,")
			if !hasValue || len(defines) == 0 {
				data.Errors = append(data.Errors, fmt.Sprintf("no value specified for '%s' option", arg))
				continue
			}
			data.Defines = append(data.Defines, defines...)
		case slices.Contains(referenceSwitches, name):
			references := splitList(value, ";,")
			if !hasValue || len(references) == 0 {
				data.Errors = append(data.Errors, fmt.Sprintf("no value specified for '%s' option", arg))
				continue
			}
			for _, reference := range references {
				resolved, ok := resolveReference(reference, projectDirectory, systemReferenceDirectories)
				if !ok {
					data.Errors = append(data.Errors, fmt.Sprintf("reference '%s' could not be found", reference))
					continue
				}
				data.FullPathReferences = append(data.FullPathReferences, resolved)
			}
		case name == "unsafe" || name == "unsafe+":
			data.Unsafe = true
		case name == "unsafe-":
			data.Unsafe = false
		default:
			data.OtherArguments = append(data.OtherArguments, arg)
		}
	}
	return data
}

// tokenize splits response file content into arguments. Whitespace separates arguments unless it is inside double
// quotes; quotes themselves are removed. Lines whose first non-blank character is '#' are comments.
func tokenize(content string) ([]string, []string) {
	args := make([]string, 0)
	errs := make([]string, 0)

	for lineNumber, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		var current strings.Builder
		inQuotes := false
		hasToken := false
		for _, r := range trimmed {
			switch {
			case r == '"':
				inQuotes = !inQuotes
				hasToken = true
			case (r == ' ' || r == '\t') && !inQuotes:
				if hasToken {
					args = append(args, current.String())
					current.Reset()
					hasToken = false
				}
			default:
				current.WriteRune(r)
				hasToken = true
			}
		}
		if inQuotes {
			errs = append(errs, fmt.Sprintf("unterminated quote on line %d", lineNumber+1))
		}
		if hasToken {
			args = append(args, current.String())
		}
	}
	return args, errs
}

// splitSwitch splits an argument such as "-define:A;B" into its lower-cased switch name and value. isSwitch is
// false if the argument has no '-' or '/' prefix.
func splitSwitch(arg string) (name string, value string, hasValue bool, isSwitch bool) {
	if len(arg) < 2 || (arg[0] != '-' && arg[0] != '/') {
		return "", "", false, false
	}

	body := arg[1:]
	if index := strings.Index(body, ":"); index >= 0 {
		return strings.ToLower(body[:index]), body[index+1:], true, true
	}
	return strings.ToLower(body), "", false, true
}

// splitList splits value on any of the separator characters, dropping blank items.
func splitList(value string, separators string) []string {
	items := make([]string, 0)
	for _, item := range strings.FieldsFunc(value, func(r rune) bool { return strings.ContainsRune(separators, r) }) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// resolveReference finds the file a reference names. Absolute paths are used if they exist. Relative paths are
// tried against the project directory first and each system reference directory after.
func resolveReference(reference string, projectDirectory string, systemReferenceDirectories []string) (string, bool) {
	if filepath.IsAbs(reference) {
		return reference, fileExists(reference)
	}

	candidates := make([]string, 0, len(systemReferenceDirectories)+1)
	candidates = append(candidates, filepath.Join(projectDirectory, reference))
	for _, directory := range systemReferenceDirectories {
		candidates = append(candidates, filepath.Join(directory, reference))
	}

	for _, candidate := range candidates {
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// fileExists returns true if path refers to an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
