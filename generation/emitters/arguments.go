package emitters

import (
	"strings"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
)

// warnAsErrorKey is the key of warning-as-error switches, which carry their value without a colon.
const warnAsErrorKey = "warnaserror"

// ArgumentLookup maps the key of a compiler switch to its values, in order of first appearance.
type ArgumentLookup map[string][]string

// Values returns the values of a key. Missing keys return nil.
func (l ArgumentLookup) Values(key string) []string {
	return l[key]
}

// First returns the first value of a key, or an empty string.
func (l ArgumentLookup) First(key string) string {
	if values := l[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// FoldOtherArguments folds the pass-through arguments of response files into an ArgumentLookup. Only switches
// starting with "/" or "-" are considered. "-key:value" yields (key, value) and "-warnaserror<rest>" yields
// ("warnaserror", rest minus its first character). Anything else is skipped, as are repeated pairs.
func FoldOtherArguments(responseFiles []types.ResponseFileData) ArgumentLookup {
	type pair struct{ key, value string }

	lookup := make(ArgumentLookup)
	seen := make(map[pair]struct{})
	for _, responseFile := range responseFiles {
		for _, argument := range responseFile.OtherArguments {
			if !strings.HasPrefix(argument, "/") && !strings.HasPrefix(argument, "-") {
				continue
			}

			var p pair
			if index := strings.Index(argument, ":"); index > 0 {
				p = pair{key: argument[1:index], value: argument[index+1:]}
			} else if strings.HasPrefix(argument[1:], warnAsErrorKey) {
				p = pair{key: warnAsErrorKey, value: argument[len(warnAsErrorKey)+1:]}
			} else {
				continue
			}

			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			lookup[p.key] = append(lookup[p.key], p.value)
		}
	}
	return lookup
}
