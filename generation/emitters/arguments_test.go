package emitters

import (
	"testing"

	"github.com/jcaballol94/com.jcaballol94.ide.sublime/compilation/types"
	"github.com/stretchr/testify/assert"
)

// TestFoldOtherArguments covers key extraction, the warning-as-error form and skipped arguments.
func TestFoldOtherArguments(t *testing.T) {
	t.Parallel()

	lookup := FoldOtherArguments([]types.ResponseFileData{
		{OtherArguments: []string{"-langversion:9.0", "/nullable:enable", "-warnaserror+", "-warnaserror-:CS0168", "plain", "-optimize"}},
		{OtherArguments: []string{"-langversion:8.0", "-langversion:9.0", "-a:One.dll;Two.dll", "-:empty-key", "-warnaserror"}},
	})

	assert.Equal(t, []string{"9.0", "8.0"}, lookup.Values("langversion"))
	assert.Equal(t, "9.0", lookup.First("langversion"))
	assert.Equal(t, []string{"enable"}, lookup.Values("nullable"))
	assert.Equal(t, []string{"CS0168"}, lookup.Values("warnaserror-"))
	assert.Equal(t, []string{"+", ""}, lookup.Values("warnaserror"))
	assert.Equal(t, []string{"One.dll;Two.dll"}, lookup.Values("a"))
	assert.Equal(t, []string{"empty-key"}, lookup.Values(""))
	assert.Nil(t, lookup.Values("optimize"))
	assert.Nil(t, lookup.Values("plain"))
	assert.Equal(t, "", lookup.First("ruleset"))
}
